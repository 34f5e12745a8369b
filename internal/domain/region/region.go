// Package region holds the Horn-of-Africa administrative region names and
// the child-to-ancestor containment table shared by the Extractor's prompt
// (which enumerates known regions for the model) and the Digest Builder's
// region-overlap bundling and display-collapse logic.
package region

import "strings"

// ancestors maps a lowercase region name to its lowercase containing
// regions, nearest first. Regions with no entry, or with an empty entry, are
// their own root; the Darfur and Kordofan states map to their named region.
var ancestors = map[string][]string{
	// South Sudan states (2020 10-state configuration) and their capitals.
	"juba":                      {"central equatoria"},
	"yei":                       {"central equatoria"},
	"torit":                     {"eastern equatoria"},
	"kapoeta":                   {"eastern equatoria"},
	"yambio":                    {"western equatoria"},
	"maridi":                    {"western equatoria"},
	"bor":                       {"jonglei"},
	"akobo":                     {"jonglei"},
	"bentiu":                    {"unity"},
	"rubkona":                   {"unity"},
	"malakal":                   {"upper nile"},
	"renk":                      {"upper nile"},
	"aweil":                     {"northern bahr el ghazal"},
	"wau":                       {"western bahr el ghazal"},
	"kuajok":                    {"warrap"},
	"rumbek":                    {"lakes"},

	// Sudan: Darfur region and its five states.
	"north darfur":  {"darfur"},
	"south darfur":  {"darfur"},
	"west darfur":   {"darfur"},
	"central darfur": {"darfur"},
	"east darfur":   {"darfur"},
	"el fasher":     {"north darfur", "darfur"},
	"nyala":         {"south darfur", "darfur"},
	"el geneina":    {"west darfur", "darfur"},
	"zalingei":      {"central darfur", "darfur"},
	"ed daein":      {"east darfur", "darfur"},

	// Sudan: Kordofan region and its states.
	"north kordofan": {"kordofan"},
	"south kordofan": {"kordofan"},
	"west kordofan":  {"kordofan"},
	"el obeid":       {"north kordofan", "kordofan"},
	"kadugli":        {"south kordofan", "kordofan"},
	"dilling":        {"south kordofan", "kordofan"},

	// Remaining Sudan states and their capitals.
	"khartoum":   {},
	"omdurman":   {"khartoum"},
	"bahri":      {"khartoum"},
	"port sudan": {"red sea"},
	"kassala":    {},
	"gedaref":    {},
	"sennar":     {},
	"blue nile":  {},
	"white nile": {},
	"gezira":     {},
	"river nile": {},
	"northern":   {},
	"atbara":     {"river nile"},
}

// topLevel is the set of state and named-region names (including the Darfur
// and Kordofan states, which also have a parent in ancestors), used by the
// display-collapse rule to tell a bare state apart from a city.
var topLevel = map[string]struct{}{
	"central equatoria": {}, "eastern equatoria": {}, "western equatoria": {},
	"jonglei": {}, "unity": {}, "upper nile": {},
	"northern bahr el ghazal": {}, "western bahr el ghazal": {},
	"warrap": {}, "lakes": {},
	"darfur": {}, "north darfur": {}, "south darfur": {}, "west darfur": {},
	"central darfur": {}, "east darfur": {},
	"kordofan": {}, "north kordofan": {}, "south kordofan": {}, "west kordofan": {},
	"khartoum": {}, "red sea": {}, "kassala": {}, "gedaref": {}, "sennar": {},
	"blue nile": {}, "white nile": {}, "gezira": {}, "river nile": {}, "northern": {},
}

// Ancestors returns the lowercase containing regions for name, nearest
// first. Unknown names and regions with no containing region return an
// empty slice; the Darfur and Kordofan states return their named region.
func Ancestors(name string) []string {
	return ancestors[strings.ToLower(strings.TrimSpace(name))]
}

// IsTopLevel reports whether name is a state or named area listed in
// topLevel. This includes the Darfur and Kordofan states, which also have a
// parent in the containment table.
func IsTopLevel(name string) bool {
	_, ok := topLevel[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// KnownNames lists every region name the containment table and the
// Extractor's prompt recognize: every state/named area plus every city or
// locality mapped to one, for enumerating to the model.
func KnownNames() []string {
	seen := make(map[string]struct{}, len(ancestors)+len(topLevel))
	names := make([]string, 0, len(ancestors)+len(topLevel))
	for name := range ancestors {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	for name := range topLevel {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// overlapsOne reports whether single region names a and b overlap per the
// containment rule: equal, or one is an ancestor of the other, or they
// share a common ancestor.
func overlapsOne(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	ancA := Ancestors(a)
	ancB := Ancestors(b)
	for _, x := range ancA {
		if x == b {
			return true
		}
	}
	for _, x := range ancB {
		if x == a {
			return true
		}
	}
	for _, x := range ancA {
		for _, y := range ancB {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Overlap reports whether two region lists overlap: empty lists overlap
// with anything, and otherwise overlap holds if any pair of entries
// overlaps per the containment rule.
func Overlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, x := range a {
		for _, y := range b {
			if overlapsOne(x, y) {
				return true
			}
		}
	}
	return false
}

// CollapseDisplay renders a region list for the digest, collapsing a child
// and its direct parent into "Parent (Child)" and dropping a bare
// top-level ancestor that coexists with one of its own specific
// descendants.
func CollapseDisplay(regions []string) []string {
	present := make(map[string]bool, len(regions))
	order := make([]string, 0, len(regions))
	for _, r := range regions {
		key := strings.ToLower(strings.TrimSpace(r))
		if key == "" || present[key] {
			continue
		}
		present[key] = true
		order = append(order, key)
	}

	dropped := make(map[string]bool)
	display := make(map[string]string)

	for _, child := range order {
		anc := Ancestors(child)
		if len(anc) == 0 {
			continue
		}
		parent := anc[0]
		if present[parent] {
			display[child] = titleCase(parent) + " (" + titleCase(child) + ")"
			dropped[parent] = true
		}
		for _, a := range anc {
			if a != parent && present[a] {
				dropped[a] = true
			}
		}
	}

	out := make([]string, 0, len(order))
	for _, key := range order {
		if dropped[key] {
			continue
		}
		if label, ok := display[key]; ok {
			out = append(out, label)
			continue
		}
		out = append(out, titleCase(key))
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) == 0 {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
