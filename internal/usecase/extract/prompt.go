package extract

import (
	"fmt"
	"sort"
	"strings"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/domain/region"
)

const promptVersion = "extract-v1"

// systemPrompt is built once and reused for every cluster: it enumerates
// the closed vocabularies the model must choose from and the exact JSON
// shape it must return, so per-call prompt construction only has to supply
// the cluster's own text.
func systemPrompt() string {
	var b strings.Builder

	b.WriteString("You are an analyst extracting a single structured event record from a cluster of news articles about South Sudan and Sudan.\n\n")
	b.WriteString("Respond with exactly one JSON object and nothing else: no markdown fences, no prose before or after. The object must have exactly these fields:\n")
	b.WriteString("summary, country, regions, eventType, eventSubtype, severity, scope, verificationStatus, confidence, actors, rationale\n\n")

	fmt.Fprintf(&b, "eventType must be one of: %s\n", strings.Join(enumStrings(eventTypeEnum), ", "))
	fmt.Fprintf(&b, "scope must be one of: %s\n", strings.Join(enumStrings(scopeEnum), ", "))
	fmt.Fprintf(&b, "verificationStatus must be one of: %s\n", strings.Join(enumStrings(verificationEnum), ", "))

	b.WriteString("\nseverity is an integer 1-5 on this ladder:\n")
	b.WriteString("1 routine — minor, local, low consequence\n")
	b.WriteString("2 notable — limited harm or disruption, contained\n")
	b.WriteString("3 serious — significant harm, disruption, or displacement\n")
	b.WriteString("4 grave — major harm, casualties, or destabilizing effect\n")
	b.WriteString("5 critical — mass casualties, state-level collapse, or catastrophic consequence\n")

	b.WriteString("\nconfidence is a number 0-1 reflecting how corroborated and unambiguous the extraction is.\n")
	b.WriteString("regions must use standard administrative names. Known regions include:\n")

	names := region.KnownNames()
	sort.Strings(names)
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n\nactors should name organizations, factions, or officials involved, using their common names.\n")
	b.WriteString("rationale is one sentence on why you assigned this severity and verification status.\n")

	return b.String()
}

// userPrompt renders the cluster's contributing articles for the model.
func userPrompt(articles []entity.Article) string {
	var b strings.Builder
	b.WriteString("Articles covering this story:\n\n")
	for i, a := range articles {
		fmt.Fprintf(&b, "[%d] %s\n%s\n\n", i+1, a.Title, a.Description)
	}
	return b.String()
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

var (
	eventTypeEnum = []entity.EventType{
		entity.EventTypeSecurity, entity.EventTypePolitical, entity.EventTypeEconomic,
		entity.EventTypeHumanitarian, entity.EventTypeInfrastructure, entity.EventTypeLegal,
	}
	scopeEnum = []entity.Scope{
		entity.ScopeLocal, entity.ScopeState, entity.ScopeNational, entity.ScopeCrossBorder,
	}
	verificationEnum = []entity.VerificationStatus{
		entity.VerificationConfirmed, entity.VerificationReported, entity.VerificationUnverified,
	}
)
