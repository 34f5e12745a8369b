package digest

import "strings"

// rationalePrefixes match legacy verbose model justifications that should
// be stripped entirely rather than shown alongside an event.
var rationalePrefixes = []string{
	"the severity",
	"the verification",
	"the confidence",
	"this is rated",
	"rated as",
}

var rationaleSubstrings = []string{
	"which is a grave",
	"which is a significant",
	"which is a major",
	"which is a serious",
}

// cleanRationale strips legacy verbose justifications per the digest's
// rationale cleanup rule. A stripped rationale renders as empty.
func cleanRationale(r string) string {
	trimmed := strings.TrimSpace(r)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)

	for _, prefix := range rationalePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return ""
		}
	}
	if strings.HasPrefix(lower, "severity ") {
		rest := lower[len("severity "):]
		if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			return ""
		}
	}
	for _, substr := range rationaleSubstrings {
		if strings.Contains(lower, substr) {
			return ""
		}
	}
	return trimmed
}
