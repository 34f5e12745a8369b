package extract

import (
	"fmt"
	"math"

	"hornwatch/internal/domain/entity"
)

// hardErrors returns the reasons raw fails a hard-validation rule, any one
// of which quarantines the extraction outright. Severity is checked after
// rounding so a model returning "4.0" is not penalized for not emitting an
// integer literal.
func hardErrors(raw *rawExtraction) []string {
	var errs []string

	if raw.Country == "" {
		errs = append(errs, "missing country")
	}

	if !isValidEventType(raw.EventType) {
		errs = append(errs, fmt.Sprintf("invalid eventType: %q", raw.EventType))
	}

	if raw.Severity == nil {
		errs = append(errs, "missing severity")
	} else {
		rounded := int(math.Round(*raw.Severity))
		if rounded < 1 || rounded > 5 {
			errs = append(errs, fmt.Sprintf("severity out of range: %v", *raw.Severity))
		}
	}

	if raw.Scope != "" && !isValidScope(raw.Scope) {
		errs = append(errs, fmt.Sprintf("invalid scope: %q", raw.Scope))
	}

	if raw.VerificationStatus != "" && !isValidVerification(raw.VerificationStatus) {
		errs = append(errs, fmt.Sprintf("invalid verificationStatus: %q", raw.VerificationStatus))
	}

	if raw.Confidence != nil && (*raw.Confidence < 0 || *raw.Confidence > 1) {
		errs = append(errs, fmt.Sprintf("confidence out of range: %v", *raw.Confidence))
	}

	return errs
}

// lowConfidenceQuarantine reports whether raw's confidence is low enough,
// combined with the presence of any soft issue, to quarantine rather than
// accept. Per the extraction contract, missing/empty regions alone never
// quarantines — only confidence below the threshold does, so this reduces
// to a direct confidence check once a default has been applied upstream.
func lowConfidenceQuarantine(confidence float64) bool {
	const softConfidenceThreshold = 0.3
	return confidence < softConfidenceThreshold
}

func isValidEventType(v string) bool {
	switch entity.EventType(v) {
	case entity.EventTypeSecurity, entity.EventTypePolitical, entity.EventTypeEconomic,
		entity.EventTypeHumanitarian, entity.EventTypeInfrastructure, entity.EventTypeLegal:
		return true
	default:
		return false
	}
}

func isValidScope(v string) bool {
	switch entity.Scope(v) {
	case entity.ScopeLocal, entity.ScopeState, entity.ScopeNational, entity.ScopeCrossBorder:
		return true
	default:
		return false
	}
}

func isValidVerification(v string) bool {
	switch entity.VerificationStatus(v) {
	case entity.VerificationConfirmed, entity.VerificationReported, entity.VerificationUnverified:
		return true
	default:
		return false
	}
}
