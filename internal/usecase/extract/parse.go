package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawExtraction is the model's unvalidated output, parsed field-for-field
// from the schema named in the system prompt. Severity and confidence are
// pointers so a missing field is distinguishable from an explicit zero.
type rawExtraction struct {
	Summary            string   `json:"summary"`
	Country            string   `json:"country"`
	Regions            []string `json:"regions"`
	EventType          string   `json:"eventType"`
	EventSubtype       string   `json:"eventSubtype"`
	Severity           *float64 `json:"severity"`
	Scope              string   `json:"scope"`
	VerificationStatus string   `json:"verificationStatus"`
	Confidence         *float64 `json:"confidence"`
	Actors             []string `json:"actors"`
	Rationale          string   `json:"rationale"`
}

// parseRaw strips a leading ```json fence and trailing ``` if present,
// since models following the "no markdown" instruction occasionally wrap
// the object in one anyway, then parses the remainder as JSON.
func parseRaw(modelOutput string) (*rawExtraction, error) {
	trimmed := strings.TrimSpace(modelOutput)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var raw rawExtraction
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return &raw, nil
}
