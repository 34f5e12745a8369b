package digest

import (
	"encoding/json"
	"fmt"
)

// JSON marshals the digest for the JSON artifact. A suppressed
// ChangePercent (baseline guard active) serializes as null, distinguishing
// "no comparison available" from a true 0% change.
func (d *Digest) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("Digest.JSON: %w", err)
	}
	return b, nil
}
