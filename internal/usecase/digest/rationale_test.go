package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanRationale_StripsSeverityPrefix(t *testing.T) {
	assert.Empty(t, cleanRationale("The severity is high because multiple fatalities were reported."))
}

func TestCleanRationale_StripsRatedAs(t *testing.T) {
	assert.Empty(t, cleanRationale("Rated as high due to casualty count."))
}

func TestCleanRationale_StripsSeverityNPrefix(t *testing.T) {
	assert.Empty(t, cleanRationale("Severity 4 due to armed confrontation."))
}

func TestCleanRationale_StripsGraveSubstring(t *testing.T) {
	assert.Empty(t, cleanRationale("Multiple sources confirm this, which is a grave escalation."))
}

func TestCleanRationale_PassesThroughOrdinaryRationale(t *testing.T) {
	got := cleanRationale("Multiple outlets report armed clashes near Bentiu.")
	assert.Equal(t, "Multiple outlets report armed clashes near Bentiu.", got)
}

func TestCleanRationale_EmptyStaysEmpty(t *testing.T) {
	assert.Empty(t, cleanRationale("   "))
}
