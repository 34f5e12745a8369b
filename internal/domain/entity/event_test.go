package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEvent() Event {
	return Event{
		ClusterHash:        "abc123",
		EventType:          EventTypeSecurity,
		Severity:           3,
		Scope:              ScopeNational,
		SourceTier:         SourceTierOne,
		VerificationStatus: VerificationReported,
		Confidence:         0.8,
		ArticleCount:       2,
	}
}

func TestEvent_ClampSeverity(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below range", 0, 1},
		{"above range", 9, 5},
		{"in range", 3, 3},
		{"negative", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{Severity: tt.in}
			e.ClampSeverity()
			assert.Equal(t, tt.want, e.Severity)
		})
	}
}

func TestEvent_ClampConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below range", -0.5, 0},
		{"above range", 1.5, 1},
		{"in range", 0.42, 0.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{Confidence: tt.in}
			e.ClampConfidence()
			assert.Equal(t, tt.want, e.Confidence)
		})
	}
}

func TestEvent_Validate(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		e := validEvent()
		assert.NoError(t, e.Validate())
	})

	t.Run("missing clusterHash", func(t *testing.T) {
		e := validEvent()
		e.ClusterHash = ""
		assert.Error(t, e.Validate())
	})

	t.Run("zero articleCount", func(t *testing.T) {
		e := validEvent()
		e.ArticleCount = 0
		assert.Error(t, e.Validate())
	})

	t.Run("invalid eventType", func(t *testing.T) {
		e := validEvent()
		e.EventType = EventType("bogus")
		assert.Error(t, e.Validate())
	})

	t.Run("invalid scope", func(t *testing.T) {
		e := validEvent()
		e.Scope = Scope("bogus")
		assert.Error(t, e.Validate())
	})

	t.Run("invalid sourceTier", func(t *testing.T) {
		e := validEvent()
		e.SourceTier = SourceTier("bogus")
		assert.Error(t, e.Validate())
	})

	t.Run("invalid verificationStatus", func(t *testing.T) {
		e := validEvent()
		e.VerificationStatus = VerificationStatus("bogus")
		assert.Error(t, e.Validate())
	})

	t.Run("severity out of range", func(t *testing.T) {
		e := validEvent()
		e.Severity = 9
		assert.Error(t, e.Validate())
	})

	t.Run("confidence out of range", func(t *testing.T) {
		e := validEvent()
		e.Confidence = 1.5
		assert.Error(t, e.Validate())
	})
}

func TestEvent_AllEventTypes(t *testing.T) {
	types := []EventType{
		EventTypeSecurity, EventTypePolitical, EventTypeEconomic,
		EventTypeHumanitarian, EventTypeInfrastructure, EventTypeLegal,
	}

	for _, et := range types {
		t.Run(string(et), func(t *testing.T) {
			e := validEvent()
			e.EventType = et
			assert.NoError(t, e.Validate())
		})
	}
}
