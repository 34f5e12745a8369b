package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRaw_PlainJSON(t *testing.T) {
	raw, err := parseRaw(`{"country":"Sudan","severity":4}`)
	require.NoError(t, err)
	assert.Equal(t, "Sudan", raw.Country)
	require.NotNil(t, raw.Severity)
	assert.Equal(t, 4.0, *raw.Severity)
}

func TestParseRaw_StripsMarkdownFence(t *testing.T) {
	raw, err := parseRaw("```json\n{\"country\":\"South Sudan\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "South Sudan", raw.Country)
}

func TestParseRaw_InvalidJSONErrors(t *testing.T) {
	_, err := parseRaw("this is not json")
	assert.Error(t, err)
}
