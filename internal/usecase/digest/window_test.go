package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWindows_DayAlignedBounds(t *testing.T) {
	now := time.Date(2026, 7, 31, 14, 32, 0, 0, time.UTC)
	thisWeek, lastWeek := NewWindows(now)

	assert.Equal(t, time.Date(2026, 7, 24, 0, 0, 0, 0, time.UTC), thisWeek.From)
	assert.Equal(t, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), thisWeek.To)
	assert.Equal(t, time.Date(2026, 7, 17, 0, 0, 0, 0, time.UTC), lastWeek.From)
	assert.Equal(t, time.Date(2026, 7, 24, 0, 0, 0, 0, time.UTC), lastWeek.To)
	assert.Equal(t, "2026-07-24 to 2026-07-31", thisWeek.Label)
}

func TestPercentChange_BothZero(t *testing.T) {
	assert.Equal(t, 0, percentChange(0, 0))
}

func TestPercentChange_FromZero(t *testing.T) {
	assert.Equal(t, 100, percentChange(5, 0))
}

func TestPercentChange_Increase(t *testing.T) {
	assert.Equal(t, 50, percentChange(15, 10))
}

func TestPercentChange_Decrease(t *testing.T) {
	assert.Equal(t, -50, percentChange(5, 10))
}

func TestPercentChangePtr_SuppressedWhenBaselineWeak(t *testing.T) {
	assert.Nil(t, percentChangePtr(10, 5, true))
}

func TestPercentChangePtr_PresentWhenBaselineStrong(t *testing.T) {
	got := percentChangePtr(10, 5, false)
	require := assert.New(t)
	require.NotNil(got)
	require.Equal(100, *got)
}
