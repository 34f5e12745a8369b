package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_Struct(t *testing.T) {
	source := Source{
		Name:        "Radio Tamazuj",
		URL:         "https://example.com/feed.xml",
		Category:    CategoryRegional,
		Reliability: ReliabilityHigh,
	}

	assert.Equal(t, "Radio Tamazuj", source.Name)
	assert.Equal(t, "https://example.com/feed.xml", source.URL)
	assert.Equal(t, CategoryRegional, source.Category)
	assert.Equal(t, ReliabilityHigh, source.Reliability)
}

func TestSource_ZeroValue(t *testing.T) {
	var source Source

	assert.Equal(t, "", source.Name)
	assert.Equal(t, "", source.URL)
	assert.Equal(t, Category(""), source.Category)
	assert.Equal(t, Reliability(""), source.Reliability)
}

func TestReliability_Rank(t *testing.T) {
	tests := []struct {
		name        string
		reliability Reliability
		want        int
	}{
		{"high outranks medium", ReliabilityHigh, 3},
		{"medium outranks aggregator", ReliabilityMedium, 2},
		{"aggregator is lowest named tier", ReliabilityAggregator, 1},
		{"unknown reliability ranks zero", Reliability("bogus"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reliability.Rank())
		})
	}
}

func TestSource_Validate(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		wantErr bool
	}{
		{
			name: "valid source",
			source: Source{
				Name:        "Radio Tamazuj",
				URL:         "https://example.com/feed.xml",
				Category:    CategoryRegional,
				Reliability: ReliabilityHigh,
			},
			wantErr: false,
		},
		{
			name: "missing name",
			source: Source{
				URL:         "https://example.com/feed.xml",
				Category:    CategoryRegional,
				Reliability: ReliabilityHigh,
			},
			wantErr: true,
		},
		{
			name: "invalid category",
			source: Source{
				Name:        "Test",
				URL:         "https://example.com/feed.xml",
				Category:    Category("bogus"),
				Reliability: ReliabilityHigh,
			},
			wantErr: true,
		},
		{
			name: "invalid reliability",
			source: Source{
				Name:        "Test",
				URL:         "https://example.com/feed.xml",
				Category:    CategoryRegional,
				Reliability: Reliability("bogus"),
			},
			wantErr: true,
		},
		{
			name: "invalid url scheme",
			source: Source{
				Name:        "Test",
				URL:         "ftp://example.com/feed.xml",
				Category:    CategoryRegional,
				Reliability: ReliabilityHigh,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSource_AllCategories(t *testing.T) {
	categories := []Category{
		CategoryInternational,
		CategoryRegional,
		CategoryLocal,
		CategoryHumanitarian,
		CategoryGeneral,
	}

	for _, category := range categories {
		t.Run(string(category), func(t *testing.T) {
			source := Source{
				Name:        "Test Source",
				URL:         "https://example.com/feed.xml",
				Category:    category,
				Reliability: ReliabilityMedium,
			}
			assert.NoError(t, source.Validate())
		})
	}
}
