package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hornwatch/internal/domain/entity"
)

func TestToArticle_DescriptionFallbackAndTruncation(t *testing.T) {
	item := FeedItem{
		Title:          "  Flooding hits Jonglei  ",
		ContentSnippet: "",
		Summary:        "",
		Content:        "<p>Severe&nbsp;flooding</p>" + strings.Repeat("x", 600),
		Link:           "https://example.com/a",
	}
	src := entity.Source{Name: "Radio Tamazuj", Category: entity.CategoryRegional, Reliability: entity.ReliabilityHigh}

	art := toArticle(item, src)

	assert.Equal(t, "Flooding hits Jonglei", art.Title)
	assert.LessOrEqual(t, len([]rune(art.Description)), descriptionMaxLen)
	assert.Contains(t, art.Description, "Severe flooding")
	assert.Equal(t, "Radio Tamazuj", art.Source)
	assert.NotEmpty(t, art.ID)
}

func TestResolvePublishedAt_FallbackChain(t *testing.T) {
	parsed := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	got := resolvePublishedAt(FeedItem{PublishedParsed: &parsed})
	assert.Equal(t, parsed, got)

	got = resolvePublishedAt(FeedItem{ISODate: "2026-01-03T00:00:00Z"})
	assert.Equal(t, 2026, got.Year())

	got = resolvePublishedAt(FeedItem{})
	assert.WithinDuration(t, time.Now(), got, 5*time.Second)
}

func TestDedupeByURL(t *testing.T) {
	articles := []entity.Article{
		{ID: "1", URL: "https://example.com/a", Title: "a"},
		{ID: "2", URL: "https://example.com/a", Title: "a-dup"},
		{ID: "3", URL: "https://example.com/b", Title: "b"},
	}
	deduped := dedupeByURL(articles)
	require.Len(t, deduped, 2)
}

func TestFilterWindow(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	articles := []entity.Article{
		{URL: "https://example.com/recent", PublishedAt: now.Add(-24 * time.Hour)},
		{URL: "https://example.com/stale", PublishedAt: now.Add(-10 * 24 * time.Hour)},
	}
	filtered := filterWindow(articles, now)
	require.Len(t, filtered, 1)
	assert.Equal(t, "https://example.com/recent", filtered[0].URL)
}
