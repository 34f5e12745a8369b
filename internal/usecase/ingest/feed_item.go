package ingest

import (
	"context"
	"time"
)

// FeedItem is a single raw entry read off an RSS/Atom feed, before
// normalization into an entity.Article.
type FeedItem struct {
	Title           string
	Link            string
	ContentSnippet  string
	Summary         string
	Content         string
	ISODate         string
	PubDate         string
	PublishedParsed *time.Time
	MediaURLs       []string // media:content / media:thumbnail / media:group candidates, in document order
	Enclosures      []Enclosure
}

// Enclosure mirrors an RSS <enclosure> element.
type Enclosure struct {
	URL  string
	Type string
}

// FeedFetcher fetches and parses one RSS/Atom feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]FeedItem, error)
}
