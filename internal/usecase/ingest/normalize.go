package ingest

import (
	"strings"
	"time"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/utils/text"

	"github.com/google/uuid"
)

const descriptionMaxLen = 500

// toArticle normalizes a raw FeedItem fetched from src into an
// entity.Article, per the ingest normalization contract.
func toArticle(item FeedItem, src entity.Source) entity.Article {
	description := item.ContentSnippet
	if description == "" {
		description = item.Summary
	}
	if description == "" {
		description = item.Content
	}
	description = text.Truncate(text.StripHTML(description), descriptionMaxLen)

	return entity.Article{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(item.Title),
		Description:       description,
		URL:               item.Link,
		Image:             extractRSSImage(item),
		PublishedAt:       resolvePublishedAt(item),
		Source:            src.Name,
		SourceCategory:    src.Category,
		SourceReliability: src.Reliability,
	}
}

// resolvePublishedAt implements the isoDate | pubDate | now() fallback.
func resolvePublishedAt(item FeedItem) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.ISODate != "" {
		if t, err := time.Parse(time.RFC3339, item.ISODate); err == nil {
			return t
		}
	}
	if item.PubDate != "" {
		if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			return t
		}
	}
	return time.Now()
}

// body is the text the relevance filter counts SUPPORTING matches in:
// contentSnippet + " " + content.
func body(item FeedItem) string {
	return item.ContentSnippet + " " + item.Content
}

// anchorScanPayload is the raw text the URL Resolver's strategy 1 scans
// for an outbound <a href> pointing at the real publisher.
func anchorScanPayload(item FeedItem) string {
	return item.Content + " " + item.ContentSnippet + " " + item.Summary
}
