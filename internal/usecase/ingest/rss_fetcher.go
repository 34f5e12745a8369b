package ingest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"hornwatch/internal/resilience/circuitbreaker"
	"hornwatch/internal/resilience/retry"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// xmlStartTokens are the byte sequences a well-formed feed body may start
// with once BOM and aggregator junk bytes are stripped.
var xmlStartTokens = [][]byte{
	[]byte("<?xml"),
	[]byte("<rss"),
	[]byte("<feed"),
}

// RSSFetcher implements FeedFetcher using gofeed, wrapped in the same
// circuit breaker and retry policy the rest of the fetch pipeline uses.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates an RSSFetcher with a browser-like User-Agent and
// circuit breaker/retry policy for the given HTTP client.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses the RSS/Atom feed at feedURL.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]FeedItem, error) {
	var items []FeedItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-ingest"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}
		items = cbResult.([]FeedItem)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}
	return items, nil
}

func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; HornFeedBot/1.0; +https://example.org/bot)")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.1")

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req = req.WithContext(reqCtx)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &feedHTTPError{URL: feedURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body = stripToXMLStart(body)

	fp := gofeed.NewParser()
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		isoDate := ""
		if it.UpdatedParsed != nil {
			isoDate = it.UpdatedParsed.Format(time.RFC3339)
		}
		items = append(items, FeedItem{
			Title:           it.Title,
			Link:            it.Link,
			ContentSnippet:  it.Description,
			Summary:         it.Description,
			Content:         it.Content,
			ISODate:         isoDate,
			PubDate:         it.Published,
			PublishedParsed: it.PublishedParsed,
			MediaURLs:       extractMediaURLs(it),
			Enclosures:      extractEnclosures(it),
		})
	}
	return items, nil
}

// stripToXMLStart discards BOM bytes and any garbage a misbehaving origin
// prepends before the feed body, per the ingest normalization contract:
// the parser must see a clean document starting at <?xml, <rss, or <feed.
func stripToXMLStart(body []byte) []byte {
	body = bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF})

	earliest := -1
	for _, tok := range xmlStartTokens {
		if idx := bytes.Index(body, tok); idx != -1 && (earliest == -1 || idx < earliest) {
			earliest = idx
		}
	}
	if earliest <= 0 {
		return body
	}
	return body[earliest:]
}

// extractMediaURLs surfaces media:content, media:thumbnail, and nested
// media:group children that gofeed's base Item does not expose directly.
func extractMediaURLs(item *gofeed.Item) []string {
	if item.Extensions == nil {
		return nil
	}
	media, ok := item.Extensions["media"]
	if !ok {
		return nil
	}

	var urls []string
	for _, ext := range media["content"] {
		if u, ok := ext.Attrs["url"]; ok && u != "" {
			urls = append(urls, u)
		}
	}
	for _, ext := range media["thumbnail"] {
		if u, ok := ext.Attrs["url"]; ok && u != "" {
			urls = append(urls, u)
		}
	}
	for _, group := range media["group"] {
		for _, child := range group.Children["content"] {
			if u, ok := child.Attrs["url"]; ok && u != "" {
				urls = append(urls, u)
			}
		}
		for _, child := range group.Children["thumbnail"] {
			if u, ok := child.Attrs["url"]; ok && u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

func extractEnclosures(item *gofeed.Item) []Enclosure {
	if len(item.Enclosures) == 0 {
		return nil
	}
	out := make([]Enclosure, 0, len(item.Enclosures))
	for _, enc := range item.Enclosures {
		out = append(out, Enclosure{URL: enc.URL, Type: enc.Type})
	}
	return out
}

type feedHTTPError struct {
	URL        string
	StatusCode int
}

func (e *feedHTTPError) Error() string {
	return "feed fetch non-2xx status: " + http.StatusText(e.StatusCode) + " for " + e.URL
}
