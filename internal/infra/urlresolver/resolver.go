// Package urlresolver recovers the true publisher URL behind a syndication
// aggregator's opaque redirect link, per the four-strategy cascade: anchor
// scan, embedded payload decode, aggregator batch API, and HTML trampoline.
package urlresolver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// aggregatorDomains lists hosts whose links require resolution before a
// reader, clusterer, or image enricher can use them.
var aggregatorDomains = []string{
	"news.google.com",
}

const strategyTimeout = 8 * time.Second

// Resolver recovers publisher URLs from aggregator redirect links. Each
// strategy is best-effort: timeouts, HTTP errors, and parse failures move
// to the next strategy silently rather than surfacing an error.
type Resolver struct {
	client *http.Client
}

// New creates a Resolver using client for the HTML trampoline fetch.
func New(client *http.Client) *Resolver {
	return &Resolver{client: client}
}

// IsAggregatorURL reports whether rawURL's host is a known aggregator that
// requires resolution.
func IsAggregatorURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return isAggregatorHost(u.Hostname())
}

func isAggregatorHost(host string) bool {
	host = strings.ToLower(host)
	for _, d := range aggregatorDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Resolve runs strategies 1 (anchor scan), 2 (embedded payload), and 4
// (HTML trampoline) in order against originalURL, returning the first
// publisher URL found. anchorScanText is the item's raw content,
// description, summary, and content:encoded payload concatenated, used by
// strategy 1. If every strategy fails, originalURL is returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, originalURL, anchorScanText string) string {
	if resolved, ok := resolveFromAnchorScan(anchorScanText); ok {
		return resolved
	}

	if resolved, ok := resolveFromEmbeddedPayload(originalURL); ok {
		return resolved
	}

	if resolved, ok := r.resolveFromTrampoline(ctx, originalURL); ok {
		return resolved
	}

	return originalURL
}

var anchorHrefPattern = regexp.MustCompile(`(?i)<a\s[^>]*href=["']([^"']+)["']`)

// resolveFromAnchorScan implements strategy 1: the first <a href="…"> in
// the item's own payload whose target is not on an aggregator domain.
func resolveFromAnchorScan(payload string) (string, bool) {
	for _, m := range anchorHrefPattern.FindAllStringSubmatch(payload, -1) {
		candidate := strings.TrimSpace(m[1])
		if isCandidatePublisherURL(candidate) {
			return candidate, true
		}
	}
	return "", false
}

var candidatePattern = regexp.MustCompile(`^https?://[a-z0-9]`)

func isCandidatePublisherURL(candidate string) bool {
	if !candidatePattern.MatchString(strings.ToLower(candidate)) {
		return false
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	return !isAggregatorHost(u.Hostname())
}

// resolveFromTrampoline implements strategy 4: fetch the aggregator page
// and scan, in order, a meta refresh, a window.location assignment, a
// data-url attribute, and the first outbound anchor.
func (r *Resolver) resolveFromTrampoline(ctx context.Context, aggregatorURL string) (string, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, strategyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, aggregatorURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	if ref := aggregatorRoot(aggregatorURL); ref != "" {
		req.Header.Set("Referer", ref)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Debug("trampoline fetch failed", slog.String("url", aggregatorURL), slog.Any("error", err))
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", false
	}

	if content, ok := doc.Find(`meta[http-equiv="refresh"]`).Attr("content"); ok {
		if u, ok := extractRefreshURL(content); ok && isCandidatePublisherURL(u) {
			return u, true
		}
	}

	if u, ok := extractWindowLocation(string(body)); ok && isCandidatePublisherURL(u) {
		return u, true
	}

	if dataURL, ok := doc.Find("[data-url]").Attr("data-url"); ok && isCandidatePublisherURL(dataURL) {
		return dataURL, true
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if isCandidatePublisherURL(href) {
			found = href
			return false
		}
		return true
	})
	if found != "" {
		return found, true
	}

	return "", false
}

var refreshURLPattern = regexp.MustCompile(`(?i)url=(.+)$`)

func extractRefreshURL(content string) (string, bool) {
	m := refreshURLPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

var windowLocationPattern = regexp.MustCompile(`window\.location(?:\.href)?\s*=\s*["']([^"']+)["']`)

func extractWindowLocation(html string) (string, bool) {
	m := windowLocationPattern.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func aggregatorRoot(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}
