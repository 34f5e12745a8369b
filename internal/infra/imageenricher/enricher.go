// Package imageenricher fills in the image for cluster members still
// imageless after RSS-side extraction and URL resolution, by fetching the
// real publisher page and scanning its social meta tags.
package imageenricher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// maxCandidatesPerRun bounds the enricher's network fan-out per cycle.
	maxCandidatesPerRun = 60
	batchSize           = 10
	fetchTimeout        = 8 * time.Second
	maxBodyBytes        = 50 * 1024
)

// Enricher fetches a bounded number of publisher pages per run and extracts
// a social preview image (og:image, then twitter:image) for each.
type Enricher struct {
	client *http.Client
}

// New creates an Enricher using client for page fetches.
func New(client *http.Client) *Enricher {
	return &Enricher{client: client}
}

// EnrichBatch fetches og:image/twitter:image for each URL in urls, capped
// at maxCandidatesPerRun and processed batchSize at a time. Fetch or parse
// failures for one URL are logged and omitted from the result rather than
// failing the run.
func (e *Enricher) EnrichBatch(ctx context.Context, urls []string) map[string]string {
	if len(urls) > maxCandidatesPerRun {
		slog.Warn("image enrichment candidates exceed per-run cap, truncating",
			slog.Int("candidates", len(urls)), slog.Int("cap", maxCandidatesPerRun))
		urls = urls[:maxCandidatesPerRun]
	}

	result := make(map[string]string, len(urls))
	var mu sync.Mutex

	for start := 0; start < len(urls); start += batchSize {
		end := start + batchSize
		if end > len(urls) {
			end = len(urls)
		}
		batch := urls[start:end]

		var wg sync.WaitGroup
		for _, u := range batch {
			wg.Add(1)
			go func(articleURL string) {
				defer wg.Done()
				image, err := e.fetchSocialImage(ctx, articleURL)
				if err != nil {
					slog.Debug("image enrichment failed", slog.String("url", articleURL), slog.Any("error", err))
					return
				}
				if image == "" {
					return
				}
				mu.Lock()
				result[articleURL] = image
				mu.Unlock()
			}(u)
		}
		wg.Wait()
	}

	return result
}

func (e *Enricher) fetchSocialImage(ctx context.Context, articleURL string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s for %s", http.StatusText(resp.StatusCode), articleURL)
	}

	limited := io.LimitReader(resp.Body, maxBodyBytes)
	doc, err := goquery.NewDocumentFromReader(limited)
	if err != nil {
		return "", err
	}

	if img := metaContent(doc, "meta[property='og:image']", "meta[name='og:image']"); img != "" {
		return upgradeProtocolRelative(img), nil
	}
	if img := metaContent(doc, "meta[name='twitter:image']", "meta[property='twitter:image']"); img != "" {
		return upgradeProtocolRelative(img), nil
	}
	return "", nil
}

// metaContent tries each selector in order, returning the first non-empty
// content attribute. og:image and twitter:image tags appear with either
// attribute ordering in the wild (property/name swapped).
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).Attr("content"); ok && content != "" {
			return content
		}
	}
	return ""
}

func upgradeProtocolRelative(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}
