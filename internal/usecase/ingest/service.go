package ingest

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/infra/urlresolver"

	"golang.org/x/sync/errgroup"
)

const timeWindow = 7 * 24 * time.Hour

// Stats summarizes one ingest run.
type Stats struct {
	Sources     int
	FeedItems   int
	Relevant    int
	InWindow    int
	SourceFails int
	Resolved    int
}

// URLResolver recovers the publisher URL behind an aggregator redirect
// link. anchorScanText is the raw item payload (content/description/
// summary) strategy 1 scans for an outbound anchor.
type URLResolver interface {
	Resolve(ctx context.Context, originalURL, anchorScanText string) string
}

// Service runs the Feed Ingestor: fetch every source in parallel, normalize,
// relevance-filter, and window-filter into a single deduplicated Article
// list.
type Service struct {
	Fetcher  FeedFetcher
	Sources  []entity.Source
	Resolver URLResolver // optional; nil disables aggregator URL resolution
}

// NewService builds a Feed Ingestor over the given sources.
func NewService(fetcher FeedFetcher, sources []entity.Source) *Service {
	return &Service{Fetcher: fetcher, Sources: sources}
}

// Run fetches all configured sources concurrently. A single source's
// failure is logged and contributes no articles; it never fails the batch.
func (s *Service) Run(ctx context.Context) ([]entity.Article, Stats, error) {
	var (
		mu       sync.Mutex
		articles []entity.Article
		stats    = Stats{Sources: len(s.Sources)}
	)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, src := range s.Sources {
		src := src
		eg.Go(func() error {
			items, err := s.Fetcher.Fetch(egCtx, src.URL)
			if err != nil {
				slog.Warn("feed fetch failed, skipping source",
					slog.String("source", src.Name),
					slog.String("url", src.URL),
					slog.Any("error", err))
				mu.Lock()
				stats.SourceFails++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			stats.FeedItems += len(items)
			mu.Unlock()

			for _, item := range items {
				if !IsRelevant(item.Title, body(item)) {
					continue
				}
				art := toArticle(item, src)
				if s.Resolver != nil && urlresolver.IsAggregatorURL(art.URL) {
					resolved := s.Resolver.Resolve(egCtx, art.URL, anchorScanPayload(item))
					if resolved != art.URL {
						art.URL = resolved
						mu.Lock()
						stats.Resolved++
						mu.Unlock()
					}
				}
				if err := art.Validate(); err != nil {
					slog.Debug("dropping invalid article",
						slog.String("source", src.Name),
						slog.String("title", art.Title),
						slog.Any("error", err))
					continue
				}

				mu.Lock()
				stats.Relevant++
				articles = append(articles, art)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, stats, err
	}

	articles = dedupeByURL(articles)
	articles = filterWindow(articles, time.Now())
	stats.InWindow = len(articles)

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	slog.Info("ingest run completed",
		slog.Int("sources", stats.Sources),
		slog.Int("feed_items", stats.FeedItems),
		slog.Int("relevant", stats.Relevant),
		slog.Int("in_window", stats.InWindow),
		slog.Int("source_fails", stats.SourceFails),
		slog.Int("resolved", stats.Resolved))

	return articles, stats, nil
}

func dedupeByURL(articles []entity.Article) []entity.Article {
	seen := make(map[string]bool, len(articles))
	out := make([]entity.Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}
	return out
}

func filterWindow(articles []entity.Article, now time.Time) []entity.Article {
	cutoff := now.Add(-timeWindow)
	out := make([]entity.Article, 0, len(articles))
	for _, a := range articles {
		if a.PublishedAt.After(cutoff) {
			out = append(out, a)
		}
	}
	return out
}
