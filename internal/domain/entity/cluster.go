package entity

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// Cluster groups Articles that report the same underlying story. Clusters
// are rebuilt from scratch every ingestion cycle; only the ClusterHash they
// compute is carried forward into the Event Store's dedup gate.
type Cluster struct {
	Articles       []Article
	PrimaryArticle Article
	Sources        []string
	SourceCount    int
	LatestDate     time.Time
	Category       Category
	Image          string
	ClusterHash    string
}

// NewCluster builds a Cluster from a non-empty set of Articles, sorting them
// by (reliability tier desc, publishedAt desc) and deriving the remaining
// fields per their definitions. Returns ErrInvalidInput if articles is empty.
func NewCluster(articles []Article) (*Cluster, error) {
	if len(articles) == 0 {
		return nil, ErrInvalidInput
	}

	sorted := make([]Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].SourceReliability.Rank(), sorted[j].SourceReliability.Rank()
		if ri != rj {
			return ri > rj
		}
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	sourceSet := make(map[string]struct{})
	var latest time.Time
	image := ""
	for _, a := range sorted {
		sourceSet[a.Source] = struct{}{}
		if a.PublishedAt.After(latest) {
			latest = a.PublishedAt
		}
		if image == "" && a.Image != "" {
			image = a.Image
		}
	}

	sources := make([]string, 0, len(sourceSet))
	for s := range sourceSet {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	c := &Cluster{
		Articles:       sorted,
		PrimaryArticle: sorted[0],
		Sources:        sources,
		SourceCount:    len(sources),
		LatestDate:     latest,
		Category:       sorted[0].SourceCategory,
		Image:          image,
	}
	c.ClusterHash = computeClusterHash(sorted)
	return c, nil
}

// computeClusterHash is the MD5 of the pipe-joined, sorted, lowercased,
// trimmed titles of every article in the cluster. It is deterministic under
// reordering of the input articles, which is what lets it serve as a stable
// dedup key across fetch cycles that re-discover the same story in a
// different feed order.
func computeClusterHash(articles []Article) string {
	titles := make([]string, len(articles))
	for i, a := range articles {
		titles[i] = strings.ToLower(strings.TrimSpace(a.Title))
	}
	sort.Strings(titles)
	joined := strings.Join(titles, "|")
	sum := md5.Sum([]byte(joined))
	return hex.EncodeToString(sum[:])
}
