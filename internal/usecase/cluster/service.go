// Package cluster groups Articles that cover the same story using a
// lexical token-bag cosine similarity and greedy single-pass grouping, then
// hands each group to entity.NewCluster for primary selection and hashing.
package cluster

import (
	"sort"

	"hornwatch/internal/domain/entity"
)

// similarityThreshold is fixed by the clustering contract: two articles in
// the same input order are grouped once their token-bag cosine similarity
// reaches 0.35.
const similarityThreshold = 0.35

// Group runs the greedy single-pass clustering algorithm over articles,
// already in their input order, and returns the resulting Clusters sorted
// by LatestDate descending.
func Group(articles []entity.Article) ([]*entity.Cluster, error) {
	n := len(articles)
	bags := make([]map[string]int, n)
	for i, a := range articles {
		bags[i] = tokenBag(a.Title, a.Description)
	}

	assigned := make([]bool, n)
	var groups [][]entity.Article

	for i := 0; i < n; i++ {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		group := []entity.Article{articles[i]}

		for j := i + 1; j < n; j++ {
			if assigned[j] {
				continue
			}
			if cosineSimilarity(bags[i], bags[j]) >= similarityThreshold {
				assigned[j] = true
				group = append(group, articles[j])
			}
		}

		groups = append(groups, group)
	}

	clusters := make([]*entity.Cluster, 0, len(groups))
	for _, group := range groups {
		c, err := entity.NewCluster(group)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, c)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].LatestDate.After(clusters[j].LatestDate)
	})

	return clusters, nil
}
