package extract

import "hornwatch/internal/domain/entity"

// sourceTier derives an Event's SourceTier from the Reliability of a
// cluster's contributing articles, taking the highest tier present.
// Reliability.Rank() already orders high > medium > aggregator, so the
// highest tier is the reliability of the highest-ranked article.
func sourceTier(articles []entity.Article) entity.SourceTier {
	best := -1
	var bestReliability entity.Reliability
	for _, a := range articles {
		if rank := a.SourceReliability.Rank(); rank > best {
			best = rank
			bestReliability = a.SourceReliability
		}
	}

	switch bestReliability {
	case entity.ReliabilityHigh:
		return entity.SourceTierOne
	case entity.ReliabilityMedium:
		return entity.SourceTierTwo
	default:
		return entity.SourceTierThree
	}
}
