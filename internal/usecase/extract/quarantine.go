package extract

import (
	"time"

	"hornwatch/internal/domain/entity"
)

// buildQuarantine records a failed extraction attempt for cluster c: a
// parse failure, a hard-validation failure, or a confidence too low to
// trust.
func buildQuarantine(c *entity.Cluster, rawOutput, modelVersion string, reasons []string) *entity.QuarantineRecord {
	return &entity.QuarantineRecord{
		ClusterHash:   c.ClusterHash,
		RawOutput:     rawOutput,
		ErrorReasons:  reasons,
		PrimaryTitle:  c.PrimaryArticle.Title,
		PrimaryURL:    c.PrimaryArticle.URL,
		Sources:       c.Sources,
		ArticleURLs:   articleURLs(c),
		ModelVersion:  modelVersion,
		PromptVersion: promptVersion,
		QuarantinedAt: time.Now(),
	}
}
