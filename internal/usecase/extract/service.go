// Package extract runs the Extractor: one model call per cluster not yet
// in the event store, turning each into a validated Event or a
// QuarantineRecord.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/infra/llm"
	"hornwatch/internal/repository"
)

// interCallDelay paces consecutive model calls across clusters,
// independent of whatever retry/backoff a single call does internally.
const interCallDelay = 3 * time.Second

// Stats summarizes one extraction cycle.
type Stats struct {
	Pending     int
	Extracted   int
	Quarantined int
	Skipped     int
}

// Service runs the Extractor.
type Service struct {
	LLM            llm.Client
	EventRepo      repository.EventRepository
	QuarantineRepo repository.QuarantineRepository
	ModelVersion   string
}

// NewService creates an extraction Service.
func NewService(client llm.Client, eventRepo repository.EventRepository, quarantineRepo repository.QuarantineRepository, modelVersion string) *Service {
	return &Service{LLM: client, EventRepo: eventRepo, QuarantineRepo: quarantineRepo, ModelVersion: modelVersion}
}

type outcome int

const (
	outcomeQuarantined outcome = iota
	outcomeExtracted
)

// Run extracts every cluster not already present in the event store, one
// at a time, pacing interCallDelay between model calls.
func (s *Service) Run(ctx context.Context, clusters []*entity.Cluster) (Stats, error) {
	var stats Stats
	prompt := systemPrompt()
	called := false

	for _, c := range clusters {
		exists, err := s.EventRepo.Exists(ctx, c.ClusterHash)
		if err != nil {
			return stats, fmt.Errorf("check cluster hash existence: %w", err)
		}
		if exists {
			stats.Skipped++
			continue
		}
		stats.Pending++

		if called {
			select {
			case <-time.After(interCallDelay):
			case <-ctx.Done():
				return stats, ctx.Err()
			}
		}
		called = true

		result, err := s.processCluster(ctx, c, prompt)
		if err != nil {
			return stats, err
		}
		if result == outcomeExtracted {
			stats.Extracted++
		} else {
			stats.Quarantined++
		}
	}

	slog.Info("extraction cycle completed",
		slog.Int("pending", stats.Pending),
		slog.Int("extracted", stats.Extracted),
		slog.Int("quarantined", stats.Quarantined),
		slog.Int("skipped", stats.Skipped))

	return stats, nil
}

// processCluster runs one cluster through the model, parses and validates
// the result, and persists either an Event or a QuarantineRecord. The
// returned error is non-nil only for infrastructure failures (context
// cancellation, repository errors) that should abort the whole cycle; bad
// model output is captured as a quarantine record instead of surfaced as
// an error.
func (s *Service) processCluster(ctx context.Context, c *entity.Cluster, prompt string) (outcome, error) {
	rawOutput, err := s.LLM.Complete(ctx, prompt, userPrompt(c.Articles))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return outcomeQuarantined, err
		}
		slog.Warn("extractor llm call failed, quarantining",
			slog.String("cluster_hash", c.ClusterHash),
			slog.Any("error", err))
		return s.quarantine(ctx, c, "", []string{err.Error()})
	}

	raw, perr := parseRaw(rawOutput)
	if perr != nil {
		return s.quarantine(ctx, c, rawOutput, []string{perr.Error()})
	}

	if errs := hardErrors(raw); len(errs) > 0 {
		return s.quarantine(ctx, c, rawOutput, errs)
	}

	confidence := defaultConfidence
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}
	if lowConfidenceQuarantine(confidence) {
		return s.quarantine(ctx, c, rawOutput,
			[]string{fmt.Sprintf("confidence %.2f below quarantine threshold", confidence)})
	}

	event := buildEvent(raw, c, s.ModelVersion)
	if err := event.Validate(); err != nil {
		return s.quarantine(ctx, c, rawOutput, []string{err.Error()})
	}

	if err := s.EventRepo.InsertEvent(ctx, event); err != nil {
		return outcomeExtracted, fmt.Errorf("insert event: %w", err)
	}
	return outcomeExtracted, nil
}

func (s *Service) quarantine(ctx context.Context, c *entity.Cluster, rawOutput string, reasons []string) (outcome, error) {
	record := buildQuarantine(c, rawOutput, s.ModelVersion, reasons)
	if err := s.QuarantineRepo.Insert(ctx, record); err != nil {
		return outcomeQuarantined, fmt.Errorf("insert quarantine record: %w", err)
	}
	return outcomeQuarantined, nil
}
