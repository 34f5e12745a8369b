package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/infra/adapter/persistence/sqlite"
	"hornwatch/internal/infra/db"
	"hornwatch/internal/infra/imageenricher"
	"hornwatch/internal/infra/llm"
	"hornwatch/internal/infra/mailer"
	"hornwatch/internal/infra/urlresolver"
	workerPkg "hornwatch/internal/infra/worker"
	"hornwatch/internal/observability/logging"
	"hornwatch/internal/observability/tracing"
	"hornwatch/internal/pkg/config"
	"hornwatch/internal/usecase/cluster"
	"hornwatch/internal/usecase/digest"
	"hornwatch/internal/usecase/extract"
	"hornwatch/internal/usecase/ingest"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("digest_cron_schedule", workerConfig.DigestCronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("ingest_max_concurrent", workerConfig.IngestMaxConcurrent),
		slog.Duration("crawl_timeout", workerConfig.CrawlTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	httpClient := createHTTPClient()

	sourcesPath := config.LoadEnvString("SOURCES_CONFIG_PATH", "./configs/sources.yaml")
	sources, err := ingest.LoadSources(sourcesPath)
	if err != nil {
		logger.Error("failed to load sources", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("sources loaded", slog.Int("count", len(sources)), slog.String("path", sourcesPath))

	ingestSvc := ingest.NewService(ingest.NewRSSFetcher(httpClient), sources)
	ingestSvc.Resolver = urlresolver.New(httpClient)
	batchResolver := urlresolver.NewBatchResolver(httpClient)
	enricher := imageenricher.New(httpClient)

	eventRepo := sqlite.NewEventRepo(database)
	quarantineRepo := sqlite.NewQuarantineRepo(database)
	unsubscribeRepo := sqlite.NewUnsubscribeRepo(database)

	llmClient, extractionEnabled := createLLMClient(logger)
	modelVersion := config.LoadEnvString("EXTRACTOR_MODEL_VERSION", "v1")
	extractSvc := extract.NewService(llmClient, eventRepo, quarantineRepo, modelVersion)

	digestSvc := digest.NewService(eventRepo)
	digestDispatcher := digest.NewDispatcher(createMailer(logger), unsubscribeRepo, loadRecipients())

	startCronWorker(ctx, logger, workerConfig, workerMetrics, healthServer,
		ingestSvc, enricher, batchResolver, extractSvc, extractionEnabled, digestSvc, digestDispatcher)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the embedded event store and applies its schema.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate event store schema", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// createLLMClient selects the Extractor's model client from LLM_PROVIDER
// (default "anthropic"). Absence of the corresponding API key disables
// extraction: the ingest+cluster half of the cycle still runs.
func createLLMClient(logger *slog.Logger) (llm.Client, bool) {
	provider := strings.ToLower(config.LoadEnvString("LLM_PROVIDER", "anthropic"))

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Warn("OPENAI_API_KEY not set, extraction disabled")
			return llm.NewNoOp(), false
		}
		logger.Info("extractor llm client configured", slog.String("provider", "openai"))
		return llm.NewOpenAI(apiKey, os.Getenv("OPENAI_MODEL")), true

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Warn("ANTHROPIC_API_KEY not set, extraction disabled")
			return llm.NewNoOp(), false
		}
		logger.Info("extractor llm client configured", slog.String("provider", "anthropic"))
		return llm.NewClaude(apiKey, os.Getenv("ANTHROPIC_MODEL")), true

	default:
		logger.Warn("unknown LLM_PROVIDER, extraction disabled", slog.String("provider", provider))
		return llm.NewNoOp(), false
	}
}

// createMailer selects the digest's send mechanism. Absence of SMTP_HOST
// disables the weekly send: the digest is still built and logged, just not
// delivered.
func createMailer(logger *slog.Logger) mailer.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Info("SMTP_HOST not set, weekly digest send disabled")
		return mailer.NewNoOp()
	}
	port := config.LoadEnvString("SMTP_PORT", "587")
	from := config.LoadEnvString("SMTP_FROM", "horn-risk-delta@localhost")
	logger.Info("digest mailer configured", slog.String("host", host), slog.String("port", port))
	return mailer.NewSMTP(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), from)
}

// loadRecipients parses the comma-separated DIGEST_RECIPIENTS env var.
func loadRecipients() []string {
	raw := os.Getenv("DIGEST_RECIPIENTS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// startCronWorker registers the ingest+extract cycle and the weekly digest
// job on their own cron schedules and blocks forever.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
	ingestSvc *ingest.Service,
	enricher *imageenricher.Enricher,
	batchResolver *urlresolver.BatchResolver,
	extractSvc *extract.Service,
	extractionEnabled bool,
	digestSvc *digest.Service,
	digestDispatcher *digest.Dispatcher,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runIngestCycle(ctx, logger, cfg, metrics, ingestSvc, enricher, batchResolver, extractSvc, extractionEnabled)
	})
	if err != nil {
		logger.Error("failed to add ingest cron job", slog.Any("error", err))
		os.Exit(1)
	}

	_, err = c.AddFunc(cfg.DigestCronSchedule, func() {
		runDigestJob(ctx, logger, metrics, digestSvc, digestDispatcher)
	})
	if err != nil {
		logger.Error("failed to add digest cron job", slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker marked as ready")
	logger.Info("worker started",
		slog.String("ingest_schedule", cfg.CronSchedule),
		slog.String("digest_schedule", cfg.DigestCronSchedule),
		slog.String("timezone", cfg.Timezone))

	select {}
}

// runIngestCycle fetches every source, clusters the resulting articles,
// enriches clusters still missing a preview image, and hands the clusters
// to the Extractor. Extraction is skipped entirely (but ingest still
// counts toward metrics) when no LLM client is configured.
func runIngestCycle(
	ctx context.Context,
	logger *slog.Logger,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	ingestSvc *ingest.Service,
	enricher *imageenricher.Enricher,
	batchResolver *urlresolver.BatchResolver,
	extractSvc *extract.Service,
	extractionEnabled bool,
) {
	startTime := time.Now()

	cycleCtx, cancel := context.WithTimeout(ctx, cfg.CrawlTimeout)
	defer cancel()
	cycleCtx = logging.WithRunIDValue(cycleCtx, uuid.NewString())
	logger = logging.WithRunID(cycleCtx, logger)

	cycleCtx, span := tracing.GetTracer().Start(cycleCtx, "worker.ingestCycle")
	defer span.End()

	logger.Info("ingest cycle started")

	articles, ingestStats, err := ingestSvc.Run(cycleCtx)
	if err != nil {
		logger.Error("ingest run failed", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	clusters, err := cluster.Group(articles)
	if err != nil {
		logger.Error("clustering failed", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	enrichClusterImages(cycleCtx, enricher, batchResolver, clusters)

	if extractionEnabled {
		extractStats, err := extractSvc.Run(cycleCtx, clusters)
		if err != nil {
			logger.Error("extraction run failed", slog.Any("error", err))
			metrics.RecordJobRun("failure")
			metrics.RecordJobDuration(time.Since(startTime).Seconds())
			return
		}
		logger.Info("ingest cycle completed",
			slog.Int("sources", ingestStats.Sources),
			slog.Int("in_window", ingestStats.InWindow),
			slog.Int("clusters", len(clusters)),
			slog.Int("extracted", extractStats.Extracted),
			slog.Int("quarantined", extractStats.Quarantined))
	} else {
		logger.Info("ingest cycle completed, extraction skipped (no llm client configured)",
			slog.Int("sources", ingestStats.Sources),
			slog.Int("in_window", ingestStats.InWindow),
			slog.Int("clusters", len(clusters)))
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordFeedsProcessed(ingestStats.Sources)
	metrics.RecordLastSuccess()
}

// enrichClusterImages fetches a social preview image for every cluster
// whose primary article didn't carry one from the feed itself. A primary
// article still carrying an aggregator URL at this point means strategies
// 1/2/4 failed during ingest; since that URL is now needed for enrichment,
// it gets one more resolution attempt through the aggregator's batch API
// (strategy 3) before the enricher tries to scrape it.
func enrichClusterImages(ctx context.Context, enricher *imageenricher.Enricher, batchResolver *urlresolver.BatchResolver, clusters []*entity.Cluster) {
	var missing []string
	for _, c := range clusters {
		if c.Image == "" {
			missing = append(missing, c.PrimaryArticle.URL)
		}
	}
	if len(missing) == 0 {
		return
	}

	var stillAggregator []string
	for _, u := range missing {
		if urlresolver.IsAggregatorURL(u) {
			stillAggregator = append(stillAggregator, u)
		}
	}
	if len(stillAggregator) > 0 {
		resolved := batchResolver.ResolveBatchURLs(ctx, stillAggregator)
		for _, c := range clusters {
			if c.Image == "" {
				if publisherURL, ok := resolved[c.PrimaryArticle.URL]; ok {
					c.PrimaryArticle.URL = publisherURL
				}
			}
		}
		missing = missing[:0]
		for _, c := range clusters {
			if c.Image == "" {
				missing = append(missing, c.PrimaryArticle.URL)
			}
		}
	}

	found := enricher.EnrichBatch(ctx, missing)
	for _, c := range clusters {
		if c.Image == "" {
			if img, ok := found[c.PrimaryArticle.URL]; ok {
				c.Image = img
			}
		}
	}
}

// runDigestJob builds the weekly Risk Delta and dispatches it to active
// recipients. A nil send (SMTP absent) is not an error: NoOp logs and
// returns nil.
func runDigestJob(ctx context.Context, logger *slog.Logger, metrics *workerPkg.WorkerMetrics, digestSvc *digest.Service, dispatcher *digest.Dispatcher) {
	startTime := time.Now()

	ctx = logging.WithRunIDValue(ctx, uuid.NewString())
	logger = logging.WithRunID(ctx, logger)

	ctx, span := tracing.GetTracer().Start(ctx, "worker.digestJob")
	defer span.End()

	logger.Info("digest job started")

	d, err := digestSvc.Build(ctx, time.Now())
	if err != nil {
		logger.Error("digest build failed", slog.Any("error", err))
		metrics.RecordJobRun("digest_failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	if err := dispatcher.Dispatch(ctx, d); err != nil {
		logger.Error("digest dispatch failed", slog.Any("error", err))
		metrics.RecordJobRun("digest_failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	logger.Info("digest job completed",
		slog.String("window", d.ThisWeek.Label),
		slog.Int("total_events", d.Topline.TotalThisWeek),
		slog.Int("high_severity", len(d.HighSeverity)))
	metrics.RecordJobRun("digest_success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordLastSuccess()
}
