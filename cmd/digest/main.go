// Command digest builds the weekly Horn Risk Delta against the current
// event store and either prints it or sends it, without waiting for the
// worker's cron schedule. Useful for ad-hoc review and for re-sending a
// missed digest.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"hornwatch/internal/infra/adapter/persistence/sqlite"
	"hornwatch/internal/infra/db"
	"hornwatch/internal/infra/mailer"
	"hornwatch/internal/pkg/config"
	"hornwatch/internal/usecase/digest"
)

func main() {
	format := flag.String("format", "text", "output format when --send is not set: text or html")
	send := flag.Bool("send", false, "dispatch the digest by email instead of printing it")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate event store schema", slog.Any("error", err))
		os.Exit(1)
	}

	eventRepo := sqlite.NewEventRepo(database)
	svc := digest.NewService(eventRepo)

	ctx := context.Background()
	d, err := svc.Build(ctx, time.Now())
	if err != nil {
		logger.Error("digest build failed", slog.Any("error", err))
		os.Exit(1)
	}

	if *send {
		dispatcher := digest.NewDispatcher(createMailer(logger), sqlite.NewUnsubscribeRepo(database), loadRecipients())
		if err := dispatcher.Dispatch(ctx, d); err != nil {
			logger.Error("digest dispatch failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("digest dispatched", slog.String("subject", d.Subject()))
		return
	}

	switch *format {
	case "html":
		out, err := d.HTML()
		if err != nil {
			logger.Error("digest render failed", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Println(out)
	default:
		out, err := d.Text()
		if err != nil {
			logger.Error("digest render failed", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Println(out)
	}
}

func createMailer(logger *slog.Logger) mailer.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Warn("SMTP_HOST not set, digest will not actually be sent")
		return mailer.NewNoOp()
	}
	port := config.LoadEnvString("SMTP_PORT", "587")
	from := config.LoadEnvString("SMTP_FROM", "horn-risk-delta@localhost")
	return mailer.NewSMTP(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), from)
}

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
