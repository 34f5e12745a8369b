package mailer

import (
	"context"
	"log/slog"
)

// NoOp discards every send. Wired in when no SMTP host is configured, per
// "absence of SMTP disables weekly send".
type NoOp struct{}

// NewNoOp returns a Mailer that logs and discards.
func NewNoOp() *NoOp { return &NoOp{} }

func (NoOp) Send(_ context.Context, recipients []string, subject, _, _ string) error {
	slog.Info("digest mailer disabled, send skipped",
		slog.String("subject", subject), slog.Int("recipientCount", len(recipients)))
	return nil
}
