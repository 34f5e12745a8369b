// Package mailer implements the Digest Builder's weekly-send collaborator:
// one SMTP submission per recipient (no disclosed list), with a no-op
// default when SMTP configuration is absent.
package mailer

import "context"

// Mailer is the Digest Builder's view of dispatching a finished digest to a
// recipient list.
type Mailer interface {
	Send(ctx context.Context, recipients []string, subject, htmlBody, textBody string) error
}
