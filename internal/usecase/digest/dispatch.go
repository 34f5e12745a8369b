package digest

import (
	"context"
	"fmt"

	"hornwatch/internal/infra/mailer"
	"hornwatch/internal/repository"
)

// Dispatcher sends a built Digest to a static recipient list, excluding any
// address the unsubscribe table has recorded an opt-out for.
type Dispatcher struct {
	Mailer          mailer.Mailer
	UnsubscribeRepo repository.UnsubscribeRepository
	Recipients      []string
}

// NewDispatcher wires a Dispatcher from its collaborators.
func NewDispatcher(m mailer.Mailer, unsubRepo repository.UnsubscribeRepository, recipients []string) *Dispatcher {
	return &Dispatcher{Mailer: m, UnsubscribeRepo: unsubRepo, Recipients: recipients}
}

// Dispatch renders d and sends it to every active recipient.
func (disp *Dispatcher) Dispatch(ctx context.Context, d *Digest) error {
	html, err := d.HTML()
	if err != nil {
		return fmt.Errorf("Dispatch: %w", err)
	}
	text, err := d.Text()
	if err != nil {
		return fmt.Errorf("Dispatch: %w", err)
	}

	active := make([]string, 0, len(disp.Recipients))
	for _, r := range disp.Recipients {
		unsubscribed, err := disp.UnsubscribeRepo.IsUnsubscribed(ctx, r)
		if err != nil {
			return fmt.Errorf("Dispatch: IsUnsubscribed(%s): %w", r, err)
		}
		if !unsubscribed {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return nil
	}

	return disp.Mailer.Send(ctx, active, d.Subject(), html, text)
}
