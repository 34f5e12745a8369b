// Package llm abstracts the Extractor's single model call: a system prompt
// plus a cluster's user-facing payload in, raw model text out. It
// generalizes the summarizer package's "text in, text out" call shape to
// "prompt in, raw JSON-bearing text out" — the Extractor, not this
// package, owns parsing and validating that text.
package llm

import "context"

// Client is the Extractor's view of a chat-completion model.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
