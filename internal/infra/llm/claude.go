package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"hornwatch/internal/resilience/circuitbreaker"
)

const (
	// extractionTemperature is held near zero: the Extractor classifies
	// into a fixed schema rather than composing prose, and the prompt's
	// enums leave little room for beneficial creativity.
	extractionTemperature = 0.1
	extractionMaxTokens   = 500

	defaultClaudeModel = "claude-3-5-haiku-20241022"
)

// Claude implements Client using Anthropic's Messages API.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	model          string
}

// NewClaude creates a Claude extraction client. model may be empty, in
// which case defaultClaudeModel is used.
func NewClaude(apiKey, model string) *Claude {
	if model == "" {
		model = defaultClaudeModel
	}
	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ExtractorAPIConfig()),
		model:          model,
	}
}

// Complete sends systemPrompt and userPrompt to Claude and returns the raw
// text response, retrying only on rate-limit signals per the Extractor's
// fixed call discipline.
func (c *Claude) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return retryRateLimited(ctx, func() (string, error) {
		result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, systemPrompt, userPrompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("extractor circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return "", fmt.Errorf("extractor llm unavailable: circuit breaker open")
			}
			return "", err
		}
		return result.(string), nil
	})
}

func (c *Claude) doComplete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   extractionMaxTokens,
		Temperature: anthropic.Float(extractionTemperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}
	return textBlock.Text, nil
}
