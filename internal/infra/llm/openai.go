package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"hornwatch/internal/resilience/circuitbreaker"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAI implements Client using OpenAI's chat completion API.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	model          string
}

// NewOpenAI creates an OpenAI extraction client. model may be empty, in
// which case defaultOpenAIModel is used.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ExtractorAPIConfig()),
		model:          model,
	}
}

// Complete sends systemPrompt and userPrompt to OpenAI and returns the raw
// text response, retrying only on rate-limit signals per the Extractor's
// fixed call discipline.
func (o *OpenAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return retryRateLimited(ctx, func() (string, error) {
		result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, systemPrompt, userPrompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("extractor circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return "", fmt.Errorf("extractor llm unavailable: circuit breaker open")
			}
			return "", err
		}
		return result.(string), nil
	})
}

func (o *OpenAI) doComplete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
