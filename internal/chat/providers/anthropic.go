// Package providers implements the chat.Completion contract against real
// completion services.
package providers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sdkwatch/sdkwatch/internal/cache"
	"github.com/sdkwatch/sdkwatch/internal/chat"
	"github.com/sdkwatch/sdkwatch/internal/config"
)

// AnthropicProvider implements chat.Completion using the Anthropic
// Messages API.
type AnthropicProvider struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(apiKey, model string, maxTokens int) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &AnthropicProvider{
		client:    &client,
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Complete answers a single standalone prompt.
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}
	return p.send(ctx, messages, prompt)
}

// CompleteWithHistory answers message in the context of the given history.
// Primer turns are carried as user turns, matching what the session's
// grounding pair stands for.
func (p *AnthropicProvider) CompleteWithHistory(ctx context.Context, history []chat.Turn, message string) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		switch turn.Role {
		case chat.RoleModel:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
		case chat.RolePrimer, chat.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
		default:
			return "", fmt.Errorf("unknown turn role %q", turn.Role)
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))

	return p.send(ctx, messages, message)
}

func (p *AnthropicProvider) send(ctx context.Context, messages []anthropic.MessageParam, prompt string) (string, error) {
	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages:  messages,
	})
	if err != nil {
		p.cacheExchange(ctx, prompt, "", err)
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}

	p.cacheExchange(ctx, prompt, text, nil)

	if text == "" {
		return "", fmt.Errorf("anthropic returned no text content")
	}
	return text, nil
}

// cacheExchange writes the exchange to the debug cache, attributed to the
// calling session when there is one. Failures only log: caching is never
// allowed to fail a completion.
func (p *AnthropicProvider) cacheExchange(ctx context.Context, prompt, response string, callErr error) {
	exchange := cache.Exchange{
		Timestamp: time.Now(),
		Provider:  config.ProviderAnthropic,
		Model:     p.model,
		SessionID: chat.SessionIDFromContext(ctx),
		Prompt:    prompt,
		Response:  response,
	}
	if callErr != nil {
		exchange.Error = callErr.Error()
	}
	if _, err := cache.SaveExchange(exchange); err != nil {
		log.Printf("Failed to cache LLM exchange: %v", err)
	}
}

// NewFromConfig builds a Completion based on configuration.
func NewFromConfig(cfg config.AnalysisConfig) (chat.Completion, error) {
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("analysis.api_key is not set")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}
