package llm

import (
	"fmt"
	"strings"

	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"mudarris/internal/core"
)

// AnthropicLLM is the primary provider. It handles Arabic noticeably better
// than the alternatives, which is why it sits first in the priority list.
type AnthropicLLM struct {
	client    anthropic.Client
	modelName string
	params    core.GenParams
}

func NewAnthropicLLM(apiKey, modelName string, params core.GenParams) *AnthropicLLM {
	if modelName == "" {
		modelName = "claude-3-sonnet-20240229"
	}
	return &AnthropicLLM{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		modelName: modelName,
		params:    params,
	}
}

func (a *AnthropicLLM) Name() string  { return "anthropic" }
func (a *AnthropicLLM) Model() string { return a.modelName }

func (a *AnthropicLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.modelName),
		MaxTokens:   int64(a.params.MaxTokens),
		Temperature: anthropic.Float(a.params.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic generate: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, block := range msg.Content {
		b.WriteString(block.Text)
	}
	return b.String(), nil
}

var _ core.Provider = (*AnthropicLLM)(nil)
