package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"mudarris/internal/core"
)

// OpenAILLM is the secondary provider in the fallback chain.
type OpenAILLM struct {
	client    openai.Client
	modelName string
	params    core.GenParams
}

func NewOpenAILLM(apiKey, modelName string, params core.GenParams) *OpenAILLM {
	if modelName == "" {
		modelName = "gpt-3.5-turbo"
	}
	return &OpenAILLM{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		modelName: modelName,
		params:    params,
	}
}

func (o *OpenAILLM) Name() string  { return "openai" }
func (o *OpenAILLM) Model() string { return o.modelName }

func (o *OpenAILLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.modelName),
		Messages:    messages,
		MaxTokens:   openai.Int(int64(o.params.MaxTokens)),
		Temperature: openai.Float(o.params.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

var _ core.Provider = (*OpenAILLM)(nil)
