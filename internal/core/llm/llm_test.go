package llm

import (
	"testing"

	"mudarris/internal/core"
)

func TestAnthropicDefaults(t *testing.T) {
	p := NewAnthropicLLM("key", "", core.GenParams{MaxTokens: 100})
	if p.Name() != "anthropic" {
		t.Errorf("Name = %q", p.Name())
	}
	if p.Model() != "claude-3-sonnet-20240229" {
		t.Errorf("default model = %q", p.Model())
	}

	custom := NewAnthropicLLM("key", "claude-3-opus-20240229", core.GenParams{})
	if custom.Model() != "claude-3-opus-20240229" {
		t.Errorf("model = %q", custom.Model())
	}
}

func TestOpenAIDefaults(t *testing.T) {
	p := NewOpenAILLM("key", "", core.GenParams{MaxTokens: 100})
	if p.Name() != "openai" {
		t.Errorf("Name = %q", p.Name())
	}
	if p.Model() != "gpt-3.5-turbo" {
		t.Errorf("default model = %q", p.Model())
	}
}
