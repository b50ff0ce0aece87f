package engine

import (
	"context"
	"encoding/json"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"mudarris/internal/core"
)

// Options bias the language, verbosity and post-processing of a response.
type Options struct {
	PreferArabic          bool
	EnhancedArabicMode    bool
	RequestCompleteAnswer bool
}

// HistoryTurn is one prior conversation message passed back by the caller.
// The web client labels the speaker under "type"; API callers use "role".
// Both keys decode, "role" winning when present.
type HistoryTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

func (h *HistoryTurn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role string `json:"role"`
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.Role = raw.Role
	if h.Role == "" {
		h.Role = raw.Type
	}
	h.Text = raw.Text
	return nil
}

// Result is what Generate always returns; there is no error path outward.
type Result struct {
	Text       string
	Confidence float64
	Provider   string
	Model      string
}

// Confidence levels recorded on assistant messages.
const (
	providerConfidence = 0.85
	fallbackConfidence = 0.6
)

// Engine composes prompts and walks an ordered provider list, degrading to
// template responses when every provider is unavailable or fails. It holds
// no persistent state: a Result is a function of (message, context, history,
// options) and the injected configuration.
type Engine struct {
	providers []core.Provider
	timeout   time.Duration
	pick      func(n int) int
}

func New(providers []core.Provider, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Engine{providers: providers, timeout: timeout, pick: rand.IntN}
}

// Available reports whether at least one provider is configured.
func (e *Engine) Available() bool { return len(e.providers) > 0 }

// ProviderNames lists the configured adapters in priority order.
func (e *Engine) ProviderNames() []string {
	names := make([]string, 0, len(e.providers))
	for _, p := range e.providers {
		names = append(names, p.Name())
	}
	return names
}

// Generate produces a response for the user message. Provider failures are
// recovered locally: each adapter is tried in order under a bounded timeout,
// and when the whole chain fails a template fallback is returned. The
// enhancement pass applies to provider output only.
func (e *Engine) Generate(ctx context.Context, userMessage, docContext string, history []HistoryTurn, opts Options) Result {
	prompt := buildPrompt(userMessage, docContext, history, opts)

	for _, p := range e.providers {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		text, err := p.Generate(callCtx, systemPrompt, prompt)
		cancel()
		if err != nil {
			log.Printf("engine: provider %s failed: %v", p.Name(), err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Printf("engine: provider %s returned empty content", p.Name())
			continue
		}

		if opts.EnhancedArabicMode {
			text = EnhanceArabic(text)
		}
		log.Printf("engine: response generated by %s", p.Name())
		return Result{
			Text:       text,
			Confidence: providerConfidence,
			Provider:   p.Name(),
			Model:      p.Model(),
		}
	}

	return Result{
		Text:       e.fallbackResponse(userMessage, docContext),
		Confidence: fallbackConfidence,
		Provider:   "fallback",
		Model:      "fallback",
	}
}
