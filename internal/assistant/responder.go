package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Responder answers free-text chat messages.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
	Name() string
}

// DefaultReplies are the stock answers of the canned responder.
var DefaultReplies = []string{
	"I can help with inventory, schedules, payroll and more. Try saying \"show inventory\".",
	"Your low-stock items are listed on the inventory page. Want me to open it?",
	"Labor cost is tracking close to plan this week. The payroll page has the details.",
	"Two maintenance tasks are coming up. Say \"open maintenance\" to review them.",
	"Waste diversion is up compared to last week. Nice work on composting!",
	"I've noted that. Anything else you'd like to check before service?",
}

// CannedResponder picks a stock reply at random, optionally after a delay.
type CannedResponder struct {
	replies []string
	delay   time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCannedResponder creates a canned responder. A nil rng is seeded from
// the clock; an empty reply list uses DefaultReplies.
func NewCannedResponder(replies []string, delay time.Duration, rng *rand.Rand) *CannedResponder {
	if len(replies) == 0 {
		replies = DefaultReplies
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CannedResponder{replies: replies, delay: delay, rng: rng}
}

// Name identifies the responder in replies and metrics.
func (c *CannedResponder) Name() string { return "canned" }

// Respond waits for the configured delay, then returns a random reply.
func (c *CannedResponder) Respond(ctx context.Context, _ string) (string, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	c.mu.Lock()
	i := c.rng.Intn(len(c.replies))
	c.mu.Unlock()
	return c.replies[i], nil
}

const systemPrompt = `You are RestauPilot, an assistant inside a restaurant management dashboard.
Answer briefly and practically about inventory, staff scheduling, payroll, compliance,
equipment maintenance, waste and sustainability. If you do not know a figure, say so
and point the user to the relevant dashboard page.`

// LLMResponder forwards messages to a language model and falls back to
// another responder when the model call fails.
type LLMResponder struct {
	model    llms.Model
	fallback Responder
	opts     []llms.CallOption
}

// NewLLMResponder wraps model. fallback may be nil.
func NewLLMResponder(model llms.Model, fallback Responder, opts ...llms.CallOption) *LLMResponder {
	return &LLMResponder{model: model, fallback: fallback, opts: opts}
}

// NewOpenAIModel creates an OpenAI-compatible chat model.
func NewOpenAIModel(model, token, baseURL string) (llms.Model, error) {
	if token == "" {
		return nil, errors.New("an API key is required for the llm assistant")
	}
	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(token),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return llm, nil
}

// Name identifies the responder in replies and metrics.
func (l *LLMResponder) Name() string { return "llm" }

// Respond asks the model for a reply.
func (l *LLMResponder) Respond(ctx context.Context, message string) (string, error) {
	resp, err := l.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, message),
	}, l.opts...)
	if err == nil && (resp == nil || len(resp.Choices) == 0) {
		err = errors.New("empty response from model")
	}
	if err != nil {
		if l.fallback == nil || ctx.Err() != nil {
			return "", fmt.Errorf("generate reply: %w", err)
		}
		return l.fallback.Respond(ctx, message)
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
