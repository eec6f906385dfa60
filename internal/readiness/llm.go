package readiness

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are a senior AI adoption consultant writing practical, numerically consistent advice for business professionals. Follow the requested output format exactly."

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4096
	DefaultTimeout   = 60 * time.Second
)

// TextGenerator is the external text service: one instruction in, free text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

type AnthropicGenerator struct {
	messages  AnthropicMessager
	model     string
	maxTokens int64
	timeout   time.Duration
}

// NewAnthropicGenerator returns ErrNoGenerator when no API key is configured.
// SDK retries are disabled; retry policy belongs to the cascade.
func NewAnthropicGenerator(cfg AnthropicConfig) (*AnthropicGenerator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNoGenerator
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0))
	return NewAnthropicGeneratorWithMessager(&c.Messages, cfg), nil
}

func NewAnthropicGeneratorWithMessager(m AnthropicMessager, cfg AnthropicConfig) *AnthropicGenerator {
	g := &AnthropicGenerator{messages: m, model: cfg.Model, maxTokens: cfg.MaxTokens, timeout: cfg.Timeout}
	if strings.TrimSpace(g.model) == "" {
		g.model = DefaultModel
	}
	if g.maxTokens <= 0 {
		g.maxTokens = DefaultMaxTokens
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	return g
}

func (a *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   a.maxTokens,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0.4),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

type failureClass string

const (
	failureTimeout   failureClass = "timeout"
	failureRateLimit failureClass = "rate_limit"
	failureServer    failureClass = "server"
	failureClient    failureClass = "client"
	failureEmpty     failureClass = "empty"
)

// generate calls g and normalizes every failure, including an empty
// response, into an *ExternalServiceError.
func generate(ctx context.Context, g TextGenerator, op, prompt string) (string, error) {
	if g == nil {
		return "", &ExternalServiceError{Op: op, Err: ErrNoGenerator}
	}
	raw, err := g.Generate(ctx, prompt)
	if err != nil {
		return "", &ExternalServiceError{Op: op + " (" + string(classifyTransportError(err)) + ")", Err: err}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ExternalServiceError{Op: op + " (" + string(failureEmpty) + ")", Err: errors.New("empty response")}
	}
	return raw, nil
}

func classifyTransportError(err error) failureClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return failureRateLimit
		case apiErr.StatusCode >= 500:
			return failureServer
		case apiErr.StatusCode >= 400:
			return failureClient
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	}
	return s
}
