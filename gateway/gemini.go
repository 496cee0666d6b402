package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/tailored-agentic-units/apoteker/core/protocol"
	"github.com/tailored-agentic-units/apoteker/observability"
)

// Gateway event types.
const (
	EventRequest  observability.EventType = "gateway.request"
	EventResponse observability.EventType = "gateway.response"
	EventError    observability.EventType = "gateway.error"
)

// Option configures a Gemini gateway at construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
	observer   observability.Observer
}

// WithHTTPClient sets the HTTP client used by the underlying genai client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithObserver sets the event sink. Defaults to NoOpObserver.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Gemini is a Gateway backed by the Gemini generateContent API. The client
// and generation config are built once and only read afterwards, so a single
// Gemini can be shared for the life of the process.
type Gemini struct {
	client    *genai.Client
	model     string
	genConfig *genai.GenerateContentConfig
	timeout   time.Duration
	observer  observability.Observer
}

var _ Gateway = (*Gemini)(nil)

// NewGemini validates cfg and creates the genai client. Every failure wraps
// ErrInitialization.
func NewGemini(ctx context.Context, cfg *Config, apiKey string, opts ...Option) (*Gemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: api key is empty", ErrInitialization)
	}

	o := options{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	temp := float32(*cfg.Temperature)
	return &Gemini{
		client: client,
		model:  cfg.Model,
		genConfig: &genai.GenerateContentConfig{
			Temperature:     &temp,
			MaxOutputTokens: int32(cfg.MaxOutputTokens),
		},
		timeout:  cfg.Timeout.Duration,
		observer: o.observer,
	}, nil
}

// Model returns the configured model identifier.
func (g *Gemini) Model() string {
	return g.model
}

// GenerateReply sends history plus newUserText as one generateContent
// request bounded by the configured timeout.
func (g *Gemini) GenerateReply(ctx context.Context, history []protocol.Turn, newUserText string) (string, error) {
	if err := protocol.ValidateTranscript(history); err != nil {
		return "", fmt.Errorf("gateway: %w", err)
	}

	contents := buildContents(history, newUserText)

	g.observer.OnEvent(ctx, observability.NewEvent(EventRequest, observability.LevelVerbose, "gateway.GenerateReply",
		map[string]any{
			"model":         g.model,
			"contents":      len(contents),
			"timeout_ms":    g.timeout.Milliseconds(),
			"prompt_length": len(newUserText),
		}))

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(callCtx, g.model, contents, g.genConfig)
	elapsed := time.Since(start)
	if err != nil {
		return "", g.fail(ctx, classify(ctx, callCtx, err), elapsed)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", g.fail(ctx, newInferenceError(ErrProviderError,
			fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)), elapsed)
	}

	text := replyText(resp)
	if text == "" {
		return "", g.fail(ctx, newInferenceError(ErrEmptyResponse, nil), elapsed)
	}

	g.observer.OnEvent(ctx, observability.NewEvent(EventResponse, observability.LevelInfo, "gateway.GenerateReply",
		map[string]any{
			"model":        g.model,
			"reply_length": len(text),
			"duration_ms":  elapsed.Milliseconds(),
		}))

	return text, nil
}

func (g *Gemini) fail(ctx context.Context, err error, elapsed time.Duration) error {
	data := map[string]any{
		"model":       g.model,
		"duration_ms": elapsed.Milliseconds(),
		"error":       err.Error(),
	}
	var ie *InferenceError
	if errors.As(err, &ie) {
		data["kind"] = ie.Kind.Error()
	}
	g.observer.OnEvent(ctx, observability.NewEvent(EventError, observability.LevelWarning, "gateway.GenerateReply", data))
	return err
}

func buildContents(history []protocol.Turn, newUserText string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  string(turn.Role),
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	return append(contents, &genai.Content{
		Role:  string(protocol.RoleUser),
		Parts: []*genai.Part{{Text: newUserText}},
	})
}

// replyText concatenates the text parts of the first candidate.
func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// classify maps a failed call onto an InferenceError. parent is the caller's
// context, callCtx the one carrying the gateway timeout. A response body that
// cannot be decoded is a provider fault, not a transport one.
func classify(parent, callCtx context.Context, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		// Caller went away (shutdown); not an inference outcome.
		return fmt.Errorf("gateway: %w", parent.Err())
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return newInferenceError(ErrTimeout, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &InferenceError{Kind: ErrProviderError, Code: apiErr.Code, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &InferenceError{Kind: ErrProviderError, Code: apiErrPtr.Code, Err: err}
	}

	if malformedResponse(err) {
		return newInferenceError(ErrProviderError, err)
	}

	return newInferenceError(ErrTransportFailure, err)
}

// malformedResponse reports whether the provider answered but the body could
// not be decoded. genai does not always wrap the json error, so its message
// prefix is checked as well.
func malformedResponse(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return true
	}
	return strings.Contains(err.Error(), "deserializeUnaryResponse")
}
