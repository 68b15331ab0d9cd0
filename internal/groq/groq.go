// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package groq calls the Groq-hosted inference API through its
// OpenAI-compatible chat-completions endpoint.
package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/scholarsynth/pkg/types"
)

// defaultBaseURL is the Groq OpenAI-compatible endpoint.
const defaultBaseURL = "https://api.groq.com/openai/v1"

// ChatMessage is one turn in a chat-completion conversation.
type ChatMessage struct {
	// Role is "system", "user", or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// Client sends chat completions to Groq.
type Client struct {
	model       string
	temperature float64
	keyHead     string
	opts        []option.RequestOption
}

// NewClient validates cfg and returns a Client. A missing API key is an
// error; callers must resolve the credential before any network call.
// Keys that do not carry the usual "gsk_" prefix and models outside the
// supported table produce warnings on stderr but are not rejected.
func NewClient(cfg types.LLMConfig) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("GROQ_API_KEY is not set: configure it in the environment, scholarsynth.yaml, or .secrets/groq-api-key")
	}
	if !strings.HasPrefix(key, "gsk_") {
		fmt.Fprintf(os.Stderr, "warning: Groq API key does not start with \"gsk_\" (got %q...)\n", keyPrefix(key))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if !IsSupported(model) {
		fmt.Fprintf(os.Stderr, "warning: model %q is not in the supported table; known models: %v\n", model, ModelIDs())
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.2
	}

	return &Client{
		model:       model,
		temperature: temperature,
		keyHead:     keyPrefix(key),
		opts: []option.RequestOption{
			option.WithAPIKey(key),
			option.WithBaseURL(baseURL),
			option.WithRequestTimeout(timeout),
		},
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete sends the conversation to Groq and returns the assistant reply.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	client := openai.NewClient(c.opts...)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(messages),
		Temperature: openai.Float(c.temperature),
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", c.mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("groq: empty choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func toParams(messages []ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// mapError turns Groq API errors into actionable messages: invalid key,
// rate limiting, and retired models each get specific guidance.
func (c *Client) mapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("groq request: %w", err)
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("invalid Groq API key: check GROQ_API_KEY (key starts with %q)", c.keyHead)
	case http.StatusTooManyRequests:
		return errors.New("Groq rate limit exceeded: wait and try again")
	case http.StatusBadRequest:
		msg := strings.ToLower(apiErr.Error())
		if strings.Contains(msg, "decommissioned") || strings.Contains(msg, "deprecated") {
			return fmt.Errorf("model %q is no longer served by Groq; use one of: %v", c.model, ModelIDs())
		}
	}
	return fmt.Errorf("groq request: %w", err)
}

// keyPrefix returns the first few characters of a key for diagnostics
// without leaking the credential.
func keyPrefix(key string) string {
	if len(key) <= 7 {
		return key
	}
	return key[:7]
}
