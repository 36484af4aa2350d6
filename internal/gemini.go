package internal

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

var (
	// ErrBlocked is returned when the model refuses the prompt
	ErrBlocked = errors.New("prompt blocked")
	// ErrEmptyResponse is returned when the model replies without candidates
	ErrEmptyResponse = errors.New("model returned no candidates")
)

// Completer turns a prompt into a single text completion
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient completes prompts with a Gemini model
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the Gemini API.
// opts may override the HTTP options, e.g. the base URL in tests.
func NewGeminiClient(ctx context.Context, apiKey, model string, opts ...func(*genai.ClientConfig)) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Complete sends the prompt as one user turn and returns the reply text
func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	log.Debugf("[GEMINI] Sending prompt to %s (%d bytes)", g.model, len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		log.Errorf("[GEMINI ERROR] Failed to generate content: %v", err)
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	log.Debugf("[GEMINI] Response received successfully")
	return resp.Text(), nil
}
