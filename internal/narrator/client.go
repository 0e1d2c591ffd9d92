package narrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fjacquet/plannerfin/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIClient defines the interface for text generation services.
// This abstraction allows the narration logic to be tested independently
// of external API calls.
type AIClient interface {
	// Generate returns the model's text answer to prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("no response from Gemini API")

// GeminiClient implements AIClient on top of the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiClient creates a client for the named model.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

// Generate sends prompt to Gemini and concatenates the text parts of the
// first candidate.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("Sending prompt to Gemini",
		logging.Field{Key: logging.FieldOperation, Value: "gemini_generate"},
		logging.Field{Key: logging.FieldCount, Value: len(prompt)})

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}
