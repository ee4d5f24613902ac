package ai

import (
	"context"
	"fmt"

	"hepatotrack/config"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiGenerator sends prompts to the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	log    *logrus.Logger
}

// NewGeminiGenerator returns nil, nil when no API key is configured; callers
// treat a nil generator as "AI disabled".
func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig, log *logrus.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
		log:    log,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	g.log.Debugf("Gemini returned %d characters", len(text))
	return text, nil
}
