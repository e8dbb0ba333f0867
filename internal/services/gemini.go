package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/models"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

type geminiGenerator struct {
	client    *genai.Client
	modelName string
}

func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &geminiGenerator{
		client:    client,
		modelName: model,
	}, nil
}

// Generate implements Generator.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: gemini request: %w", models.ErrGenerationFailed, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: gemini returned nil response", models.ErrGenerationFailed)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content in gemini response", models.ErrGenerationFailed)
	}

	logger.Ctx(ctx).Debug().
		Str("model", g.modelName).
		Int("prompt_chars", len(prompt)).
		Int("reply_chars", len(text)).
		Dur("took", time.Since(start)).
		Msg("gemini response received")

	return text, nil
}
