package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/models"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "google/gemini-2.5-flash"
)

type OpenRouterOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

type openRouterGenerator struct {
	client *resty.Client
	model  string
}

func NewOpenRouterGenerator(opts OpenRouterOptions) (Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is empty")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOpenRouterBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultOpenRouterModel
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetAuthToken(opts.APIKey).
		SetHeader("Content-Type", "application/json")

	return &openRouterGenerator{
		client: client,
		model:  opts.Model,
	}, nil
}

// Generate implements Generator.
func (o *openRouterGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": o.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: openrouter request: %w", models.ErrGenerationFailed, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: openrouter status %d", models.ErrGenerationFailed, resp.StatusCode())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no content in openrouter response", models.ErrGenerationFailed)
	}

	logger.Ctx(ctx).Debug().
		Str("model", o.model).
		Int("prompt_chars", len(prompt)).
		Int("reply_chars", len(text)).
		Dur("took", time.Since(start)).
		Msg("openrouter response received")

	return text, nil
}
