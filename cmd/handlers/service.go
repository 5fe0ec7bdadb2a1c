package handlers

import (
	"context"
	"fmt"

	"marketspy/internal/config"
	"marketspy/internal/llm"
	"marketspy/internal/logger"
	"marketspy/internal/research"
)

// newResearchService builds the Gemini-backed research service from configuration.
// The client is created once here and handed down.
func newResearchService(ctx context.Context, cfg *config.Config) (*research.Service, error) {
	gemini := cfg.AI.Gemini
	if !config.HasValidGeminiKey() {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or ai.gemini.api_key in config file.\nGet your API key from: https://aistudio.google.com/app/apikey")
	}

	client, err := llm.NewGeminiClient(ctx, llm.Config{
		APIKey:            gemini.APIKey,
		Model:             gemini.Model,
		BaseURL:           gemini.BaseURL,
		Timeout:           gemini.TimeoutDuration(),
		Temperature:       gemini.Temperature,
		MaxOutputTokens:   gemini.MaxTokens,
		RequestsPerMinute: gemini.RequestsPerMinute,
	})
	if err != nil {
		return nil, err
	}

	log := logger.Get()
	return research.New(
		llm.NewTracedClient(client, log),
		research.WithLogger(log),
		research.WithMaxProducts(cfg.Research.MaxProducts),
		research.WithValidation(cfg.Research.ValidateSchema),
	), nil
}
