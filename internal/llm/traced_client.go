package llm

import (
	"context"
	"log/slog"
	"time"
)

// TracedClient wraps a Generator and logs latency, size and outcome of every call.
type TracedClient struct {
	next Generator
	log  *slog.Logger
}

// NewTracedClient wraps next. A nil logger falls back to slog.Default.
func NewTracedClient(next Generator, log *slog.Logger) *TracedClient {
	if log == nil {
		log = slog.Default()
	}
	return &TracedClient{next: next, log: log}
}

// Generate delegates to the wrapped Generator.
func (tc *TracedClient) Generate(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	resp, err := tc.next.Generate(ctx, req)

	latencyMs := time.Since(startTime).Milliseconds()
	if err != nil {
		tc.log.Warn("Generation failed",
			"latency_ms", latencyMs,
			"web_search", req.WebSearch,
			"maps_search", req.MapsSearch,
			"error", err.Error(),
		)
		return nil, err
	}

	inputTokens := EstimateTokenCount(req.SystemInstruction + "\n" + req.Prompt)
	outputTokens := EstimateTokenCount(resp.Text)
	attrs := []any{
		"model", resp.Model,
		"latency_ms", latencyMs,
		"response_chars", len(resp.Text),
		"citations", len(resp.Citations),
		"input_tokens_est", inputTokens,
		"output_tokens_est", outputTokens,
	}
	if cost, ok := EstimateCost(resp.Model, inputTokens, outputTokens); ok {
		attrs = append(attrs, "cost_usd_est", cost)
	}

	tc.log.Info("Generation completed", attrs...)
	return resp, nil
}
