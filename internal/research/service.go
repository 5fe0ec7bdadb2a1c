// Package research runs one market-research request end to end: prompt, generation,
// extraction and the bookkeeping the display layer needs.
package research

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"marketspy/internal/core"
	"marketspy/internal/extract"
	"marketspy/internal/llm"
	"marketspy/internal/query"
)

// Service turns a topic into a ResearchOutcome using a Generator.
type Service struct {
	gen         llm.Generator
	log         *slog.Logger
	maxProducts int
	validate    bool
	now         func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxProducts caps the number of products kept in an outcome. Zero disables the cap.
func WithMaxProducts(n int) Option {
	return func(s *Service) { s.maxProducts = n }
}

// WithValidation toggles logging of missing required fields in the decoded report.
func WithValidation(enabled bool) Option {
	return func(s *Service) { s.validate = enabled }
}

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service around gen.
func New(gen llm.Generator, opts ...Option) *Service {
	s := &Service{
		gen:         gen,
		log:         slog.Default(),
		maxProducts: query.MaxProducts,
		validate:    true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PerformResearch runs a single research request. Every failure is logged with its kind
// and returned unchanged; nothing is retried.
func (s *Service) PerformResearch(ctx context.Context, topic string) (*core.ResearchOutcome, error) {
	requestID := uuid.NewString()
	log := s.log.With("request_id", requestID, "topic", topic)

	q := query.Build(topic)
	log.Debug("Research started", "broad", core.ResearchQuery{Topic: topic}.IsBroad())

	start := s.now()
	resp, err := s.gen.Generate(ctx, llm.Request{
		Prompt:            q.UserPrompt,
		SystemInstruction: q.SystemInstruction,
		WebSearch:         q.Tools.WebSearch,
		MapsSearch:        q.Tools.MapsSearch,
	})
	if err != nil {
		log.Error("Research generation failed", "kind", Kind(err), "error", err)
		return nil, err
	}
	if resp == nil {
		err := fmt.Errorf("generator returned no response: %w", extract.ErrEmptyResponse)
		log.Error("Research generation failed", "kind", Kind(err), "error", err)
		return nil, err
	}

	result, err := extract.Extract(resp.Text, resp.Citations)
	if err != nil {
		log.Error("Research extraction failed", "kind", Kind(err), "error", err, "response_chars", len(resp.Text))
		return nil, err
	}

	if s.validate {
		for _, issue := range extract.Validate(result.Data) {
			log.Warn("Research report incomplete", "field", issue.Field, "problem", issue.Problem)
		}
	}

	if result.Data.Truncate(s.maxProducts) {
		log.Info("Research products truncated", "max_products", s.maxProducts)
	}

	outcome := &core.ResearchOutcome{
		RequestID:   requestID,
		Topic:       topic,
		Model:       resp.Model,
		GeneratedAt: s.now(),
		Data:        result.Data,
		Sources:     result.Sources,
	}

	log.Info("Research completed",
		"products", len(outcome.Data.Products),
		"sources", len(outcome.Sources),
		"duration", outcome.GeneratedAt.Sub(start))

	return outcome, nil
}
