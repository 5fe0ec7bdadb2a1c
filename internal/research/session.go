package research

import (
	"context"
	"errors"
	"sync/atomic"

	"marketspy/internal/core"
)

// ErrStale is returned when a newer submission started before this one resolved.
var ErrStale = errors.New("research superseded by a newer request")

// Sequencer hands out monotonically increasing sequence numbers.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new sequence number, which becomes the latest.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// IsLatest reports whether seq is the most recently issued number.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return s.latest.Load() == seq
}

// Latest returns the most recently issued number, zero before the first call to Next.
func (s *Sequencer) Latest() uint64 {
	return s.latest.Load()
}

// Session serializes research for one caller: only the newest submission's outcome is
// delivered. In-flight calls are not cancelled.
type Session struct {
	svc *Service
	seq Sequencer
}

// NewSession wraps svc.
func NewSession(svc *Service) *Session {
	return &Session{svc: svc}
}

// Begin reserves the next sequence number without running anything.
func (s *Session) Begin() uint64 {
	return s.seq.Next()
}

// IsLatest reports whether seq still belongs to the newest submission.
func (s *Session) IsLatest(seq uint64) bool {
	return s.seq.IsLatest(seq)
}

// Submit runs research for topic and returns ErrStale when superseded meanwhile.
func (s *Session) Submit(ctx context.Context, topic string) (*core.ResearchOutcome, error) {
	return s.Run(ctx, s.Begin(), topic)
}

// Run executes research under a sequence number obtained from Begin.
func (s *Session) Run(ctx context.Context, seq uint64, topic string) (*core.ResearchOutcome, error) {
	outcome, err := s.svc.PerformResearch(ctx, topic)
	if !s.seq.IsLatest(seq) {
		s.svc.log.Debug("Discarding stale research result", "sequence", seq, "latest", s.seq.Latest())
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	outcome.Sequence = seq
	return outcome, nil
}
