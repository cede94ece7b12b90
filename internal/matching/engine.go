// internal/matching/engine.go
package matching

import (
	"context"
	"time"

	"mentor-match/internal/common/logger"
	"mentor-match/internal/common/metrics"
	"mentor-match/internal/models"
)

// MatchObserver receives per-inquiry outcome and latency signals.
type MatchObserver interface {
	RecordMatchProcessed(ctx context.Context, outcome string)
	RecordMatchDuration(ctx context.Context, duration time.Duration, outcome string)
}

// Engine runs the full matching pipeline for one inquiry: retrieve a
// bounded candidate pool, rank it, and persist the result set. Each
// invocation is independent and stateless; concurrent inquiries share
// no mutable state.
type Engine struct {
	retriever *Retriever
	ranker    *Ranker
	persister *Persister
	observer  MatchObserver
	logger    logger.Logger
}

func NewEngine(retriever *Retriever, ranker *Ranker, persister *Persister, observer MatchObserver, log logger.Logger) *Engine {
	return &Engine{
		retriever: retriever,
		ranker:    ranker,
		persister: persister,
		observer:  observer,
		logger:    log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

// Match executes retrieve -> rank -> persist for one inquiry. An
// inquiry with no populated criteria, or one that matches no
// candidates, yields an empty unpersisted MatchResult (ID empty) with
// no error; only non-empty result sets are written to the store.
func (e *Engine) Match(ctx context.Context, requestedBy string, q *models.Inquiry) (*models.MatchResult, error) {
	start := time.Now()

	if q == nil || len(q.SearchTerms()) == 0 {
		e.observe(ctx, start, "empty_inquiry")
		return e.emptyResult(requestedBy), nil
	}

	retrieved, err := e.retriever.Retrieve(ctx, q)
	if err != nil {
		e.observe(ctx, start, "error")
		return nil, err
	}
	metrics.CandidatesRetrieved.Observe(float64(len(retrieved)))

	scored := e.ranker.Rank(retrieved, q)
	if len(scored) == 0 {
		e.observe(ctx, start, "no_candidates")
		e.logger.Info("no candidates matched", map[string]interface{}{
			"requestedBy": requestedBy,
		})
		return e.emptyResult(requestedBy), nil
	}

	result, err := e.persister.Persist(ctx, requestedBy, scored)
	if err != nil {
		e.observe(ctx, start, "error")
		return nil, err
	}

	e.observe(ctx, start, "matched")
	metrics.MatchPipelineDuration.Observe(time.Since(start).Seconds())

	e.logger.Info("match completed", map[string]interface{}{
		"requestedBy":   requestedBy,
		"matchResultId": result.ID,
		"candidates":    len(retrieved),
		"matches":       len(result.Matches),
		"durationMs":    time.Since(start).Milliseconds(),
	})

	return result, nil
}

// observe records the inquiry outcome on both the prometheus counter
// and, when configured, the otel observer.
func (e *Engine) observe(ctx context.Context, start time.Time, outcome string) {
	metrics.MatchRequestsTotal.WithLabelValues(outcome).Inc()
	if e.observer != nil {
		e.observer.RecordMatchProcessed(ctx, outcome)
		e.observer.RecordMatchDuration(ctx, time.Since(start), outcome)
	}
}

func (e *Engine) emptyResult(requestedBy string) *models.MatchResult {
	return &models.MatchResult{
		RequestedBy: requestedBy,
		CreatedAt:   time.Now().UTC(),
		Matches:     []models.MatchEntry{},
	}
}
