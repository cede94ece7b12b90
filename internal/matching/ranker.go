// internal/matching/ranker.go
package matching

import (
	"sort"

	"mentor-match/internal/models"
)

const (
	DefaultMaxResults = 8

	// DefaultRetrievalBoost rescales the [0,1] retrieval score onto
	// the same order of magnitude as the weighted-score sum, whose
	// individual terms range up to ~10. Tunable, not a law.
	DefaultRetrievalBoost = 10.0
)

// Ranker fuses retrieval and weighted scores, sorts, and truncates to
// the top result set.
type Ranker struct {
	boost      float64
	maxResults int
}

func NewRanker(boost float64, maxResults int) *Ranker {
	if boost <= 0 {
		boost = DefaultRetrievalBoost
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Ranker{boost: boost, maxResults: maxResults}
}

// Rank computes the fused score for every retrieved candidate and
// returns at most maxResults entries in non-increasing score order.
// The sort is stable; tie ordering is otherwise unspecified and
// callers must not depend on it. An inquiry with zero populated
// criteria yields an empty list without scoring.
func (r *Ranker) Rank(retrieved []models.RetrievedMentor, q *models.Inquiry) []models.ScoredMentor {
	if q.IsEmpty() || len(retrieved) == 0 {
		return nil
	}

	scored := make([]models.ScoredMentor, 0, len(retrieved))
	for _, rm := range retrieved {
		weighted := Score(&rm.Mentor, q)
		scored = append(scored, models.ScoredMentor{
			Mentor: rm.Mentor,
			Score:  weighted + rm.RetrievalScore*r.boost,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.maxResults {
		scored = scored[:r.maxResults]
	}
	return scored
}
