// internal/matching/persister.go
package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mentor-match/internal/models"
)

var ErrMatchPersistFailed = errors.New("MATCH_PERSIST_FAILED")

// MatchStore is the abstract result-store capability: one append-only
// insert and one lookup by id.
type MatchStore interface {
	Insert(ctx context.Context, result *models.MatchResult) error
	FindByID(ctx context.Context, id string) (*models.MatchResult, error)
}

// Persister projects scored candidates into the public match shape and
// writes one immutable MatchResult per invocation. A failed write is
// fatal to the request; there is no internal retry and no partial
// write.
type Persister struct {
	store MatchStore
	now   func() time.Time
}

func NewPersister(store MatchStore) *Persister {
	return &Persister{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Persist writes a new MatchResult for requestedBy. The matches slice
// preserves the length and order of scored, each entry carrying only
// the projected public fields.
func (p *Persister) Persist(ctx context.Context, requestedBy string, scored []models.ScoredMentor) (*models.MatchResult, error) {
	matches := make([]models.MatchEntry, 0, len(scored))
	for _, sm := range scored {
		matches = append(matches, models.MatchEntry{
			MentorID:                sm.Mentor.ID,
			Name:                    sm.Mentor.Name,
			Picture:                 sm.Mentor.Picture,
			PrimaryRole:             sm.Mentor.PrimaryRole,
			YearsInClinicalPractice: sm.Mentor.YearsInClinicalPractice,
			Score:                   sm.Score,
		})
	}

	result := &models.MatchResult{
		ID:          uuid.NewString(),
		RequestedBy: requestedBy,
		CreatedAt:   p.now(),
		Matches:     matches,
	}

	if err := p.store.Insert(ctx, result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchPersistFailed, err)
	}
	return result, nil
}
