// internal/matching/persister_test.go
package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mentor-match/internal/models"
)

type fakeStore struct {
	inserted *models.MatchResult
	err      error
}

func (f *fakeStore) Insert(ctx context.Context, result *models.MatchResult) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = result
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*models.MatchResult, error) {
	return f.inserted, nil
}

func TestPersister_ProjectsAndStamps(t *testing.T) {
	store := &fakeStore{}
	p := NewPersister(store)
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	scored := []models.ScoredMentor{
		{
			Mentor: models.Mentor{
				ID:                      "mentor-1",
				Name:                    "Dana Whitfield",
				Picture:                 "https://cdn.example.com/dana.png",
				PrimaryRole:             "Physician",
				YearsInClinicalPractice: 12,
				ExpertiseAreas:          []string{"Oncology"},
			},
			Score: 27,
		},
		{
			Mentor: models.Mentor{ID: "mentor-2", Name: "Sam Ortiz"},
			Score:  14.5,
		},
	}

	result, err := p.Persist(context.Background(), "mentee-42", scored)

	assert.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "mentee-42", result.RequestedBy)
	assert.Equal(t, fixed, result.CreatedAt)

	assert.Len(t, result.Matches, 2)
	assert.Equal(t, models.MatchEntry{
		MentorID:                "mentor-1",
		Name:                    "Dana Whitfield",
		Picture:                 "https://cdn.example.com/dana.png",
		PrimaryRole:             "Physician",
		YearsInClinicalPractice: 12,
		Score:                   27,
	}, result.Matches[0])
	assert.Equal(t, "mentor-2", result.Matches[1].MentorID)
	assert.InDelta(t, 14.5, result.Matches[1].Score, 1e-9)

	assert.Same(t, result, store.inserted, "the stored result is the returned result")
}

func TestPersister_PreservesOrder(t *testing.T) {
	store := &fakeStore{}
	p := NewPersister(store)

	scored := []models.ScoredMentor{
		{Mentor: models.Mentor{ID: "first"}, Score: 30},
		{Mentor: models.Mentor{ID: "second"}, Score: 20},
		{Mentor: models.Mentor{ID: "third"}, Score: 10},
	}

	result, err := p.Persist(context.Background(), "mentee-1", scored)

	assert.NoError(t, err)
	ids := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		ids = append(ids, m.MentorID)
	}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestPersister_StoreFailureIsFatal(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	p := NewPersister(store)

	result, err := p.Persist(context.Background(), "mentee-1", []models.ScoredMentor{
		{Mentor: models.Mentor{ID: "m1"}, Score: 5},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMatchPersistFailed)
}

func TestPersister_DistinctIDsPerInvocation(t *testing.T) {
	store := &fakeStore{}
	p := NewPersister(store)

	scored := []models.ScoredMentor{{Mentor: models.Mentor{ID: "m1"}, Score: 1}}

	first, err := p.Persist(context.Background(), "mentee-1", scored)
	assert.NoError(t, err)
	second, err := p.Persist(context.Background(), "mentee-1", scored)
	assert.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
