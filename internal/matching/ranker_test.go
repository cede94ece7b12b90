// internal/matching/ranker_test.go
package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"mentor-match/internal/models"
)

func TestRanker_FusesWeightedAndRetrievalScores(t *testing.T) {
	ranker := NewRanker(DefaultRetrievalBoost, DefaultMaxResults)

	inquiry := &models.Inquiry{Gender: "Female"}
	retrieved := []models.RetrievedMentor{
		{
			Mentor:         models.Mentor{ID: "exact", Gender: "Female"},
			RetrievalScore: 1.0,
		},
		{
			Mentor:         models.Mentor{ID: "partial", Gender: "Male"},
			RetrievalScore: 0.5,
		},
	}

	scored := ranker.Rank(retrieved, inquiry)

	assert.Len(t, scored, 2)
	assert.Equal(t, "exact", scored[0].Mentor.ID)
	assert.InDelta(t, 12, scored[0].Score, 1e-9) // 2 weighted + 1.0*10
	assert.Equal(t, "partial", scored[1].Mentor.ID)
	assert.InDelta(t, 5, scored[1].Score, 1e-9) // 0 weighted + 0.5*10
}

func TestRanker_TruncatesToMaxResults(t *testing.T) {
	ranker := NewRanker(DefaultRetrievalBoost, DefaultMaxResults)

	var retrieved []models.RetrievedMentor
	for i := 0; i < 20; i++ {
		retrieved = append(retrieved, models.RetrievedMentor{
			Mentor:         models.Mentor{ID: fmt.Sprintf("mentor-%d", i), Gender: "Female"},
			RetrievalScore: 1.0,
		})
	}

	scored := ranker.Rank(retrieved, &models.Inquiry{Gender: "Female"})
	assert.Len(t, scored, DefaultMaxResults)
}

func TestRanker_SortedDescending(t *testing.T) {
	ranker := NewRanker(DefaultRetrievalBoost, DefaultMaxResults)

	retrieved := []models.RetrievedMentor{
		{Mentor: models.Mentor{ID: "a"}, RetrievalScore: 0.2},
		{Mentor: models.Mentor{ID: "b", Gender: "Female"}, RetrievalScore: 0.9},
		{Mentor: models.Mentor{ID: "c"}, RetrievalScore: 0.6},
	}

	scored := ranker.Rank(retrieved, &models.Inquiry{Gender: "Female"})

	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
	assert.Equal(t, "b", scored[0].Mentor.ID)
}

func TestRanker_EmptyInquiryYieldsNothing(t *testing.T) {
	ranker := NewRanker(DefaultRetrievalBoost, DefaultMaxResults)

	retrieved := []models.RetrievedMentor{
		{Mentor: models.Mentor{ID: "m1", Gender: "Female"}, RetrievalScore: 1.0},
	}

	assert.Nil(t, ranker.Rank(retrieved, &models.Inquiry{}))
}

func TestRanker_EmptyPoolYieldsNothing(t *testing.T) {
	ranker := NewRanker(DefaultRetrievalBoost, DefaultMaxResults)
	assert.Nil(t, ranker.Rank(nil, &models.Inquiry{Gender: "Female"}))
}

func TestRanker_CustomBoostChangesFusion(t *testing.T) {
	ranker := NewRanker(100, DefaultMaxResults)

	// With a large boost, retrieval dominates the weighted score.
	retrieved := []models.RetrievedMentor{
		{Mentor: models.Mentor{ID: "weighted", Gender: "Female"}, RetrievalScore: 0.1},
		{Mentor: models.Mentor{ID: "retrieved"}, RetrievalScore: 0.9},
	}

	scored := ranker.Rank(retrieved, &models.Inquiry{Gender: "Female"})
	assert.Equal(t, "retrieved", scored[0].Mentor.ID)
}
