// internal/matching/retriever.go
package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"mentor-match/internal/common/logger"
	"mentor-match/internal/models"
)

const DefaultPoolSize = 50

var ErrDirectoryQueryFailed = errors.New("DIRECTORY_QUERY_FAILED")

// Directory is the abstract candidate-directory capability the
// retriever depends on. Any indexed store satisfies the contract; the
// retrieval strategy behind it is swappable.
type Directory interface {
	FindByTagOverlap(ctx context.Context, terms []string) ([]models.Mentor, error)
	FetchByID(ctx context.Context, ids []string) ([]models.Mentor, error)
}

// Retriever builds search terms from an inquiry and queries the
// directory for mentors whose tags overlap those terms, returning a
// bounded, pre-ranked candidate pool.
type Retriever struct {
	directory Directory
	poolSize  int
	logger    logger.Logger
}

func NewRetriever(directory Directory, poolSize int, log logger.Logger) *Retriever {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &Retriever{
		directory: directory,
		poolSize:  poolSize,
		logger:    log.WithFields(map[string]interface{}{"component": "retriever"}),
	}
}

// Retrieve returns up to poolSize mentors sorted by descending
// retrieval score, the fraction of search terms matched by each
// mentor's tags. An inquiry with no search terms yields an empty pool
// without touching the directory; zero tag overlap is a valid empty
// outcome, not an error.
func (r *Retriever) Retrieve(ctx context.Context, q *models.Inquiry) ([]models.RetrievedMentor, error) {
	terms := q.SearchTerms()
	if len(terms) == 0 {
		return nil, nil
	}

	mentors, err := r.directory.FindByTagOverlap(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryQueryFailed, err)
	}

	retrieved := make([]models.RetrievedMentor, 0, len(mentors))
	for _, m := range mentors {
		matched := countMatchedTerms(terms, m.Tags)
		if matched == 0 {
			continue
		}
		retrieved = append(retrieved, models.RetrievedMentor{
			Mentor:         m,
			RetrievalScore: float64(matched) / float64(len(terms)),
		})
	}

	sort.SliceStable(retrieved, func(i, j int) bool {
		return retrieved[i].RetrievalScore > retrieved[j].RetrievalScore
	})

	if len(retrieved) > r.poolSize {
		retrieved = retrieved[:r.poolSize]
	}

	r.logger.Debug("candidate pool retrieved", map[string]interface{}{
		"terms":      len(terms),
		"candidates": len(retrieved),
	})

	return retrieved, nil
}

// countMatchedTerms counts the distinct search terms matched by at
// least one tag, using case-insensitive substring semantics.
func countMatchedTerms(terms, tags []string) int {
	matched := 0
	for _, term := range terms {
		lowered := strings.ToLower(term)
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), lowered) {
				matched++
				break
			}
		}
	}
	return matched
}
