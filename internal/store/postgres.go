// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"mentor-match/internal/common/logger"
	"mentor-match/internal/models"
)

var ErrNotFound = errors.New("MATCH_NOT_FOUND")

// Postgres is the append-only match result store. Rows are written
// once per matching invocation and never updated.
type Postgres struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgres(db *sql.DB, log logger.Logger) *Postgres {
	return &Postgres{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "matchstore"}),
	}
}

// Insert writes one MatchResult. The matches slice is stored as JSONB
// so the row is self-contained; a failed insert leaves nothing behind.
func (s *Postgres) Insert(ctx context.Context, result *models.MatchResult) error {
	matches, err := json.Marshal(result.Matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_results (id, requested_by, created_at, matches)
		VALUES ($1, $2, $3, $4)`,
		result.ID, result.RequestedBy, result.CreatedAt, matches)
	if err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}

	s.logger.Info("match result persisted", map[string]interface{}{
		"matchResultId": result.ID,
		"requestedBy":   result.RequestedBy,
		"matches":       len(result.Matches),
	})
	return nil
}

// FindByID loads one MatchResult, returning ErrNotFound when no row
// exists.
func (s *Postgres) FindByID(ctx context.Context, id string) (*models.MatchResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, requested_by, created_at, matches
		FROM match_results WHERE id = $1`, id)

	var result models.MatchResult
	var matches []byte
	err := row.Scan(&result.ID, &result.RequestedBy, &result.CreatedAt, &matches)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query match result: %w", err)
	}

	if err := json.Unmarshal(matches, &result.Matches); err != nil {
		return nil, fmt.Errorf("unmarshal matches: %w", err)
	}
	return &result, nil
}
