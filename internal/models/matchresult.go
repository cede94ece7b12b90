// internal/models/matchresult.go
package models

import "time"

// MatchEntry is the minimal public projection of one ranked mentor
// inside a persisted MatchResult.
type MatchEntry struct {
	MentorID                string  `json:"mentorId"`
	Name                    string  `json:"name"`
	Picture                 string  `json:"picture,omitempty"`
	PrimaryRole             string  `json:"primaryRole,omitempty"`
	YearsInClinicalPractice int     `json:"yearsInClinicalPractice"`
	Score                   float64 `json:"score"`
}

// MatchResult is the persisted artifact of one matching invocation:
// at most 8 entries ordered by descending score, written once and
// never mutated afterward.
type MatchResult struct {
	ID          string       `json:"id,omitempty"`
	RequestedBy string       `json:"requestedBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	Matches     []MatchEntry `json:"matches"`
}
