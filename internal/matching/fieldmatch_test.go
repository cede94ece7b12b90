// internal/matching/fieldmatch_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayMatchScore(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		candidate []string
		weight    float64
		expected  float64
	}{
		{
			name:      "exact match compounds with substring match",
			requested: []string{"Oncology"},
			candidate: []string{"Oncology"},
			weight:    6,
			expected:  9, // 6 exact + 3 substring on the same value
		},
		{
			name:      "substring only",
			requested: []string{"Oncology"},
			candidate: []string{"Pediatric Oncology"},
			weight:    6,
			expected:  3,
		},
		{
			name:      "case difference downgrades exact to substring",
			requested: []string{"oncology"},
			candidate: []string{"Oncology"},
			weight:    6,
			expected:  3,
		},
		{
			name:      "no match",
			requested: []string{"Oncology"},
			candidate: []string{"Cardiology"},
			weight:    6,
			expected:  0,
		},
		{
			name:      "exact counted once, substring per candidate value",
			requested: []string{"Oncology"},
			candidate: []string{"Oncology", "Radiation Oncology"},
			weight:    6,
			expected:  12, // 6 exact + 3 + 3 substring
		},
		{
			name:      "multiple requested items accumulate",
			requested: []string{"Oncology", "Cardiology"},
			candidate: []string{"Oncology", "Cardiology"},
			weight:    2,
			expected:  6, // (2+1) per item
		},
		{
			name:      "empty requested",
			requested: nil,
			candidate: []string{"Oncology"},
			weight:    6,
			expected:  0,
		},
		{
			name:      "empty candidate",
			requested: []string{"Oncology"},
			candidate: nil,
			weight:    6,
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ArrayMatchScore(tt.requested, tt.candidate, tt.weight)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestStringMatchScore(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		candidate string
		weight    float64
		expected  float64
	}{
		{"exact match", "Female", "Female", 2, 2},
		{"substring match", "Oncologist", "Pediatric Oncologist", 4, 2},
		{"case-insensitive substring", "female", "Female", 2, 1},
		{"no match", "Female", "Male", 2, 0},
		{"empty requested", "", "Female", 2, 0},
		{"empty candidate", "Female", "", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := StringMatchScore(tt.requested, tt.candidate, tt.weight)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}
