// internal/matching/fieldmatch.go
package matching

import "strings"

// ArrayMatchScore scores one array criterion against one candidate
// array. For each requested item: full weight when the item is an
// exact (case-sensitive) member of candidateValues, plus half weight
// for every candidate value containing the item as a case-insensitive
// substring. An exact match also satisfies the substring test, so both
// contributions can apply to the same pair; that compounding is the
// defined scoring policy.
func ArrayMatchScore(requested, candidateValues []string, weight float64) float64 {
	if len(requested) == 0 || len(candidateValues) == 0 {
		return 0
	}

	var score float64
	for _, want := range requested {
		for _, have := range candidateValues {
			if have == want {
				score += weight
				break
			}
		}

		lowered := strings.ToLower(want)
		for _, have := range candidateValues {
			if strings.Contains(strings.ToLower(have), lowered) {
				score += weight / 2
			}
		}
	}
	return score
}

// StringMatchScore scores one scalar criterion: full weight on exact
// equality, half weight when the candidate value contains the
// requested string case-insensitively, 0 otherwise or when either
// side is missing.
func StringMatchScore(requested, candidateValue string, weight float64) float64 {
	if requested == "" || candidateValue == "" {
		return 0
	}
	if candidateValue == requested {
		return weight
	}
	if strings.Contains(strings.ToLower(candidateValue), strings.ToLower(requested)) {
		return weight / 2
	}
	return 0
}
