// internal/directory/tags.go
package directory

import (
	"sort"
	"strings"

	"mentor-match/internal/models"
)

// BuildTags derives the precomputed tag set for a mentor document: the
// lowercased union of every searchable profile field, deduplicated and
// sorted. Tag derivation happens here, once, as an explicit projection
// step at indexing time; it is never triggered implicitly by unrelated
// writes.
func BuildTags(m *models.Mentor) []string {
	seen := make(map[string]struct{})

	add := func(v string) {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			return
		}
		seen[v] = struct{}{}
	}

	for _, d := range m.Degrees {
		add(d.Name)
		add(d.Institution)
	}
	for _, c := range m.Certifications {
		add(c.Name)
	}
	for _, vs := range [][]string{
		m.PracticeAreas,
		m.ExpertiseAreas,
		m.BoardSpecialties,
		m.CommonlyTreatedDiagnoses,
		m.PersonalInterests,
		m.ReligiousAffiliations,
	} {
		for _, v := range vs {
			add(v)
		}
	}
	add(m.Ethnicity)
	add(m.Gender)
	add(m.Identity)
	add(m.Pronouns)
	add(m.PrimaryRole)

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
