// internal/models/mentor.go
package models

// Degree is one academic credential on a mentor profile.
type Degree struct {
	Name        string `json:"name"`
	Institution string `json:"institution,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Certification is one professional certification on a mentor profile.
type Certification struct {
	Name       string `json:"name"`
	IssuedAt   string `json:"issuedAt,omitempty"`
	ExpiresAt  string `json:"expiresAt,omitempty"`
}

// Mentor is a read-only projection of a mentor profile. Instances are
// immutable snapshots for the duration of one matching operation; the
// engine never mutates them.
type Mentor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`

	Degrees                  []Degree        `json:"degrees,omitempty"`
	PracticeAreas            []string        `json:"practiceAreas,omitempty"`
	ExpertiseAreas           []string        `json:"expertiseAreas,omitempty"`
	BoardSpecialties         []string        `json:"boardSpecialties,omitempty"`
	Certifications           []Certification `json:"certifications,omitempty"`
	CommonlyTreatedDiagnoses []string        `json:"commonlyTreatedDiagnoses,omitempty"`
	PersonalInterests        []string        `json:"personalInterests,omitempty"`
	ReligiousAffiliations    []string        `json:"religiousAffiliations,omitempty"`

	Ethnicity   string `json:"ethnicity,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Identity    string `json:"identity,omitempty"`
	Pronouns    string `json:"pronouns,omitempty"`
	PrimaryRole string `json:"primaryRole,omitempty"`

	YearsInClinicalPractice int  `json:"yearsInClinicalPractice,omitempty"`
	IsResidencyTrained      bool `json:"isResidencyTrained,omitempty"`
	IsFellowshipTrained     bool `json:"isFellowshipTrained,omitempty"`

	// Tags is the precomputed lowercased union of the profile fields
	// above, derived once at indexing time. Used only for cheap
	// pre-filtering, never for scoring.
	Tags []string `json:"tags,omitempty"`
}

// DegreeNames returns the degree names only, the shape the scorer
// compares inquiry degree criteria against.
func (m *Mentor) DegreeNames() []string {
	if len(m.Degrees) == 0 {
		return nil
	}
	names := make([]string, 0, len(m.Degrees))
	for _, d := range m.Degrees {
		names = append(names, d.Name)
	}
	return names
}

// CertificationNames returns the certification names only.
func (m *Mentor) CertificationNames() []string {
	if len(m.Certifications) == 0 {
		return nil
	}
	names := make([]string, 0, len(m.Certifications))
	for _, c := range m.Certifications {
		names = append(names, c.Name)
	}
	return names
}

// RetrievedMentor pairs a mentor with its retrieval score, the
// fraction of inquiry search terms matched by the mentor's tags.
// RetrievalScore is always in [0,1].
type RetrievedMentor struct {
	Mentor         Mentor  `json:"mentor"`
	RetrievalScore float64 `json:"retrievalScore"`
}

// ScoredMentor pairs a mentor with its fused final score. Transient;
// never persisted individually.
type ScoredMentor struct {
	Mentor Mentor  `json:"mentor"`
	Score  float64 `json:"score"`
}
