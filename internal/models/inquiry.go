// internal/models/inquiry.go
package models

// Inquiry is a mentee's structured match request. Every field is
// optional; the engine treats an inquiry with zero populated keys as
// "no criteria" and short-circuits to an empty result.
type Inquiry struct {
	// Scalar criteria
	Gender      string `json:"gender,omitempty"`
	Ethnicity   string `json:"ethnicity,omitempty"`
	PrimaryRole string `json:"primaryRole,omitempty"`
	Pronouns    string `json:"pronouns,omitempty"`
	Identity    string `json:"identity,omitempty"`

	// Array criteria
	Degrees                  []string `json:"degrees,omitempty"`
	Certificates             []string `json:"certificates,omitempty"`
	PersonalInterests        []string `json:"personalInterests,omitempty"`
	BoardSpecialties         []string `json:"boardSpecialties,omitempty"`
	AreasOfInterest          []string `json:"areasOfInterest,omitempty"`
	AreasOfExpertise         []string `json:"areasOfExpertise,omitempty"`
	CommonlyTreatedDiagnoses []string `json:"commonlyTreatedDiagnoses,omitempty"`
	ReligiousAffiliations    []string `json:"religiousAffiliations,omitempty"`
	Tags                     []string `json:"tags,omitempty"`

	// Gate criteria
	YearsInClinicalPractice      int  `json:"yearsInClinicalPractice,omitempty"`
	ResidencyOrFellowshipTrained bool `json:"residencyOrFellowshipTrained,omitempty"`
}

// SearchTerms flattens every populated scalar field and every element
// of every populated array field into one list of retrieval terms.
// Gate criteria carry no searchable text and are excluded.
func (q *Inquiry) SearchTerms() []string {
	var terms []string

	appendTerm := func(v string) {
		if v != "" {
			terms = append(terms, v)
		}
	}

	appendTerm(q.Gender)
	appendTerm(q.Ethnicity)
	appendTerm(q.PrimaryRole)
	appendTerm(q.Pronouns)
	appendTerm(q.Identity)

	for _, vs := range [][]string{
		q.Degrees,
		q.Certificates,
		q.PersonalInterests,
		q.BoardSpecialties,
		q.AreasOfInterest,
		q.AreasOfExpertise,
		q.CommonlyTreatedDiagnoses,
		q.ReligiousAffiliations,
		q.Tags,
	} {
		for _, v := range vs {
			appendTerm(v)
		}
	}

	return terms
}

// IsEmpty reports whether no criterion at all is populated, gates
// included.
func (q *Inquiry) IsEmpty() bool {
	return len(q.SearchTerms()) == 0 &&
		q.YearsInClinicalPractice == 0 &&
		!q.ResidencyOrFellowshipTrained
}
