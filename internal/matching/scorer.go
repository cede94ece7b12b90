// internal/matching/scorer.go
package matching

import "mentor-match/internal/models"

// Score computes the weighted criterion score of one mentor against
// one inquiry. Pure function of (mentor, inquiry, weight table): no
// I/O, no mutation, independently computable per candidate.
func Score(m *models.Mentor, q *models.Inquiry) float64 {
	var s float64

	// Array criteria
	s += ArrayMatchScore(q.Degrees, m.DegreeNames(), Weight(CriterionDegrees))
	s += ArrayMatchScore(q.AreasOfInterest, m.PracticeAreas, Weight(CriterionPrimaryAreasOfPractice))
	s += ArrayMatchScore(q.AreasOfInterest, m.ExpertiseAreas, Weight(CriterionAreasOfExpertise))
	s += ArrayMatchScore(q.AreasOfExpertise, m.ExpertiseAreas, Weight(CriterionAreasOfExpertise))
	s += ArrayMatchScore(q.BoardSpecialties, m.BoardSpecialties, Weight(CriterionBoardSpecialties))
	s += ArrayMatchScore(q.Certificates, m.CertificationNames(), Weight(CriterionCertificates))
	s += ArrayMatchScore(q.CommonlyTreatedDiagnoses, m.CommonlyTreatedDiagnoses, Weight(CriterionCommonlyTreatedDiagnoses))
	// Personal interests are applied twice, once per historical
	// duplicate field mapping. The double contribution is intentional.
	s += ArrayMatchScore(q.PersonalInterests, m.PersonalInterests, Weight(CriterionPersonalInterests))
	s += ArrayMatchScore(q.PersonalInterests, m.PersonalInterests, Weight(CriterionPersonalInterests))
	s += ArrayMatchScore(q.ReligiousAffiliations, m.ReligiousAffiliations, Weight(CriterionReligiousAffiliations))

	// Scalar criteria
	s += StringMatchScore(q.Ethnicity, m.Ethnicity, Weight(CriterionEthnicity))
	s += StringMatchScore(q.Gender, m.Gender, Weight(CriterionGender))
	s += StringMatchScore(q.PrimaryRole, m.PrimaryRole, Weight(CriterionPrimaryRole))
	s += StringMatchScore(q.Pronouns, m.Pronouns, Weight(CriterionPronouns))
	s += StringMatchScore(q.Identity, m.Identity, Weight(CriterionIdentity))

	// Gate criteria
	if q.YearsInClinicalPractice > 0 && m.YearsInClinicalPractice >= q.YearsInClinicalPractice {
		s += Weight(CriterionYearsInClinicalPractice)
	}
	if q.ResidencyOrFellowshipTrained && (m.IsResidencyTrained || m.IsFellowshipTrained) {
		s += Weight(CriterionResidencyOrFellowshipTrained)
	}

	return s
}
