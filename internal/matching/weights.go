// internal/matching/weights.go
package matching

// Criterion names one recognized inquiry criterion in the weight table.
type Criterion string

const (
	CriterionDegrees                      Criterion = "degrees"
	CriterionYearsInClinicalPractice      Criterion = "yearsInClinicalPractice"
	CriterionBoardSpecialties             Criterion = "boardSpecialties"
	CriterionCertificates                 Criterion = "certificates"
	CriterionResidencyOrFellowshipTrained Criterion = "residencyOrFellowshipTrained"
	CriterionPrimaryAreasOfPractice       Criterion = "primaryAreasOfPractice"
	CriterionPrimaryRole                  Criterion = "primaryRole"
	CriterionAreasOfExpertise             Criterion = "areasOfExpertise"
	CriterionCommonlyTreatedDiagnoses     Criterion = "commonlyTreatedDiagnoses"
	CriterionPersonalInterests            Criterion = "personalInterests"
	CriterionGender                       Criterion = "gender"
	CriterionIdentity                     Criterion = "identity"
	CriterionEthnicity                    Criterion = "ethnicity"
	CriterionPronouns                     Criterion = "pronouns"
	CriterionReligiousAffiliations        Criterion = "religiousAffiliations"
)

// weightTable is static for the lifetime of the process. Changing a
// weight changes ranking, not correctness; values are configuration
// data, not runtime input.
var weightTable = map[Criterion]float64{
	CriterionDegrees:                      3,
	CriterionYearsInClinicalPractice:      5,
	CriterionBoardSpecialties:             6,
	CriterionCertificates:                 6,
	CriterionResidencyOrFellowshipTrained: 7,
	CriterionPrimaryAreasOfPractice:       8,
	CriterionPrimaryRole:                  4,
	CriterionAreasOfExpertise:             10,
	CriterionCommonlyTreatedDiagnoses:     9,
	CriterionPersonalInterests:            2,
	CriterionGender:                       2,
	CriterionIdentity:                     1,
	CriterionEthnicity:                    1,
	CriterionPronouns:                     1,
	CriterionReligiousAffiliations:        1,
}

// Weight returns the static weight for a criterion, 0 for unknown
// criteria.
func Weight(c Criterion) float64 {
	return weightTable[c]
}
