// internal/trigger/schema.go
package trigger

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"mentor-match/internal/common/errors"
	"mentor-match/internal/models"
)

// inquiryArgsSchema constrains the arguments the conversational model
// may pass to the matching function. Everything is optional; unknown
// keys are rejected so silently dropped criteria cannot masquerade as
// an empty inquiry.
const inquiryArgsSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"gender": {"type": "string"},
		"ethnicity": {"type": "string"},
		"primaryRole": {"type": "string"},
		"pronouns": {"type": "string"},
		"identity": {"type": "string"},
		"degrees": {"type": "array", "items": {"type": "string"}},
		"certificates": {"type": "array", "items": {"type": "string"}},
		"personalInterests": {"type": "array", "items": {"type": "string"}},
		"boardSpecialties": {"type": "array", "items": {"type": "string"}},
		"areasOfInterest": {"type": "array", "items": {"type": "string"}},
		"areasOfExpertise": {"type": "array", "items": {"type": "string"}},
		"commonlyTreatedDiagnoses": {"type": "array", "items": {"type": "string"}},
		"religiousAffiliations": {"type": "array", "items": {"type": "string"}},
		"tags": {"type": "array", "items": {"type": "string"}},
		"yearsInClinicalPractice": {"type": "integer", "minimum": 0},
		"residencyOrFellowshipTrained": {"type": "boolean"}
	}
}`

var inquirySchema = gojsonschema.NewStringLoader(inquiryArgsSchema)

// DecodeInquiryArgs validates raw function-call arguments against the
// inquiry schema and decodes them. An empty or null payload is valid
// and decodes to an empty inquiry.
func DecodeInquiryArgs(raw json.RawMessage) (*models.Inquiry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return &models.Inquiry{}, nil
	}

	result, err := gojsonschema.Validate(inquirySchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.NewInvalidFunctionArgsError(err.Error())
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, errors.NewInvalidFunctionArgsError(strings.Join(issues, "; "))
	}

	var inquiry models.Inquiry
	if err := json.Unmarshal(raw, &inquiry); err != nil {
		return nil, errors.NewInvalidFunctionArgsError(err.Error())
	}
	return &inquiry, nil
}
