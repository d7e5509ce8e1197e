package cv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/schema"
)

const nonEmptyString = `{"type":"string","minLength":1}`

// Violations lists the problems found in one nested record.
type Violations []string

func (v Violations) Error() string {
	return strings.Join(v, ", ")
}

var (
	diplomaRules = schema.MustCompile("Diploma",
		schema.Field{Name: "title", Required: true, Rule: nonEmptyString, Message: "Diploma title is missing or invalid"},
		schema.Field{Name: "school", Required: true, Rule: nonEmptyString, Message: "Diploma school is missing or invalid"},
		schema.Field{Name: "year", Required: true, Rule: `{"type":"integer"}`, Message: "Diploma year must be an integer"},
	)

	certificationRules = schema.MustCompile("Certification",
		schema.Field{Name: "name", Required: true, Rule: nonEmptyString, Message: "Certification name is missing or invalid"},
		schema.Field{Name: "issuedBy", Rule: nonEmptyString, Message: "Certification issuer is invalid"},
		schema.Field{Name: "year", Required: true, Rule: `{"type":"integer","minimum":1900}`, Message: "Certification year must be an integer not earlier than 1900"},
	)

	formationRules = schema.MustCompile("Formation",
		schema.Field{Name: "name", Required: true, Rule: nonEmptyString, Message: "Formation name is missing or invalid"},
		schema.Field{Name: "institution", Required: true, Rule: nonEmptyString, Message: "Formation institution is missing or invalid"},
		schema.Field{Name: "year", Required: true, Rule: `{"type":"integer","minimum":1950}`, Message: "Formation year must be an integer not earlier than 1950"},
	)

	jobRules = schema.MustCompile("Job",
		schema.Field{Name: "title", Required: true, Rule: nonEmptyString, Message: "Job title is missing or invalid"},
		schema.Field{Name: "startYear", Required: true, Rule: `{"type":"number","minimum":1900}`, Message: "Job start year must be a number not earlier than 1900"},
		schema.Field{Name: "endYear", Rule: `{"type":"number","minimum":1900}`, Message: "Job end year must be a number not earlier than 1900"},
	)

	missionRules = schema.MustCompile("Mission",
		schema.Field{Name: "name", Required: true, Rule: nonEmptyString, Message: "Mission name is missing or invalid"},
		schema.Field{Name: "description", Rule: nonEmptyString, Message: "Mission description is invalid"},
	)

	companyRules = schema.MustCompile("Company",
		schema.Field{Name: "name", Required: true, Rule: nonEmptyString, Message: "Company name is missing or invalid"},
		schema.Field{Name: "location", Rule: nonEmptyString, Message: "Company location is invalid"},
		schema.Field{Name: "industry", Rule: nonEmptyString, Message: "Company industry is invalid"},
	)

	profileRules = schema.MustCompile("CV",
		schema.Field{Name: "firstname", Required: true, Rule: `{"type":"string","minLength":1,"maxLength":20}`, Message: "Firstname is missing or incorrect"},
		schema.Field{Name: "lastname", Required: true, Rule: `{"type":"string","minLength":1,"maxLength":20}`, Message: "Lastname is missing or incorrect"},
		schema.Field{Name: "description", Required: true, Rule: nonEmptyString, Message: "Description is missing or incorrect"},
		schema.Field{Name: "visible", Required: true, Rule: `{"type":"boolean"}`, Message: "Visibility status is missing or incorrect"},
		schema.Field{Name: "diplomas", Rule: arrayOfObjects, Message: "Diplomas should be an array of objects"},
		schema.Field{Name: "certifications", Rule: arrayOfObjects, Message: "Certifications should be an array of objects"},
		schema.Field{Name: "formations", Rule: arrayOfObjects, Message: "Formations should be an array of objects"},
		schema.Field{Name: "jobs", Rule: arrayOfObjects, Message: "Jobs should be an array of objects"},
		schema.Field{Name: "missions", Rule: arrayOfObjects, Message: "Missions should be an array of objects"},
		schema.Field{Name: "companies", Rule: arrayOfObjects, Message: "Companies should be an array of objects"},
	)
)

const arrayOfObjects = `{"type":"array","items":{"type":"object"}}`

// sections drives the element phase, in reporting order.
var sections = []struct {
	key      string
	validate func(map[string]any) error
}{
	{"diplomas", ValidateDiploma},
	{"certifications", ValidateCertification},
	{"formations", ValidateFormation},
	{"jobs", ValidateJob},
	{"missions", ValidateMission},
	{"companies", ValidateCompany},
}

func ValidateDiploma(record map[string]any) error {
	return check(diplomaRules, record)
}

func ValidateCertification(record map[string]any) error {
	return check(certificationRules, record)
}

func ValidateFormation(record map[string]any) error {
	return check(formationRules, record)
}

func ValidateJob(record map[string]any) error {
	return check(jobRules, record)
}

func ValidateMission(record map[string]any) error {
	return check(missionRules, record)
}

func ValidateCompany(record map[string]any) error {
	return check(companyRules, record)
}

func check(rules *schema.Record, record map[string]any) error {
	if v := rules.Check(context.Background(), record); len(v) > 0 {
		return Violations(v)
	}
	return nil
}

// ValidateProfile validates an untrusted CV body in two phases. The shape
// phase checks the scalar fields and that every nested field is an array of
// objects; only when it passes are the nested records validated one by one.
// The returned error, if any, is an apperror validation error whose details
// list every violation.
func ValidateProfile(body map[string]any) error {
	ctx := context.Background()

	if shape := profileRules.Check(ctx, body); len(shape) > 0 {
		return apperror.NewValidation(strings.Join(shape, "; "))
	}

	var violations []string
	for _, s := range sections {
		for i, record := range records(body[s.key]) {
			if err := s.validate(record); err != nil {
				violations = append(violations, fmt.Sprintf("%s[%d]: %s", s.key, i, err.Error()))
			}
		}
	}
	if len(violations) > 0 {
		return apperror.NewValidation(strings.Join(violations, "; "))
	}
	return nil
}

// ParseDraft validates body and decodes it into a Draft.
func ParseDraft(body map[string]any) (*Draft, error) {
	if err := ValidateProfile(body); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, apperror.NewInvalidInput("CV body cannot be encoded", err)
	}
	var d Draft
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&d); err != nil {
		return nil, apperror.NewAppError(apperror.ErrValidation, "Validation failed", "CV body cannot be decoded: "+err.Error(), err)
	}
	d = d.Normalized()
	return &d, nil
}

// records accepts both decoded JSON arrays and already typed record slices.
func records(v any) []map[string]any {
	switch items := v.(type) {
	case []map[string]any:
		return items
	case []any:
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
