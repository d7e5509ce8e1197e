package recommendation

import (
	"context"
	"strings"

	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/schema"
)

// userid and cvid are tolerated in a body but the server always overrides them.
var rules = schema.MustCompile("Recommendation",
	schema.Field{Name: "userid", Rule: `{"type":"string","minLength":1}`, Message: "User ID is incorrect or missing"},
	schema.Field{Name: "cvid", Rule: `{"type":"string","minLength":1}`, Message: "CV ID is incorrect or missing"},
	schema.Field{Name: "description", Required: true, Rule: `{"type":"string","minLength":5}`, Message: "Description is missing or incorrect"},
)

func ValidateRecommendation(body map[string]any) error {
	if v := rules.Check(context.Background(), body); len(v) > 0 {
		return apperror.NewValidation(strings.Join(v, "; "))
	}
	return nil
}

// ParseDescription validates body and returns its description.
func ParseDescription(body map[string]any) (string, error) {
	if err := ValidateRecommendation(body); err != nil {
		return "", err
	}
	return body["description"].(string), nil
}
