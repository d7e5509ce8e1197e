package recommendation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/cvhub/pkg/apperror"
)

func TestValidateRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		details string
	}{
		{name: "valid", body: map[string]any{"description": "Great colleague"}},
		{name: "exactly five characters", body: map[string]any{"description": "hello"}},
		{name: "ids are tolerated", body: map[string]any{"description": "Great colleague", "userid": "u1", "cvid": "c1"}},
		{name: "missing description", body: map[string]any{}, details: "Recommendation description is required"},
		{name: "too short", body: map[string]any{"description": "good"}, details: "Description is missing or incorrect"},
		{name: "not a string", body: map[string]any{"description": 12345}, details: "Description is missing or incorrect"},
		{
			name:    "empty ids",
			body:    map[string]any{"description": "Great colleague", "userid": "", "cvid": 3},
			details: "User ID is incorrect or missing; CV ID is incorrect or missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecommendation(tt.body)
			if tt.details == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.details, appErr.Details)
		})
	}
}

func TestParseDescription(t *testing.T) {
	desc, err := ParseDescription(map[string]any{"description": "Reliable and kind"})
	require.NoError(t, err)
	assert.Equal(t, "Reliable and kind", desc)

	_, err = ParseDescription(map[string]any{"description": "meh"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
