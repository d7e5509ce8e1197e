package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(t *testing.T) *Record {
	t.Helper()
	r, err := Compile("Widget",
		Field{Name: "name", Required: true, Rule: `{"type":"string","minLength":1}`, Message: "Widget name is invalid"},
		Field{Name: "size", Required: true, Rule: `{"type":"integer","minimum":10}`, Message: "Widget size must be an integer of at least 10"},
		Field{Name: "note", Rule: `{"type":"string","minLength":1}`, Message: "Widget note is invalid"},
	)
	require.NoError(t, err)
	return r
}

func TestRecord_Check(t *testing.T) {
	r := testRecord(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		record map[string]any
		want   []string
	}{
		{
			name:   "valid without optional field",
			record: map[string]any{"name": "bolt", "size": float64(12)},
		},
		{
			name:   "valid with optional field",
			record: map[string]any{"name": "bolt", "size": 10, "note": "steel"},
		},
		{
			name:   "missing required fields are all reported",
			record: map[string]any{},
			want:   []string{"Widget name is required", "Widget size is required"},
		},
		{
			name:   "wrong types",
			record: map[string]any{"name": 3, "size": "big"},
			want:   []string{"Widget name is invalid", "Widget size must be an integer of at least 10"},
		},
		{
			name:   "below minimum",
			record: map[string]any{"name": "bolt", "size": float64(9)},
			want:   []string{"Widget size must be an integer of at least 10"},
		},
		{
			name:   "fractional value is not an integer",
			record: map[string]any{"name": "bolt", "size": 12.5},
			want:   []string{"Widget size must be an integer of at least 10"},
		},
		{
			name:   "empty strings break minLength",
			record: map[string]any{"name": "", "size": 11, "note": ""},
			want:   []string{"Widget name is invalid", "Widget note is invalid"},
		},
		{
			name:   "null is not a string",
			record: map[string]any{"name": nil, "size": 11},
			want:   []string{"Widget name is invalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Check(ctx, tt.record))
		})
	}
}

func TestCompile_RejectsMalformedRule(t *testing.T) {
	_, err := Compile("Broken", Field{Name: "x", Rule: `{"type":`})
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile("Broken", Field{Name: "x", Rule: `not json`}) })
}
