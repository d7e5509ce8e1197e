// Package schema checks decoded JSON records field by field against JSON
// Schema fragments and reports one caller-chosen message per failing field.
package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

// Field describes one property of a record.
type Field struct {
	Name     string
	Required bool
	// Rule is a JSON Schema document applied to the value when it is present.
	Rule string
	// Message is reported when a present value breaks Rule.
	Message string
}

type compiledField struct {
	Field
	schema *jsonschema.Schema
}

// Record is an immutable, compiled set of field rules. It is safe for concurrent use.
type Record struct {
	entity string
	fields []compiledField
}

func Compile(entity string, fields ...Field) (*Record, error) {
	r := &Record{entity: entity, fields: make([]compiledField, 0, len(fields))}
	for _, f := range fields {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(f.Rule), rs); err != nil {
			return nil, fmt.Errorf("compile %s.%s: %w", entity, f.Name, err)
		}
		r.fields = append(r.fields, compiledField{Field: f, schema: rs})
	}
	return r, nil
}

// MustCompile is Compile for package-level rule sets; it panics on a malformed rule.
func MustCompile(entity string, fields ...Field) *Record {
	r, err := Compile(entity, fields...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Record) Entity() string {
	return r.entity
}

// Check returns the violations of record in field declaration order. A nil
// result means the record is valid. Checking never stops at the first failure.
func (r *Record) Check(ctx context.Context, record map[string]any) []string {
	var violations []string
	for _, f := range r.fields {
		value, ok := record[f.Name]
		if !ok {
			if f.Required {
				violations = append(violations, fmt.Sprintf("%s %s is required", r.entity, f.Name))
			}
			continue
		}
		if !f.accepts(ctx, value) {
			violations = append(violations, f.Message)
		}
	}
	return violations
}

func (f compiledField) accepts(ctx context.Context, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	keyErrs, err := f.schema.ValidateBytes(ctx, raw)
	return err == nil && len(keyErrs) == 0
}
