// Package engine derives visibility, requiredness, and validation outcomes
// from a schema and a live form data snapshot. Every query is a pure function
// of its inputs: nothing is cached, nothing is mutated, and re-running a
// query on every data change is the intended usage pattern.
package engine

import (
	"errors"
	"fmt"

	"github.com/tramita/go-intake/pkg/condition"
	"github.com/tramita/go-intake/pkg/schema"
)

// Engine answers visibility/requiredness/validation queries for one schema.
// It holds no mutable state and is safe for concurrent use as long as a
// snapshot is not mutated mid-call.
type Engine struct {
	schema *schema.Schema
}

// New wraps a validated schema. The schema must not be nil.
func New(s *schema.Schema) (*Engine, error) {
	if s == nil {
		return nil, errors.New("engine: schema is required")
	}
	return &Engine{schema: s}, nil
}

// Schema returns the schema the engine was built around.
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// ShouldShow reports whether the field should currently be rendered. Fields
// with no show rules are always visible; when several show rules apply, all
// of them must hold, so one failing rule hides the field regardless of the
// rest.
func (e *Engine) ShouldShow(fieldID string, data schema.Snapshot) bool {
	for _, rule := range e.schema.Rules(fieldID) {
		if rule.Kind != schema.RuleShow {
			continue
		}
		if !condition.Evaluate(rule, data) {
			return false
		}
	}
	return true
}

// IsRequired reports whether the field is currently required: its static
// Required flag, or any require rule whose trigger holds. Conditional rules
// only ever add requiredness; they never clear the base flag.
func (e *Engine) IsRequired(fieldID string, data schema.Snapshot) bool {
	field, ok := e.schema.Field(fieldID)
	if ok && field.Required {
		return true
	}
	for _, rule := range e.schema.Rules(fieldID) {
		if rule.Kind != schema.RuleRequire {
			continue
		}
		if condition.Evaluate(rule, data) {
			return true
		}
	}
	return false
}

// RequiredFields returns, in declaration order, every field id that is
// currently required, visible or not. Visibility filtering is
// Validate's job; this answers "what would be required if shown".
func (e *Engine) RequiredFields(data schema.Snapshot) []string {
	var out []string
	for _, field := range e.schema.Fields() {
		if e.IsRequired(field.ID, data) {
			out = append(out, field.ID)
		}
	}
	return out
}

// Validate runs a full validation pass over the snapshot. Hidden fields are
// skipped and never produce errors, whatever their requiredness. Visible and
// required fields must carry a non-empty value; visible optional fields pass
// without a value check. At most one error is recorded per field.
func (e *Engine) Validate(data schema.Snapshot) Result {
	result := Result{Valid: true}

	for _, field := range e.schema.Fields() {
		if !e.ShouldShow(field.ID, data) {
			result.Skipped = append(result.Skipped, field.ID)
			continue
		}
		if !e.IsRequired(field.ID, data) {
			result.Validated = append(result.Validated, field.ID)
			continue
		}
		if condition.IsEmpty(data[field.ID]) {
			if result.Errors == nil {
				result.Errors = make(map[string]string)
			}
			result.Errors[field.ID] = fmt.Sprintf("%s es requerido.", field.Label)
			result.Valid = false
			continue
		}
		result.Validated = append(result.Validated, field.ID)
	}

	return result
}
