// Package intake re-exports the building blocks of the intake wizard through
// one import path: schema types, the conditional form engine, the stock
// templates, and session/submission helpers.
package intake

import (
	"github.com/tramita/go-intake/pkg/engine"
	"github.com/tramita/go-intake/pkg/schema"
	"github.com/tramita/go-intake/pkg/templates"
	"github.com/tramita/go-intake/pkg/wizard"
)

// Field describes one form field.
type Field = schema.Field

// Rule ties a field's visibility or requiredness to another field's value.
type Rule = schema.Rule

// Snapshot is the live form data passed to every engine query.
type Snapshot = schema.Snapshot

// Result is the outcome of one validation pass.
type Result = engine.Result

// DocumentType identifies a stock intake template.
type DocumentType = templates.DocumentType

// NewSchema validates fields and rules into an immutable schema.
func NewSchema(fields []Field, rules map[string][]Rule) (*schema.Schema, error) {
	return schema.New(fields, rules)
}

// NewEngine wraps a schema in a conditional form engine.
func NewEngine(s *schema.Schema) (*engine.Engine, error) {
	return engine.New(s)
}

// LoadTemplate loads and validates a stock template by document type.
func LoadTemplate(t DocumentType) (templates.Template, error) {
	return templates.Load(t)
}

// NewSession starts a wizard session over a template, optionally prefilled.
func NewSession(tpl templates.Template, prefill Snapshot) (*wizard.Session, error) {
	return wizard.NewSession(tpl, prefill)
}
