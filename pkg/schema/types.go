package schema

// FieldKind is the render type of a form field. The engine carries it through
// untouched; only renderers branch on it.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindTextarea    FieldKind = "textarea"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
)

// Field describes one form field: stable identity, human label, base
// requiredness, and render metadata. Instances are declared once per document
// type and never mutated afterwards.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Label       string    `json:"label" yaml:"label"`
	Required    bool      `json:"required" yaml:"required"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// RuleKind selects what a conditional rule controls.
type RuleKind string

const (
	// RuleShow gates the field's visibility.
	RuleShow RuleKind = "show"
	// RuleRequire adds requiredness on top of the field's base Required flag.
	RuleRequire RuleKind = "require"
)

// MatchMode selects how a rule's trigger candidates are compared against the
// dependency field's value.
type MatchMode string

const (
	// MatchExact matches when the value equals any candidate (case-sensitive).
	MatchExact MatchMode = "exact"
	// MatchContains matches when the value contains any candidate as a
	// case-insensitive substring.
	MatchContains MatchMode = "contains"
	// MatchContainsAll matches only when the value contains every candidate
	// as a case-insensitive substring.
	MatchContainsAll MatchMode = "containsAll"
)

// Rule ties one field's visibility or requiredness to the value of exactly
// one other field. In canonical form Trigger is always a non-empty list and
// Match is always set; New establishes both.
type Rule struct {
	DependsOn string      `json:"dependsOn" yaml:"dependsOn"`
	Trigger   TriggerList `json:"trigger" yaml:"trigger"`
	Kind      RuleKind    `json:"kind" yaml:"kind"`
	Match     MatchMode   `json:"matchMode,omitempty" yaml:"matchMode,omitempty"`
}

// Snapshot is the live form data at the moment of a query: field id to the
// current value, a string or an ordered list of strings for multi-choice
// fields. Missing keys read as empty. The engine only ever reads snapshots;
// ownership stays with the host.
type Snapshot map[string]any
