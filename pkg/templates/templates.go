// Package templates ships the stock intake form definitions, one per legal
// document type. Definitions are authored as YAML, embedded in the binary,
// and built into validated schemas at load time so authoring mistakes surface
// immediately rather than mid-evaluation.
package templates

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tramita/go-intake/pkg/schema"
)

// DocumentType identifies one of the stock intake templates.
type DocumentType string

const (
	// Peticion is a derecho de petición filing.
	Peticion DocumentType = "peticion"
	// Tutela is an acción de tutela filing.
	Tutela DocumentType = "tutela"
	// Incidente is an incidente de desacato filing; it is the template that
	// uses conditional rules.
	Incidente DocumentType = "incidente"
)

// All returns the supported document types in presentation order.
func All() []DocumentType {
	return []DocumentType{Peticion, Tutela, Incidente}
}

// Valid reports whether t names a stock template.
func Valid(t DocumentType) bool {
	switch t {
	case Peticion, Tutela, Incidente:
		return true
	default:
		return false
	}
}

// Template pairs a document type with its title and built schema.
type Template struct {
	Type   DocumentType
	Title  string
	Schema *schema.Schema
}

type document struct {
	Document string                   `yaml:"document"`
	Title    string                   `yaml:"title"`
	Fields   []schema.Field           `yaml:"fields"`
	Rules    map[string][]schema.Rule `yaml:"rules"`
}

// Load parses and validates the embedded definition for the given document
// type. Unknown types, YAML decode failures, and schema construction errors
// all fail loudly with file context.
func Load(t DocumentType) (Template, error) {
	if !Valid(t) {
		return Template{}, fmt.Errorf("templates: unknown document type %q", t)
	}

	name := fmt.Sprintf("definitions/%s.yaml", t)
	raw, err := definitionsFS.ReadFile(name)
	if err != nil {
		return Template{}, fmt.Errorf("templates: read %s: %w", name, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Template{}, fmt.Errorf("templates: parse %s: %w", name, err)
	}
	if doc.Document != string(t) {
		return Template{}, fmt.Errorf("templates: %s declares document %q, want %q", name, doc.Document, t)
	}

	built, err := schema.New(doc.Fields, doc.Rules)
	if err != nil {
		return Template{}, fmt.Errorf("templates: %s: %w", name, err)
	}

	return Template{Type: t, Title: doc.Title, Schema: built}, nil
}

// MustLoad is Load for wiring code where a broken embedded definition is a
// programmer error.
func MustLoad(t DocumentType) Template {
	tpl, err := Load(t)
	if err != nil {
		panic(err)
	}
	return tpl
}
