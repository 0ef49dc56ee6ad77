// Package submit assembles the downstream payload for a validated intake
// form and delivers it to the processing webhook. Delivery is fire-once: a
// single POST, a receipt, no retries.
package submit

import (
	"strings"
	"time"

	"github.com/tramita/go-intake/pkg/condition"
	"github.com/tramita/go-intake/pkg/schema"
	"github.com/tramita/go-intake/pkg/templates"
)

// Payload is the flattened submission the webhook receives.
type Payload struct {
	DocumentType    templates.DocumentType `json:"documentType"`
	OrderNumber     string                 `json:"orderNumber,omitempty"`
	DeliveryAddress string                 `json:"deliveryAddress,omitempty"`
	// Fields holds the filled values in schema declaration order (encoded as
	// an array so the processor sees the authoring order).
	Fields []FieldValue `json:"fields"`
	// ReferenceDocument is the optional attached reference text, reduced to
	// plain text before delivery.
	ReferenceDocument string    `json:"referenceDocument,omitempty"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

// FieldValue is one flattened field entry.
type FieldValue struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options carries submission metadata collected outside the form itself.
type Options struct {
	OrderNumber       string
	DeliveryAddress   string
	ReferenceDocument string
	// Now overrides the timestamp source; nil uses time.Now.
	Now func() time.Time
}

// BuildPayload flattens a snapshot against the template's schema. Only
// fields declared by the schema are carried; multi-choice values join with
// ", ". The reference document, when present, is sanitised to plain text.
func BuildPayload(tpl templates.Template, data schema.Snapshot, opts Options) Payload {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var fields []FieldValue
	for _, field := range tpl.Schema.Fields() {
		raw, ok := data[field.ID]
		if !ok || condition.IsEmpty(raw) {
			continue
		}
		fields = append(fields, FieldValue{
			ID:    field.ID,
			Label: field.Label,
			Value: flatten(raw),
		})
	}

	return Payload{
		DocumentType:      tpl.Type,
		OrderNumber:       opts.OrderNumber,
		DeliveryAddress:   opts.DeliveryAddress,
		Fields:            fields,
		ReferenceDocument: SanitizeReference(opts.ReferenceDocument),
		SubmittedAt:       now().UTC(),
	}
}

func flatten(value any) string {
	if items, ok := condition.SliceValue(value); ok {
		return strings.Join(items, ", ")
	}
	return condition.StringValue(value)
}
