// Package wizard is the host side of the intake flow: it owns the mutable
// form snapshot, re-queries the engine on every read, and gates submission on
// a clean validation pass. The engine itself stays pure; all state lives
// here.
package wizard

import (
	"context"
	"fmt"

	"github.com/tramita/go-intake/pkg/engine"
	"github.com/tramita/go-intake/pkg/orders"
	"github.com/tramita/go-intake/pkg/schema"
	"github.com/tramita/go-intake/pkg/submit"
	"github.com/tramita/go-intake/pkg/templates"
)

// ErrInvalid is returned by Submit when validation fails; it carries the full
// result so callers can surface per-field messages.
type ErrInvalid struct {
	Result engine.Result
}

func (e *ErrInvalid) Error() string {
	return fmt.Sprintf("wizard: form has %d invalid field(s)", len(e.Result.Errors))
}

// Session drives one intake form from first prompt to submission.
type Session struct {
	tpl       templates.Template
	eng       *engine.Engine
	data      schema.Snapshot
	order     *orders.Order
	reference string
}

// NewSession starts a session for the given template, optionally seeded with
// prefilled values.
func NewSession(tpl templates.Template, prefill schema.Snapshot) (*Session, error) {
	eng, err := engine.New(tpl.Schema)
	if err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}

	data := make(schema.Snapshot, len(prefill))
	for key, value := range prefill {
		data[key] = value
	}

	return &Session{tpl: tpl, eng: eng, data: data}, nil
}

// Template returns the template the session was started with.
func (s *Session) Template() templates.Template {
	return s.tpl
}

// Engine exposes the underlying engine for direct queries.
func (s *Session) Engine() *engine.Engine {
	return s.eng
}

// Set stores a value for a declared field. Unknown ids are rejected so typos
// in calling code surface immediately.
func (s *Session) Set(fieldID string, value any) error {
	if !s.tpl.Schema.Has(fieldID) {
		return fmt.Errorf("wizard: unknown field %q", fieldID)
	}
	s.data[fieldID] = value
	return nil
}

// Unset removes a field's value, e.g. when the field was hidden after a
// dependency change.
func (s *Session) Unset(fieldID string) {
	delete(s.data, fieldID)
}

// Value returns the current value for a field.
func (s *Session) Value(fieldID string) (any, bool) {
	value, ok := s.data[fieldID]
	return value, ok
}

// Snapshot returns a copy of the current form data.
func (s *Session) Snapshot() schema.Snapshot {
	out := make(schema.Snapshot, len(s.data))
	for key, value := range s.data {
		out[key] = value
	}
	return out
}

// VisibleFields returns, in declaration order, the fields the host should
// currently render.
func (s *Session) VisibleFields() []schema.Field {
	var out []schema.Field
	for _, field := range s.tpl.Schema.Fields() {
		if s.eng.ShouldShow(field.ID, s.data) {
			out = append(out, field)
		}
	}
	return out
}

// Validate runs a full validation pass over the current snapshot.
func (s *Session) Validate() engine.Result {
	return s.eng.Validate(s.data)
}

// AttachOrder records the resolved order so submission carries its delivery
// metadata.
func (s *Session) AttachOrder(order orders.Order) {
	s.order = &order
}

// AttachReference records the optional reference-document text to submit
// alongside the form values.
func (s *Session) AttachReference(text string) {
	s.reference = text
}

// Submit validates the snapshot and, when clean, assembles the payload and
// delivers it once through the sink. A failed validation returns *ErrInvalid
// without touching the sink.
func (s *Session) Submit(ctx context.Context, sink submit.Sink) (submit.Receipt, error) {
	result := s.Validate()
	if !result.Valid {
		return submit.Receipt{}, &ErrInvalid{Result: result}
	}

	opts := submit.Options{ReferenceDocument: s.reference}
	if s.order != nil {
		opts.OrderNumber = s.order.Number
		opts.DeliveryAddress = s.order.DeliveryAddress
	}

	payload := submit.BuildPayload(s.tpl, s.data, opts)
	receipt, err := sink.Deliver(ctx, payload)
	if err != nil {
		return receipt, fmt.Errorf("wizard: submit: %w", err)
	}
	return receipt, nil
}
