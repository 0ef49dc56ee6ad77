package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/tramita/go-intake/pkg/schema"
	"github.com/tramita/go-intake/pkg/submit"
	"github.com/tramita/go-intake/pkg/wizard"
)

// sweepLimit caps how many times the runner re-walks the field list chasing
// newly revealed fields. Visibility depends on at most one field per rule, so
// in practice two sweeps settle everything; the cap only guards against
// pathological template authoring.
const sweepLimit = 8

// Runner walks a wizard session in the terminal: it prompts every currently
// visible field in declaration order, re-queries visibility after each
// answer, and loops on validation failures until the form is clean or the
// user gives up.
type Runner struct {
	driver PromptDriver
}

// Option configures a Runner.
type Option func(*Runner)

// WithDriver swaps the prompt driver; tests use a scripted one.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// NewRunner builds a Runner with the survey driver by default.
func NewRunner(options ...Option) *Runner {
	r := &Runner{driver: NewSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run collects the form, validates it, and, when a sink is provided and the
// user confirms, delivers the submission. A nil sink stops after
// validation, leaving delivery to the caller.
func (r *Runner) Run(ctx context.Context, session *wizard.Session, sink submit.Sink) (submit.Receipt, error) {
	if session == nil {
		return submit.Receipt{}, errors.New("tui: session is required")
	}

	if err := r.collect(ctx, session); err != nil {
		return submit.Receipt{}, err
	}

	for {
		result := session.Validate()
		if result.Valid {
			break
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("El formulario tiene %d campo(s) por corregir.", len(result.Errors))); err != nil {
			return submit.Receipt{}, err
		}
		for _, field := range session.VisibleFields() {
			msg := result.ErrorFor(field.ID)
			if msg == "" {
				continue
			}
			if err := r.driver.Info(ctx, "  ✗ "+msg); err != nil {
				return submit.Receipt{}, err
			}
			if err := r.prompt(ctx, session, field); err != nil {
				return submit.Receipt{}, err
			}
		}
		r.pruneHidden(session)
	}

	if sink == nil {
		return submit.Receipt{}, nil
	}

	confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: "¿Enviar el formulario?",
		Default: true,
	})
	if err != nil {
		return submit.Receipt{}, err
	}
	if !confirmed {
		return submit.Receipt{}, ErrAborted
	}

	return session.Submit(ctx, sink)
}

// collect sweeps the visible fields until nothing unanswered remains,
// re-checking visibility after every answer so dependent fields get their
// turn even when declared before their dependency.
func (r *Runner) collect(ctx context.Context, session *wizard.Session) error {
	for sweep := 0; sweep < sweepLimit; sweep++ {
		prompted := false
		for _, field := range session.VisibleFields() {
			if _, answered := session.Value(field.ID); answered {
				continue
			}
			if err := r.prompt(ctx, session, field); err != nil {
				return err
			}
			prompted = true
		}
		r.pruneHidden(session)
		if !prompted {
			return nil
		}
	}
	return nil
}

func (r *Runner) prompt(ctx context.Context, session *wizard.Session, field schema.Field) error {
	label := field.Label
	if session.Engine().IsRequired(field.ID, session.Snapshot()) {
		label += " *"
	}

	var value any
	var err error

	switch field.Kind {
	case schema.KindTextarea:
		value, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: currentString(session, field.ID),
			Help:    field.Placeholder,
		})
	case schema.KindSelect:
		var choice int
		choice, err = r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, currentString(session, field.ID)),
		})
		if err == nil && choice >= 0 && choice < len(field.Options) {
			value = field.Options[choice]
		}
	case schema.KindMultiSelect:
		var choices []int
		choices, err = r.driver.MultiSelect(ctx, SelectConfig{
			Message: label,
			Options: field.Options,
		})
		if err == nil {
			selected := make([]string, 0, len(choices))
			for _, i := range choices {
				if i >= 0 && i < len(field.Options) {
					selected = append(selected, field.Options[i])
				}
			}
			value = selected
		}
	default:
		value, err = r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: currentString(session, field.ID),
			Help:    field.Placeholder,
		})
	}
	if err != nil {
		return err
	}
	return session.Set(field.ID, value)
}

// pruneHidden clears answers for fields a dependency change has hidden, so a
// stale value never rides along into submission.
func (r *Runner) pruneHidden(session *wizard.Session) {
	data := session.Snapshot()
	for _, field := range session.Template().Schema.Fields() {
		if _, answered := data[field.ID]; !answered {
			continue
		}
		if !session.Engine().ShouldShow(field.ID, data) {
			session.Unset(field.ID)
		}
	}
}

func currentString(session *wizard.Session, fieldID string) string {
	value, ok := session.Value(fieldID)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}
