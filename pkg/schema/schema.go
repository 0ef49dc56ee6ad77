package schema

import (
	"errors"
	"fmt"
	"strings"
)

var errNoFields = errors.New("schema: at least one field is required")

// Schema is a validated, immutable form definition: fields in declaration
// order plus the conditional rules attached to each field. Construct through
// New; a zero Schema is empty and matches nothing.
type Schema struct {
	fields []Field
	index  map[string]int
	rules  map[string][]Rule
}

// New validates the field set and rule map and returns an immutable Schema.
// Every authoring mistake the engine cannot safely default around is rejected
// here: duplicate or empty ids, unknown kinds, rules attached to or depending
// on fields that do not exist, self-referential rules, unknown rule kinds or
// match modes, and empty trigger lists.
func New(fields []Field, rules map[string][]Rule) (*Schema, error) {
	if len(fields) == 0 {
		return nil, errNoFields
	}

	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
		rules:  make(map[string][]Rule, len(rules)),
	}

	for i, field := range fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return nil, fmt.Errorf("schema: field %d has an empty id", i)
		}
		if _, dup := s.index[id]; dup {
			return nil, fmt.Errorf("schema: duplicate field id %q", id)
		}
		if strings.TrimSpace(field.Label) == "" {
			return nil, fmt.Errorf("schema: field %q has an empty label", id)
		}
		switch field.Kind {
		case KindText, KindTextarea, KindSelect, KindMultiSelect:
		default:
			return nil, fmt.Errorf("schema: field %q has unknown kind %q", id, field.Kind)
		}
		field.ID = id
		s.fields[i] = field
		s.index[id] = i
	}

	for fieldID, fieldRules := range rules {
		if _, ok := s.index[fieldID]; !ok {
			return nil, fmt.Errorf("schema: rules declared for unknown field %q", fieldID)
		}
		canon := make([]Rule, 0, len(fieldRules))
		for i, rule := range fieldRules {
			rule = rule.canonical()
			if err := validateRule(rule, fieldID, s.index); err != nil {
				return nil, fmt.Errorf("schema: field %q rule %d: %w", fieldID, i, err)
			}
			canon = append(canon, rule)
		}
		if len(canon) > 0 {
			s.rules[fieldID] = canon
		}
	}

	return s, nil
}

func validateRule(rule Rule, fieldID string, index map[string]int) error {
	dep := strings.TrimSpace(rule.DependsOn)
	if dep == "" {
		return errors.New("missing dependsOn")
	}
	if dep == fieldID {
		return errors.New("rule depends on its own field")
	}
	if _, ok := index[dep]; !ok {
		return fmt.Errorf("dependsOn references unknown field %q", dep)
	}
	switch rule.Kind {
	case RuleShow, RuleRequire:
	default:
		return fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
	switch rule.Match {
	case MatchExact, MatchContains, MatchContainsAll:
	default:
		return fmt.Errorf("unknown match mode %q", rule.Match)
	}
	if len(rule.Trigger) == 0 {
		return errors.New("empty trigger list")
	}
	return nil
}

// Fields returns the fields in declaration order. The slice is a copy;
// callers may not reach the schema's internal state through it.
func (s *Schema) Fields() []Field {
	if s == nil || len(s.fields) == 0 {
		return nil
	}
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the descriptor for id, reporting whether it exists.
func (s *Schema) Field(id string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the schema declares a field with the given id.
func (s *Schema) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Rules returns the conditional rules attached to id, nil when none exist.
func (s *Schema) Rules(id string) []Rule {
	if s == nil || len(s.rules) == 0 {
		return nil
	}
	fieldRules := s.rules[id]
	if len(fieldRules) == 0 {
		return nil
	}
	out := make([]Rule, len(fieldRules))
	copy(out, fieldRules)
	return out
}

// Len reports the number of declared fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}
