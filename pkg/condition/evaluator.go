// Package condition evaluates a single conditional rule against a form data
// snapshot. Everything here is a pure function over its arguments: no shared
// state, safe for concurrent use.
package condition

import (
	"strings"

	"github.com/tramita/go-intake/pkg/schema"
)

// Evaluate reports whether the rule's trigger condition holds against the
// snapshot. The dependency value is read as a string (missing keys read as
// ""); multi-choice values are joined with a single space so the substring
// modes see every selection.
//
// Rules are expected in canonical form (schema.New guarantees a non-empty
// trigger list and an explicit match mode). An unrecognised mode evaluates to
// false rather than guessing; schema construction is where bad modes are
// rejected.
func Evaluate(rule schema.Rule, data schema.Snapshot) bool {
	value := StringValue(data[rule.DependsOn])

	switch rule.Match {
	case schema.MatchExact:
		for _, candidate := range rule.Trigger {
			if value == candidate {
				return true
			}
		}
		return false
	case schema.MatchContains:
		lowered := strings.ToLower(value)
		for _, candidate := range rule.Trigger {
			if strings.Contains(lowered, strings.ToLower(candidate)) {
				return true
			}
		}
		return false
	case schema.MatchContainsAll:
		if len(rule.Trigger) == 0 {
			return false
		}
		lowered := strings.ToLower(value)
		for _, candidate := range rule.Trigger {
			if !strings.Contains(lowered, strings.ToLower(candidate)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// StringValue coerces a snapshot entry to a string. Multi-choice values join
// with a single space; nil reads as "".
func StringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, StringValue(item))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// SliceValue coerces a snapshot entry to a string slice, reporting whether
// the entry was sequence-typed at all.
func SliceValue(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, StringValue(item))
		}
		return out, true
	default:
		return nil, false
	}
}

// IsEmpty reports whether a snapshot entry counts as unfilled: absent, a
// string that trims to nothing, or a zero-length sequence. A sequence with
// any element is filled, even a single one.
func IsEmpty(value any) bool {
	if items, ok := SliceValue(value); ok {
		return len(items) == 0
	}
	return strings.TrimSpace(StringValue(value)) == ""
}
