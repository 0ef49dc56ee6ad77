package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TriggerList holds a rule's candidate strings. Authors may write a single
// scalar or a list in JSON/YAML; decoding normalises both forms so the
// evaluator only ever sees a list.
type TriggerList []string

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (t *TriggerList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return fmt.Errorf("schema: trigger: %w", err)
		}
		*t = TriggerList{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("schema: trigger: %w", err)
		}
		*t = TriggerList(list)
		return nil
	default:
		return fmt.Errorf("schema: trigger must be a string or a list of strings (line %d)", node.Line)
	}
}

// UnmarshalJSON accepts either a string or an array of strings.
func (t *TriggerList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = TriggerList(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("schema: trigger must be a string or a list of strings")
	}
	*t = TriggerList{single}
	return nil
}

// canonical returns the rule with defaults applied: an omitted match mode
// becomes MatchExact. Trigger normalisation already happened at decode time;
// rules constructed in Go with a bare one-element list need no further work.
func (r Rule) canonical() Rule {
	if r.Match == "" {
		r.Match = MatchExact
	}
	return r
}
