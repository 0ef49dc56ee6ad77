package submit

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	referencePolicyOnce sync.Once
	referencePolicy     *bluemonday.Policy
)

// SanitizeReference reduces pasted reference-document content to plain text:
// markup is stripped entirely and runs of whitespace collapse to single
// spaces, with blank lines preserved as paragraph breaks.
func SanitizeReference(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	cleaned := referenceSanitizer().Sanitize(trimmed)

	paragraphs := strings.Split(cleaned, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "\n\n")
}

func referenceSanitizer() *bluemonday.Policy {
	referencePolicyOnce.Do(func() {
		referencePolicy = bluemonday.StrictPolicy()
	})
	return referencePolicy
}
