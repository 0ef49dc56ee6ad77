package engine

// Result is the outcome of one validation pass. It is recomputed fresh on
// every call; nothing here outlives the call that produced it.
type Result struct {
	// Valid is true iff Errors is empty.
	Valid bool `json:"valid"`
	// Errors maps field id to a single user-facing message, the first
	// failing check per field.
	Errors map[string]string `json:"errors,omitempty"`
	// Validated lists, in schema order, the fields that were visible and
	// passed (required fields with a value, plus optional visible fields).
	Validated []string `json:"validatedFields,omitempty"`
	// Skipped lists the fields that were hidden and therefore exempt from
	// validation.
	Skipped []string `json:"skippedFields,omitempty"`
}

// ErrorFor returns the message recorded for a field, "" when it passed.
func (r Result) ErrorFor(fieldID string) string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[fieldID]
}
