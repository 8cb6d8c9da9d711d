package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseValidationOutcome decodes the serialized validation verdict. Parsing
// is strict and fails closed: a malformed or empty payload is an error, so a
// broken validator output can never slip through as an accepted submission.
// An empty JSON object is well-formed and decodes to an invalid outcome with
// no errors, which triages as incomplete.
func ParseValidationOutcome(raw string) (ValidationOutcome, error) {
	var outcome ValidationOutcome

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return outcome, fmt.Errorf("validation result is empty")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&outcome); err != nil {
		return outcome, fmt.Errorf("failed to parse validation result: %w", err)
	}

	if outcome.Stars < 0 {
		return outcome, fmt.Errorf("invalid validation result: negative star count %d", outcome.Stars)
	}

	return outcome, nil
}
