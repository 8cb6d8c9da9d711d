package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	descriptionMinLength = 10
	descriptionMaxLength = 200
)

const rewriteSystemPrompt = `You rewrite app descriptions for a public directory listing. ` +
	`Write exactly one sentence in plain neutral English, 10 to 200 characters, ` +
	`present tense, no marketing superlatives, no quotes, no pipe characters, no line breaks. ` +
	`Reply with the rewritten description only.`

// Rewriter produces the canonical one-line description for a submission.
// Exactly one assistant call is attempted; an invalid or failed result falls
// back to the sanitized original text.
type Rewriter struct {
	assistant Assistant
}

func NewRewriter(assistant Assistant) *Rewriter {
	return &Rewriter{assistant: assistant}
}

// Run returns the canonical description. The name stands in for an empty
// original description.
func (r *Rewriter) Run(ctx context.Context, name, original string) string {
	raw := original
	if raw == "" {
		raw = name
	}

	prompt := fmt.Sprintf("App: %q - Original: %q", name, raw)

	rewritten, err := r.assistant.Complete(ctx, rewriteSystemPrompt, prompt)
	if err != nil {
		slog.Warn("Description rewrite failed, using sanitized original", "app", name, "error", err)
		return Sanitize(raw, descriptionMaxLength)
	}

	rewritten = strings.Trim(strings.TrimSpace(rewritten), `"`)
	if err := ValidateDescription(rewritten); err != nil {
		slog.Warn("Rewritten description invalid, using sanitized original", "app", name, "error", err)
		return Sanitize(raw, descriptionMaxLength)
	}

	return rewritten
}

// ValidateDescription enforces the dataset's description constraints:
// length within [10,200] and no pipe or newline, the dataset's field and
// row delimiters.
func ValidateDescription(description string) error {
	if len(description) < descriptionMinLength {
		return fmt.Errorf("description too short: %d characters", len(description))
	}
	if len(description) > descriptionMaxLength {
		return fmt.Errorf("description too long: %d characters", len(description))
	}
	if strings.ContainsAny(description, "|\n") {
		return fmt.Errorf("description contains a delimiter character")
	}
	return nil
}
