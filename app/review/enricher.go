package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Assistant is the single-turn chat completion collaborator. One call, no
// retries; callers degrade to deterministic fallbacks on failure.
type Assistant interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const DefaultEmoji = "🚀"

const enrichmentSystemPrompt = `You are a reviewer for a public app directory. ` +
	`You classify submitted apps accurately and answer in the exact format requested.`

const enrichmentUserPrompt = `Process this app submission:

Name: %s
URL: %s
Description: %s
Category (user provided): %s
Language: %s
Repo: %s
Discord: %s

Respond with ONLY a JSON object (no markdown, no explanation):
{
    "emoji": "single emoji that represents this app",
    "category": "one of: image, video_audio, writing, chat, games, learn, bots, build, business",
    "language": "ISO code like en, zh-CN, es, ja",
    "platform": "one of: web, android, ios, windows, macos, desktop, cli, discord, telegram, whatsapp, library, browser-ext, roblox, wordpress, api"
}`

// First brace-delimited flat JSON object; model responses may wrap it in prose.
var jsonObjectRe = regexp.MustCompile(`\{[^{}]+\}`)

// Enricher obtains classification metadata for a submission from the
// assistant model, falling back to deterministic defaults when the call
// fails or returns unusable output. The classifier remains the source of
// truth for the platform tag whenever the model does not supply one.
type Enricher struct {
	assistant  Assistant
	classifier *Classifier
}

func NewEnricher(assistant Assistant, classifier *Classifier) *Enricher {
	return &Enricher{
		assistant:  assistant,
		classifier: classifier,
	}
}

// Run returns metadata for the submission. It never fails: any assistant or
// parse error degrades to the user-supplied category (or build), English and
// the default emoji, with the platform inferred by rule.
func (e *Enricher) Run(ctx context.Context, sub Submission) Metadata {
	meta := Metadata{
		Emoji:    DefaultEmoji,
		Category: fallbackCategory(sub.Category),
		Language: "en",
	}

	prompt := fmt.Sprintf(enrichmentUserPrompt,
		sub.Name, sub.URL, sub.Description, sub.Category, sub.Language, sub.Repo, sub.Discord)

	response, err := e.assistant.Complete(ctx, enrichmentSystemPrompt, prompt)
	if err != nil {
		slog.Warn("Enrichment call failed, using defaults", "app", sub.Name, "error", err)
		meta.Platform = e.classifier.Run(sub.Name, sub.URL, sub.Description)
		return meta
	}

	parsed, err := extractJSONObject(response)
	if err != nil {
		slog.Warn("Enrichment response unusable, using defaults", "app", sub.Name, "error", err)
		meta.Platform = e.classifier.Run(sub.Name, sub.URL, sub.Description)
		return meta
	}

	if emoji := normalizeEmoji(parsed["emoji"]); emoji != "" {
		meta.Emoji = emoji
	}
	if cat := Category(strings.TrimSpace(parsed["category"])); IsValidCategory(cat) {
		meta.Category = cat
	}
	if lang := NormalizeLanguage(parsed["language"]); lang != "" {
		meta.Language = lang
	}

	if platform := Platform(strings.TrimSpace(parsed["platform"])); IsValidPlatform(platform) {
		meta.Platform = platform
	} else {
		meta.Platform = e.classifier.Run(sub.Name, sub.URL, sub.Description)
	}

	return meta
}

// extractJSONObject pulls the first brace-delimited object out of the
// response text and decodes its string fields.
func extractJSONObject(response string) (map[string]string, error) {
	match := jsonObjectRe.FindString(response)
	if match == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON object: %w", err)
	}

	parsed := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			continue
		}
		parsed[key] = s
	}

	return parsed, nil
}

// NormalizeLanguage validates a candidate ISO-639/BCP-47 code and returns
// its canonical form, or an empty string when the candidate is unusable.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}

	return tag.String()
}

// normalizeEmoji keeps a short glyph and discards anything that looks like
// prose instead of a single emoji.
func normalizeEmoji(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 4 {
		return ""
	}
	return s
}

func fallbackCategory(userCategory string) Category {
	cat := Category(strings.ToLower(strings.TrimSpace(userCategory)))
	if IsValidCategory(cat) {
		return cat
	}
	return CategoryBuild
}
