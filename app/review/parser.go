package review

import (
	"regexp"
	"strings"
)

// Submission issues use the tracker's form template: each field appears as a
// "### <Label>" heading followed by the value on its own line. Fields the
// submitter left blank come through as "_No response_".
var (
	nameRe        = regexp.MustCompile(`(?i)### App Name\s*\n(.+)`)
	descriptionRe = regexp.MustCompile(`(?i)### App Description\s*\n(.+)`)
	urlRe         = regexp.MustCompile(`(?i)### App URL\s*\n(.+)`)
	repoRe        = regexp.MustCompile(`(?i)### GitHub.*Repository.*URL\s*\n(.+)`)
	discordRe     = regexp.MustCompile(`(?i)### Discord.*\s*\n(.+)`)
	categoryRe    = regexp.MustCompile(`(?i)### App Category\s*\n(.+)`)
	languageRe    = regexp.MustCompile(`(?i)### App Language\s*\n(.+)`)
	emailRe       = regexp.MustCompile(`(?i)### Email.*\s*\n(.+)`)
)

const noResponse = "_No response_"

// ParseSubmission extracts app details from a submission issue body.
// Free-text fields are sanitized; URL-bearing fields are kept raw.
func ParseSubmission(body string) Submission {
	return Submission{
		Name:        Sanitize(extract(nameRe, body, ""), 50),
		Description: Sanitize(extract(descriptionRe, body, ""), 200),
		URL:         extract(urlRe, body, ""),
		Repo:        extract(repoRe, body, ""),
		Discord:     extract(discordRe, body, ""),
		Category:    Sanitize(extract(categoryRe, body, ""), 20),
		Language:    extract(languageRe, body, "en"),
		Email:       extract(emailRe, body, ""),
	}
}

func extract(re *regexp.Regexp, body, fallback string) string {
	match := re.FindStringSubmatch(body)
	if match == nil {
		return fallback
	}

	value := strings.TrimSpace(match[1])
	if value == "" || value == noResponse {
		return fallback
	}

	return value
}
