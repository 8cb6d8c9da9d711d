package review

import (
	"testing"
)

const sampleIssueBody = `### App Name

PixelBot

### App Description

Generates pixel art from text prompts!

### App URL

https://pixelbot.example.com

### GitHub Repository URL

https://github.com/acme/pixelbot

### App Category

image

### App Language

en

### Discord Username (optional)

pixeldev

### Email (optional)

dev@example.com
`

func TestParseSubmission_AllFields(t *testing.T) {
	sub := ParseSubmission(sampleIssueBody)

	if sub.Name != "PixelBot" {
		t.Errorf("Expected name PixelBot, got %q", sub.Name)
	}
	if sub.Description != "Generates pixel art from text prompts" {
		t.Errorf("Expected sanitized description, got %q", sub.Description)
	}
	if sub.URL != "https://pixelbot.example.com" {
		t.Errorf("Expected URL, got %q", sub.URL)
	}
	if sub.Repo != "https://github.com/acme/pixelbot" {
		t.Errorf("Expected repo URL, got %q", sub.Repo)
	}
	if sub.Category != "image" {
		t.Errorf("Expected category image, got %q", sub.Category)
	}
	if sub.Language != "en" {
		t.Errorf("Expected language en, got %q", sub.Language)
	}
	if sub.Discord != "pixeldev" {
		t.Errorf("Expected discord handle, got %q", sub.Discord)
	}
	if sub.Email != "dev@example.com" {
		t.Errorf("Expected email, got %q", sub.Email)
	}
}

func TestParseSubmission_NoResponsePlaceholders(t *testing.T) {
	body := `### App Name

MyApp

### App URL

https://example.com

### GitHub Repository URL

_No response_

### Discord Username (optional)

_No response_

### App Language

_No response_
`

	sub := ParseSubmission(body)

	if sub.Repo != "" {
		t.Errorf("Expected empty repo for _No response_, got %q", sub.Repo)
	}
	if sub.Discord != "" {
		t.Errorf("Expected empty discord for _No response_, got %q", sub.Discord)
	}
	if sub.Language != "en" {
		t.Errorf("Expected default language en, got %q", sub.Language)
	}
}

func TestParseSubmission_MissingSections(t *testing.T) {
	sub := ParseSubmission("just some free text without headings")

	if sub.Name != "" {
		t.Errorf("Expected empty name, got %q", sub.Name)
	}
	if sub.URL != "" {
		t.Errorf("Expected empty URL, got %q", sub.URL)
	}
	if sub.Language != "en" {
		t.Errorf("Expected default language en, got %q", sub.Language)
	}
}

func TestParseSubmission_SanitizesFreeText(t *testing.T) {
	body := `### App Name

Evil|App<script>

### App Description

Injects | pipes and [markdown](https://example.com) links
`

	sub := ParseSubmission(body)

	if sub.Name != "EvilAppscript" {
		t.Errorf("Expected sanitized name, got %q", sub.Name)
	}
	if sub.Description != "Injects  pipes and markdownhttpsexample.com links" {
		t.Errorf("Expected sanitized description, got %q", sub.Description)
	}
}

func TestParseSubmission_TruncatesLongFields(t *testing.T) {
	longName := make([]byte, 100)
	for i := range longName {
		longName[i] = 'a'
	}

	sub := ParseSubmission("### App Name\n" + string(longName))

	if len(sub.Name) != 50 {
		t.Errorf("Expected name truncated to 50 characters, got %d", len(sub.Name))
	}
}

func TestParseSubmission_CaseInsensitiveHeadings(t *testing.T) {
	sub := ParseSubmission("### app name\nLowerApp\n\n### APP URL\nhttps://example.com")

	if sub.Name != "LowerApp" {
		t.Errorf("Expected case-insensitive heading match, got %q", sub.Name)
	}
	if sub.URL != "https://example.com" {
		t.Errorf("Expected case-insensitive URL match, got %q", sub.URL)
	}
}
