package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lysyi3m/app-comb/app/review"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	rules, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if rules.Labels != review.DefaultLabels() {
		t.Errorf("Expected default labels, got %+v", rules.Labels)
	}
	if len(rules.Hosts) != 0 || len(rules.Keywords) != 0 {
		t.Errorf("Expected no extra rules")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	rules, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if rules.Labels != review.DefaultLabels() {
		t.Errorf("Expected default labels, got %+v", rules.Labels)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeRules(t, `
labels:
  pending: "queue"
  rejected: "denied"
  incomplete: "needs-work"
  in_review: "accepted"
  review_pr: "listing-pr"
hosts:
  - domain: "itch.io"
    platform: "desktop"
  - domain: "example.org"
    path_prefix: "/apps"
    platform: "web"
keywords:
  - any: ["minecraft"]
    platform: "desktop"
  - all: ["slack", "bot"]
    no_host: true
    platform: "api"
`)

	rules, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if rules.Labels.Pending != "queue" || rules.Labels.ReviewPR != "listing-pr" {
		t.Errorf("Unexpected labels: %+v", rules.Labels)
	}

	if len(rules.Hosts) != 2 {
		t.Fatalf("Expected 2 host rules, got %d", len(rules.Hosts))
	}
	if rules.Hosts[0].Domain != "itch.io" || rules.Hosts[0].Platform != review.PlatformDesktop {
		t.Errorf("Unexpected host rule: %+v", rules.Hosts[0])
	}
	if rules.Hosts[1].PathPrefix != "/apps" {
		t.Errorf("Expected path prefix, got %+v", rules.Hosts[1])
	}

	if len(rules.Keywords) != 2 {
		t.Fatalf("Expected 2 keyword rules, got %d", len(rules.Keywords))
	}
	if !rules.Keywords[1].NoHost {
		t.Errorf("Expected no_host flag set")
	}
}

func TestLoad_PartialLabelsFilledWithDefaults(t *testing.T) {
	path := writeRules(t, `
labels:
  rejected: "denied"
`)

	rules, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if rules.Labels.Rejected != "denied" {
		t.Errorf("Expected override kept, got %q", rules.Labels.Rejected)
	}
	if rules.Labels.Pending != "app-submission" {
		t.Errorf("Expected default pending label, got %q", rules.Labels.Pending)
	}
	if rules.Labels.InReview != "app-review" {
		t.Errorf("Expected default in-review label, got %q", rules.Labels.InReview)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeRules(t, "labels: [not a map")

	if _, err := Load(path); err == nil {
		t.Errorf("Expected error for invalid YAML")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Host without domain", "hosts:\n  - platform: \"web\"\n"},
		{"Host with bad platform", "hosts:\n  - domain: \"x.io\"\n    platform: \"gameboy\"\n"},
		{"Keyword without phrases", "keywords:\n  - platform: \"web\"\n"},
		{"Keyword with bad platform", "keywords:\n  - any: [\"x\"]\n    platform: \"gameboy\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRules(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}
