package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		IssueNumber:       1234,
		IssueAuthor:       "octocat",
		ValidationResult:  `{"valid": true}`,
		TrackerAPIURL:     "https://api.github.com",
		TrackerToken:      "test-token",
		RepoSlug:          "acme/apps",
		WorkDir:           ".",
		BaseBranch:        "main",
		BotName:           "app-comb[bot]",
		DatasetFile:       "apps/APPS.md",
		SummaryFile:       "apps/SUMMARY.md",
		Model:             "openai",
		MaxTokens:         2048,
		Port:              "8080",
		WorkerCount:       2,
		LinkCheckInterval: 86400,
		DBPath:            "./app-comb.db",
		UserAgent:         "App Comb/1.0",
		Timezone:          "UTC",
		Debug:             true,
	}

	if cfg.IssueNumber != 1234 {
		t.Errorf("Expected issue number 1234, got %d", cfg.IssueNumber)
	}
	if cfg.TrackerAPIURL != "https://api.github.com" {
		t.Errorf("Expected tracker API URL, got '%s'", cfg.TrackerAPIURL)
	}
	if cfg.RepoSlug != "acme/apps" {
		t.Errorf("Expected repo slug 'acme/apps', got '%s'", cfg.RepoSlug)
	}
	if cfg.BaseBranch != "main" {
		t.Errorf("Expected base branch 'main', got '%s'", cfg.BaseBranch)
	}
	if cfg.DatasetFile != "apps/APPS.md" {
		t.Errorf("Expected dataset file 'apps/APPS.md', got '%s'", cfg.DatasetFile)
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("Expected max tokens 2048, got %d", cfg.MaxTokens)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.LinkCheckInterval != 86400 {
		t.Errorf("Expected link check interval 86400, got %d", cfg.LinkCheckInterval)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestValidate(t *testing.T) {
	// Review mode needs a token and an issue number.
	err := validate(&Cfg{TrackerToken: "", IssueNumber: 1})
	if err == nil {
		t.Error("Expected error for missing token")
	}

	err = validate(&Cfg{TrackerToken: "token", IssueNumber: 0})
	if err == nil {
		t.Error("Expected error for missing issue number in review mode")
	}

	err = validate(&Cfg{TrackerToken: "token", IssueNumber: 1234})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	// Serve mode takes issue numbers per request.
	err = validate(&Cfg{TrackerToken: "token", Serve: true})
	if err != nil {
		t.Errorf("Unexpected error in serve mode: %v", err)
	}
}
