package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRegenerateSummary(t *testing.T) {
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "APPS.md")
	summaryPath := filepath.Join(dir, "SUMMARY.md")

	rows := []struct {
		name     string
		category string
		platform string
	}{
		{"A", "image", "web"},
		{"B", "image", "web"},
		{"C", "games", "roblox"},
		{"D", "image", "android"},
	}
	for _, r := range rows {
		columns := testColumns(r.name)
		columns[5] = r.category
		columns[6] = r.platform
		if err := PrependRow(datasetPath, columns); err != nil {
			t.Fatalf("Failed to seed dataset: %v", err)
		}
	}

	if err := RegenerateSummary(datasetPath, summaryPath); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("Failed to read summary: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Total apps: 4") {
		t.Errorf("Expected total count, got:\n%s", text)
	}
	if !strings.Contains(text, "| image | 3 |") {
		t.Errorf("Expected image count, got:\n%s", text)
	}
	if !strings.Contains(text, "| games | 1 |") {
		t.Errorf("Expected games count, got:\n%s", text)
	}
	if !strings.Contains(text, "| web | 2 |") {
		t.Errorf("Expected web platform count, got:\n%s", text)
	}

	// Categories are ordered by count, largest first.
	if strings.Index(text, "| image |") > strings.Index(text, "| games |") {
		t.Errorf("Expected image before games in summary")
	}
}

func TestRegenerateSummary_EmptyDataset(t *testing.T) {
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "APPS.md")
	summaryPath := filepath.Join(dir, "SUMMARY.md")

	content := headerLine() + "\n" + separatorLine() + "\n"
	if err := os.WriteFile(datasetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to seed dataset: %v", err)
	}

	if err := RegenerateSummary(datasetPath, summaryPath); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, _ := os.ReadFile(summaryPath)
	if !strings.Contains(string(data), "Total apps: 0") {
		t.Errorf("Expected zero total, got:\n%s", string(data))
	}
}
