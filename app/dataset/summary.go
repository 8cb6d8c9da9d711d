package dataset

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// RegenerateSummary rewrites the derived per-category and per-platform
// count view from the dataset file. Called after every row insertion so the
// view never drifts from the table.
func RegenerateSummary(datasetPath, summaryPath string) error {
	entries, err := ParseEntries(datasetPath)
	if err != nil {
		return err
	}

	byCategory := make(map[string]int)
	byPlatform := make(map[string]int)
	for _, entry := range entries {
		if entry.Category != "" {
			byCategory[entry.Category]++
		}
		if entry.Platform != "" {
			byPlatform[entry.Platform]++
		}
	}

	var b strings.Builder
	b.WriteString("# App Directory Summary\n\n")
	fmt.Fprintf(&b, "Total apps: %d\n\n", len(entries))

	b.WriteString("## By Category\n\n| Category | Apps |\n| --- | --- |\n")
	writeCounts(&b, byCategory)

	b.WriteString("\n## By Platform\n\n| Platform | Apps |\n| --- | --- |\n")
	writeCounts(&b, byPlatform)

	if err := os.WriteFile(summaryPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	return nil
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		fmt.Fprintf(b, "| %s | %d |\n", key, counts[key])
	}
}
