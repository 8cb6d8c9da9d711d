package dataset

import (
	"fmt"
	"os"
	"strings"
)

// NumColumns is the fixed width of a dataset row. The two trailing columns
// are reserved placeholders kept empty by the publisher.
const NumColumns = 18

var header = []string{
	"Emoji",
	"Name",
	"Web_URL",
	"Description",
	"Language",
	"Category",
	"Platform",
	"GitHub_Username",
	"GitHub_UserID",
	"Github_Repository_URL",
	"Github_Repository_Stars",
	"Discord_Username",
	"Other",
	"Submitted_Date",
	"Issue_URL",
	"Approved_Date",
	"BYOP",
	"Requests_24h",
}

// Header returns the dataset column names in published order.
func Header() []string {
	out := make([]string, NumColumns)
	copy(out, header)
	return out
}

// EncodeRow renders columns as one pipe-delimited table line. It rejects
// rows with the wrong width or fields containing the table's delimiters
// rather than writing a corrupt line.
func EncodeRow(columns []string) (string, error) {
	if len(columns) != NumColumns {
		return "", fmt.Errorf("expected %d columns, got %d", NumColumns, len(columns))
	}

	for i, col := range columns {
		if strings.ContainsAny(col, "|\n") {
			return "", fmt.Errorf("column %d (%s) contains a delimiter character", i, header[i])
		}
	}

	return "| " + strings.Join(columns, " | ") + " |", nil
}

// SplitRow parses one table line back into its columns. Lines that are not
// table rows return nil.
func SplitRow(line string) []string {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "|") {
		return nil
	}

	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil
	}

	// Split leaves an empty leading and trailing element.
	parts = parts[1 : len(parts)-1]
	columns := make([]string, len(parts))
	for i, part := range parts {
		columns[i] = strings.TrimSpace(part)
	}
	return columns
}

func headerLine() string {
	line, _ := EncodeRow(header)
	return line
}

func separatorLine() string {
	cells := make([]string, NumColumns)
	for i := range cells {
		cells[i] = "---"
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

// PrependRow inserts columns as the new first data row, directly below the
// header separator, so the dataset stays ordered newest first. A missing
// file is initialized with the table header.
func PrependRow(path string, columns []string) error {
	row, err := EncodeRow(columns)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		content := headerLine() + "\n" + separatorLine() + "\n" + row + "\n"
		return os.WriteFile(path, []byte(content), 0o644)
	}
	if err != nil {
		return fmt.Errorf("failed to read dataset file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	headerIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "| Emoji") {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 || headerIdx+1 >= len(lines) {
		return fmt.Errorf("dataset file %s has no table header", path)
	}

	insertAt := headerIdx + 2
	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:insertAt]...)
	updated = append(updated, row)
	updated = append(updated, lines[insertAt:]...)

	if err := os.WriteFile(path, []byte(strings.Join(updated, "\n")), 0o644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}

	return nil
}

// Entry is a published app row in parsed form. Columns keeps the raw
// columns for callers that need positions beyond the named fields.
type Entry struct {
	Name     string
	WebURL   string
	RepoURL  string
	Category string
	Platform string
	Columns  []string
}

// ParseEntries reads all data rows from the dataset file. Column positions
// are resolved from the header so older files with fewer trailing columns
// still parse.
func ParseEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	headerIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "| Emoji") {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, nil
	}

	headerCols := SplitRow(lines[headerIdx])
	col := func(name string) int {
		for i, c := range headerCols {
			if c == name {
				return i
			}
		}
		return -1
	}
	nameIdx := col("Name")
	webIdx := col("Web_URL")
	repoIdx := col("Github_Repository_URL")
	categoryIdx := col("Category")
	platformIdx := col("Platform")

	at := func(columns []string, idx int) string {
		if idx < 0 || idx >= len(columns) {
			return ""
		}
		return columns[idx]
	}

	var entries []Entry
	for _, line := range lines[headerIdx+2:] {
		columns := SplitRow(line)
		if columns == nil {
			continue
		}

		entries = append(entries, Entry{
			Name:     at(columns, nameIdx),
			WebURL:   at(columns, webIdx),
			RepoURL:  at(columns, repoIdx),
			Category: strings.ToLower(at(columns, categoryIdx)),
			Platform: at(columns, platformIdx),
			Columns:  columns,
		})
	}

	return entries, nil
}
