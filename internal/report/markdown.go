// Package report builds the markdown data-quality report printed by the
// validate tool and written alongside brochure builds.
package report

import (
	"fmt"
	"sort"
	"strings"

	"brochure/internal/catalog"
	"brochure/internal/models"

	"github.com/mattn/go-runewidth"
)

// Build renders a markdown report covering per-category counts and every
// warning the pipeline emitted.
func Build(groups []models.CategoryGroup, warnings *catalog.Warnings) string {
	var sb strings.Builder

	total := 0
	heroes := 0

	for _, group := range groups {
		total += len(group.Products)
		if group.Hero != nil {
			heroes++
		}
	}

	sb.WriteString("# Catalogue Build Report\n\n")
	fmt.Fprintf(&sb, "- Products: %d\n", total)
	fmt.Fprintf(&sb, "- Categories: %d\n", len(groups))
	fmt.Fprintf(&sb, "- Heroes selected: %d\n", heroes)
	fmt.Fprintf(&sb, "- Warnings: %d\n", warnings.Len())

	sb.WriteString("\n## Categories\n\n")
	sb.WriteString(categoryTable(groups))

	if warnings.Len() > 0 {
		sb.WriteString("\n## Warnings\n\n")
		sb.WriteString(warningTable(warnings.All()))
	}

	return sb.String()
}

func categoryTable(groups []models.CategoryGroup) string {
	rows := [][]string{{"Category", "Products", "Hero"}}

	for _, group := range groups {
		hero := "-"
		if group.Hero != nil {
			hero = group.Hero.Model
		}

		rows = append(rows, []string{group.Name, fmt.Sprintf("%d", len(group.Products)), hero})
	}

	return renderTable(rows)
}

func warningTable(records []catalog.Warning) string {
	rows := [][]string{{"Severity", "Code", "Message", "Context"}}

	for _, record := range records {
		rows = append(rows, []string{
			string(record.Severity),
			record.Code,
			record.Message,
			formatContext(record.Context),
		})
	}

	return renderTable(rows)
}

// formatContext flattens a warning context into stable "key=value" pairs.
func formatContext(context map[string]string) string {
	if len(context) == 0 {
		return ""
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+context[key])
	}

	return strings.Join(pairs, " ")
}

// renderTable writes an aligned markdown table. The first row is the header;
// a separator row is inserted after it. Column widths use display width so
// tables stay aligned with non-ASCII cell content.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	var sb strings.Builder

	for i, row := range rows {
		writeRow(&sb, row, colWidths)

		if i == 0 {
			writeSeparator(&sb, colWidths)
		}
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, row []string, colWidths []int) {
	sb.WriteString("|")

	for i, width := range colWidths {
		content := ""
		if i < len(row) {
			content = row[i]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		padding := width - runewidth.StringWidth(content)
		if padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

func writeSeparator(sb *strings.Builder, colWidths []int) {
	sb.WriteString("|")

	for _, width := range colWidths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}
