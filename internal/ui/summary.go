package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/nconklindev/gridloc/internal/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderSummary formats a finished conversion. Paths longer than maxPathLen
// are shortened from the left; values below 30 are raised to 30.
func RenderSummary(r *types.ConversionResult, maxPathLen int) string {
	if r == nil {
		return ""
	}
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	rows := [][2]string{
		{"Input", truncatePath(r.InputFile, maxPathLen)},
		{"Sheet", sheetLabel(r.Sheet)},
		{"Version", r.Version},
		{"Rows read", humanize.Comma(int64(r.RowsProcessed))},
		{"Valid records", humanize.Comma(int64(r.Records))},
		{"Skipped", skippedLabel(r)},
		{"Output", fmt.Sprintf("%s (%s)", truncatePath(r.OutputFile, maxPathLen), humanize.Bytes(uint64(r.OutputBytes)))},
		{"Version file", truncatePath(r.VersionFile, maxPathLen)},
		{"Took", r.Duration.Round(time.Millisecond).String()},
	}

	var s strings.Builder
	for _, row := range rows {
		value := row[1]
		if row[0] == "Valid records" || row[0] == "Output" {
			value = SuccessStyle.Render(value)
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(row[0]), value))
		s.WriteString("\n")
	}
	return s.String()
}

func skippedLabel(r *types.ConversionResult) string {
	label := humanize.Comma(int64(r.Skipped))
	if len(r.SkippedBy) == 0 {
		return label
	}
	parts := make([]string, 0, len(r.SkippedBy))
	for _, reason := range slices.Sorted(maps.Keys(r.SkippedBy)) {
		parts = append(parts, fmt.Sprintf("%s %d", reason, r.SkippedBy[reason]))
	}
	return fmt.Sprintf("%s (%s)", label, strings.Join(parts, ", "))
}

// truncatePath counts runes so Hangul file names are never cut mid-character.
func truncatePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
