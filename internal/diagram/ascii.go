package diagram

import (
	"fmt"
	"math"
	"strings"
)

// Bar is one labelled quantity of a bar diagram. Unknown bars are listed
// but not drawn.
type Bar struct {
	Label string
	Value float64
	Known bool
}

// DriveIndexData holds the drive-index breakdown of a tank for drawing
type DriveIndexData struct {
	Title string
	Bars  []Bar   // one per drive mechanism
	Total float64 // sum of the known indices
}

// DrawDriveIndexBars creates an ASCII bar chart of the drive indices. Bars
// are scaled so that an index of 1 spans the full width; negative indices
// grow to the left of the axis.
func DrawDriveIndexBars(data DriveIndexData) string {
	var sb strings.Builder

	width := 40
	labelWidth := 5
	for _, b := range data.Bars {
		labelWidth = max(labelWidth, len(b.Label))
	}

	// Room left of the axis for the most negative bar
	left := 0
	for _, b := range data.Bars {
		if b.Known && b.Value < 0 {
			left = max(left, barLength(-b.Value, width))
		}
	}

	title := data.Title
	if title == "" {
		title = "DRIVE INDICES"
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(title)))))

	for _, b := range data.Bars {
		sb.WriteString(fmt.Sprintf("  %-*s ", labelWidth, b.Label))
		switch {
		case !b.Known:
			sb.WriteString(strings.Repeat(" ", left))
			sb.WriteString("│ unknown\n")
		case b.Value < 0:
			n := barLength(-b.Value, width)
			sb.WriteString(strings.Repeat(" ", left-n))
			sb.WriteString(strings.Repeat("▒", n))
			sb.WriteString(fmt.Sprintf("│ %.4f\n", b.Value))
		default:
			n := barLength(b.Value, width)
			sb.WriteString(strings.Repeat(" ", left))
			sb.WriteString("│")
			sb.WriteString(strings.Repeat("█", n))
			sb.WriteString(fmt.Sprintf(" %.4f\n", b.Value))
		}
	}

	// Scale reference: the full width is an index of 1
	sb.WriteString(fmt.Sprintf("  %-*s %s└%s┤ 1.0\n", labelWidth, "", strings.Repeat(" ", left), strings.Repeat("─", width)))
	sb.WriteString(fmt.Sprintf("\n  Total drive index = %.4f", data.Total))
	if math.Abs(data.Total-1) > 1e-3 {
		sb.WriteString(" (not energy balanced)")
	}
	sb.WriteString("\n")

	return sb.String()
}

func barLength(v float64, width int) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(math.Round(math.Min(v, 1) * float64(width)))
}

// DrawPressureTable creates an ASCII table of a pressure solution: one row per
// time, one column per radial node. NaN entries are shown as a dash.
func DrawPressureTable(times, nodes []float64, pressure [][]float64) string {
	var sb strings.Builder

	sb.WriteString("\n  t (days)  │")
	for _, r := range nodes {
		sb.WriteString(fmt.Sprintf(" r=%-9.4g", r))
	}
	sb.WriteString("\n  ──────────┼")
	sb.WriteString(strings.Repeat("─", 12*len(nodes)))
	sb.WriteString("\n")

	for i, t := range times {
		sb.WriteString(fmt.Sprintf("  %-9.4g │", t))
		for _, p := range pressure[i] {
			if math.IsNaN(p) {
				sb.WriteString(fmt.Sprintf(" %-11s", "—"))
				continue
			}
			sb.WriteString(fmt.Sprintf(" %-11.2f", p))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
