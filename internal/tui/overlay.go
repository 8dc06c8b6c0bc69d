package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// placeOver draws modal centred on top of base inside a width x height
// screen. Cells of base outside the modal are kept.
func placeOver(base, modal string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	modalLines := strings.Split(modal, "\n")
	modalWidth := 0
	for _, line := range modalLines {
		modalWidth = max(modalWidth, ansi.StringWidth(line))
	}

	x := max(0, (width-modalWidth)/2)
	y := max(0, (height-len(modalLines))/2)
	for i, line := range modalLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		target := padRight(baseLines[row], width)
		left := padRight(ansi.Truncate(target, x, ""), x)
		right := ansi.TruncateLeft(target, x+modalWidth, "")
		baseLines[row] = left + padRight(line, modalWidth) + right
	}
	return strings.Join(baseLines, "\n")
}

// padRight pads s with spaces to a visual width of width.
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
