package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines, so stacked regions keep stable coordinates.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			if width <= 1 {
				ln = xansi.Truncate(ln, width, "")
			} else {
				ln = xansi.Truncate(ln, width, glyphEllipsis())
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// overlayAt draws box over base with its top-left cell at (x, y).
func overlayAt(base, box string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, bl := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		line := baseLines[row]
		left := xansi.Truncate(line, x, "")
		if pad := x - xansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		bw := xansi.StringWidth(bl)
		right := ""
		if lw := xansi.StringWidth(line); x+bw < width && x+bw < lw {
			right = xansi.Cut(line, x+bw, lw)
		}
		baseLines[row] = left + bl + right
	}
	return strings.Join(baseLines, "\n")
}
