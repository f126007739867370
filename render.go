package main

import (
	"fmt"
	"io"
	"strings"

	backpack "ledbargraph.dev/led-bargraph/bargraph_backpack"
)

// one lower-three-quarters block per segment
const barGlyph = "▊"

// terminal colors per segment state
const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[38;5;238m"
)

func segmentColor(c backpack.LedColor) string {
	switch c {
	case backpack.COLOR_GREEN:
		return ansiGreen
	case backpack.COLOR_RED:
		return ansiRed
	case backpack.COLOR_YELLOW:
		return ansiYellow
	default:
		return ansiDim
	}
}

// renderBargraph draws the display state as one row of colored glyphs inside
// a box frame, lowest segment on the left.
func renderBargraph(w io.Writer, state []backpack.LedColor) {
	line := strings.Repeat("═", len(state))
	fmt.Fprintf(w, "╔%s╗\n", line)

	fmt.Fprint(w, "║")
	for _, c := range state {
		fmt.Fprintf(w, "%s%s%s", segmentColor(c), barGlyph, ansiReset)
	}
	fmt.Fprint(w, "║\n")

	fmt.Fprintf(w, "╚%s╝\n", line)
}
