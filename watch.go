package main

import (
	"fmt"

	"github.com/nsf/termbox-go"

	backpack "ledbargraph.dev/led-bargraph/bargraph_backpack"
)

// runWatch drives the bargraph interactively: arrows (or +/-) move the value
// one step, PgUp/PgDn move it by a tenth of the range, 'c' clears, Esc or
// Ctrl-C exits. Every change writes a full frame to the device and mirrors
// it on-screen.
func runWatch(rt *runtimeConfig) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	valueRange := rt.display.Steps()
	value := 0
	bigStep := valueRange / 10
	if bigStep < 1 {
		bigStep = 1
	}

	for {
		if err := watchFrame(rt, value, valueRange); err != nil {
			return err
		}

		ev := termbox.PollEvent()
		if ev.Type != termbox.EventKey {
			continue
		}
		switch {
		case ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC:
			return rt.display.Clear()
		case ev.Key == termbox.KeyArrowUp || ev.Ch == '+':
			value = watchAdjust(value, 1, valueRange)
		case ev.Key == termbox.KeyArrowDown || ev.Ch == '-':
			value = watchAdjust(value, -1, valueRange)
		case ev.Key == termbox.KeyPgup:
			value = watchAdjust(value, bigStep, valueRange)
		case ev.Key == termbox.KeyPgdn:
			value = watchAdjust(value, -bigStep, valueRange)
		case ev.Ch == 'c':
			value = 0
		}
	}
}

// watchAdjust moves value by delta, pinned to [0, 2*range] so overflow is
// reachable but the value can't run away.
func watchAdjust(value, delta, valueRange int) int {
	value += delta
	if value < 0 {
		value = 0
	}
	if value > 2*valueRange {
		value = 2 * valueRange
	}
	return value
}

func watchFrame(rt *runtimeConfig, value, valueRange int) error {
	state, blink, err := mapValue(value, valueRange, rt.display.Steps())
	if err != nil {
		return err
	}
	if err := rt.display.SetState(state); err != nil {
		return err
	}
	if err := rt.display.Flush(); err != nil {
		return err
	}
	rate := uint8(backpack.BLINK_OFF)
	if blink {
		rate = backpack.BLINK_2HZ
	}
	if err := rt.display.SetBlink(rate); err != nil {
		return err
	}
	drawWatch(state, value, valueRange, blink)
	return nil
}

func termboxColor(c backpack.LedColor) termbox.Attribute {
	switch c {
	case backpack.COLOR_GREEN:
		return termbox.ColorGreen
	case backpack.COLOR_RED:
		return termbox.ColorRed
	case backpack.COLOR_YELLOW:
		return termbox.ColorYellow
	default:
		// bright black reads as dark gray on most terminals
		return termbox.ColorBlack | termbox.AttrBold
	}
}

func tbPrint(x, y int, fg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, termbox.ColorDefault)
		x++
	}
}

func drawWatch(state []backpack.LedColor, value, valueRange int, blink bool) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	title := fmt.Sprintf("value %d / range %d", value, valueRange)
	if blink {
		title += "  (overflow)"
	}
	tbPrint(1, 0, termbox.ColorWhite, title)

	for i, c := range state {
		termbox.SetCell(1+i, 2, '▊', termboxColor(c), termbox.ColorDefault)
	}

	tbPrint(1, 4, termbox.ColorWhite, "up/down +/- adjust, pgup/pgdn jump, c clear, esc quit")
	termbox.Flush()
}
