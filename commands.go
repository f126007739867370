package main

import (
	"io"
	"log"

	backpack "ledbargraph.dev/led-bargraph/bargraph_backpack"
)

// cmdClear blanks the display.
func cmdClear(rt *runtimeConfig) error {
	logVerbosef("clearing the display")
	if err := rt.display.Clear(); err != nil {
		return err
	}
	// a cleared display should not keep blinking
	return rt.display.SetBlink(backpack.BLINK_OFF)
}

// cmdSet maps value against valueRange onto the segments and writes one
// frame. With the show setting on, the result is also rendered to w.
func cmdSet(rt *runtimeConfig, w io.Writer, value, valueRange int) error {
	logVerbosef("setting value %d of range %d", value, valueRange)

	state, blink, err := mapValue(value, valueRange, rt.display.Steps())
	if err != nil {
		return err
	}
	if blink {
		log.Printf("value %d is greater than range %d, setting display to blink", value, valueRange)
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

	if rt.settings.GetBool(sShow) {
		renderBargraph(w, rt.display.CurrentState())
	}
	return nil
}

// cmdShow reads the device's display RAM back and renders it on-screen.
func cmdShow(rt *runtimeConfig, w io.Writer) error {
	logVerbosef("showing the current display")

	state, err := rt.display.ReadState()
	if err != nil {
		return err
	}
	renderBargraph(w, state)
	return nil
}

// cmdDemo sweeps the bargraph from empty to full scale and back, then
// clears. The sleep runs on the injected clock so tests can drive it.
func cmdDemo(rt *runtimeConfig) error {
	logVerbosef("running demo sweep")

	steps := rt.display.Steps()
	stepTime := rt.settings.GetDuration(sDemoStep)

	frame := func(value int) error {
		state, _, err := mapValue(value, steps, steps)
		if err != nil {
			return err
		}
		if err := rt.display.SetState(state); err != nil {
			return err
		}
		if err := rt.display.Flush(); err != nil {
			return err
		}
		rt.clock.Sleep(stepTime)
		return nil
	}

	for value := 0; value <= steps; value++ {
		if err := frame(value); err != nil {
			return err
		}
	}
	for value := steps - 1; value >= 0; value-- {
		if err := frame(value); err != nil {
			return err
		}
	}
	return rt.display.Clear()
}
