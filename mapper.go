package main

import (
	"github.com/pkg/errors"

	backpack "ledbargraph.dev/led-bargraph/bargraph_backpack"
)

var (
	errInvalidRange = errors.New("range must be a positive integer")
	errInvalidValue = errors.New("value must not be negative")
	errInvalidSize  = errors.New("size must be a positive integer")
)

// mapValue converts a value against a range into a per-segment color
// pattern of exactly size segments.
//
// Segments fill bottom-up in green; the filled count is
// round-half-up(value/range * size). When value exceeds range every segment
// lights and the excess is painted red from the top down (at least one
// segment), and the caller is told to blink the display.
func mapValue(value, valueRange, size int) (segments []backpack.LedColor, blink bool, err error) {
	if valueRange <= 0 {
		return nil, false, errors.Wrapf(errInvalidRange, "got %d", valueRange)
	}
	if value < 0 {
		return nil, false, errors.Wrapf(errInvalidValue, "got %d", value)
	}
	if size < 1 {
		return nil, false, errors.Wrapf(errInvalidSize, "got %d", size)
	}

	segments = make([]backpack.LedColor, size)

	if value <= valueRange {
		filled := roundHalfUp(value*size, valueRange)
		for i := 0; i < filled; i++ {
			segments[i] = backpack.COLOR_GREEN
		}
		return segments, false, nil
	}

	// Overflow: everything is lit, the excess beyond full scale shows as
	// red from the top down, and the display blinks. The range is never
	// rescaled; a glance should still read against the familiar scale.
	excess := roundHalfUp((value-valueRange)*size, valueRange)
	if excess < 1 {
		excess = 1
	}
	if excess > size {
		excess = size
	}
	for i := 0; i < size; i++ {
		if i < size-excess {
			segments[i] = backpack.COLOR_GREEN
		} else {
			segments[i] = backpack.COLOR_RED
		}
	}
	return segments, true, nil
}

// roundHalfUp computes num/den rounded half-up, in integer math.
func roundHalfUp(num, den int) int {
	return (2*num + den) / (2 * den)
}
