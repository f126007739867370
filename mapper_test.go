package main

import (
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/assert"

	backpack "ledbargraph.dev/led-bargraph/bargraph_backpack"
)

func countColor(state []backpack.LedColor, c backpack.LedColor) int {
	n := 0
	for _, s := range state {
		if s == c {
			n++
		}
	}
	return n
}

func TestMapZeroIsAllOff(t *testing.T) {
	for _, size := range []int{1, 12, 24} {
		state, blink, err := mapValue(0, 100, size)
		assert.NilError(t, err)
		assert.Equal(t, blink, false)
		assert.Equal(t, len(state), size)
		assert.Equal(t, countColor(state, backpack.COLOR_OFF), size, "size %d", size)
	}
}

func TestMapFullScaleIsAllGreen(t *testing.T) {
	for _, valueRange := range []int{1, 24, 100, 1000} {
		state, blink, err := mapValue(valueRange, valueRange, 24)
		assert.NilError(t, err)
		assert.Equal(t, blink, false, "range %d", valueRange)
		assert.Equal(t, countColor(state, backpack.COLOR_GREEN), 24, "range %d", valueRange)
	}
}

func TestMapPreservesArity(t *testing.T) {
	for _, size := range []int{1, 7, 24} {
		for _, value := range []int{0, 3, 50, 99, 100, 250} {
			state, _, err := mapValue(value, 100, size)
			assert.NilError(t, err)
			assert.Equal(t, len(state), size)
		}
	}
}

func TestMapHalfScale(t *testing.T) {
	// round(50/100 * 24) = 12
	state, blink, err := mapValue(50, 100, 24)
	assert.NilError(t, err)
	assert.Equal(t, blink, false)
	for i := 0; i < 12; i++ {
		assert.Equal(t, state[i], backpack.COLOR_GREEN, "segment %d", i)
	}
	for i := 12; i < 24; i++ {
		assert.Equal(t, state[i], backpack.COLOR_OFF, "segment %d", i)
	}
}

func TestMapRoundsHalfUp(t *testing.T) {
	// 1/48 * 24 = 0.5, half-up to 1
	state, _, err := mapValue(1, 48, 24)
	assert.NilError(t, err)
	assert.Equal(t, countColor(state, backpack.COLOR_GREEN), 1)

	// 1/100 * 24 = 0.24, rounds to 0
	state, _, err = mapValue(1, 100, 24)
	assert.NilError(t, err)
	assert.Equal(t, countColor(state, backpack.COLOR_GREEN), 0)
}

func TestMapOverflow(t *testing.T) {
	// 150/100: full display, excess round(50/100*24)=12 painted red
	state, blink, err := mapValue(150, 100, 24)
	assert.NilError(t, err)
	assert.Equal(t, blink, true)
	assert.Equal(t, countColor(state, backpack.COLOR_OFF), 0)
	assert.Equal(t, countColor(state, backpack.COLOR_GREEN), 12)
	assert.Equal(t, countColor(state, backpack.COLOR_RED), 12)
	assert.Equal(t, state[23], backpack.COLOR_RED)
}

func TestMapOverflowAtLeastOneRed(t *testing.T) {
	// barely over: still a visible red marker on top
	state, blink, err := mapValue(101, 100, 24)
	assert.NilError(t, err)
	assert.Equal(t, blink, true)
	assert.Equal(t, countColor(state, backpack.COLOR_RED), 1)
	assert.Equal(t, state[23], backpack.COLOR_RED)
	assert.Equal(t, countColor(state, backpack.COLOR_GREEN), 23)
}

func TestMapOverflowCapsAtAllRed(t *testing.T) {
	state, blink, err := mapValue(1000, 10, 24)
	assert.NilError(t, err)
	assert.Equal(t, blink, true)
	assert.Equal(t, countColor(state, backpack.COLOR_RED), 24)
}

func TestMapInvalidRange(t *testing.T) {
	for _, value := range []int{0, 1, 100} {
		_, _, err := mapValue(value, 0, 24)
		assert.Assert(t, errors.Cause(err) == errInvalidRange, "value %d", value)
		_, _, err = mapValue(value, -5, 24)
		assert.Assert(t, errors.Cause(err) == errInvalidRange, "value %d", value)
	}
}

func TestMapInvalidValue(t *testing.T) {
	_, _, err := mapValue(-1, 100, 24)
	assert.Assert(t, errors.Cause(err) == errInvalidValue)
}

func TestMapInvalidSize(t *testing.T) {
	_, _, err := mapValue(1, 100, 0)
	assert.Assert(t, errors.Cause(err) == errInvalidSize)
}
