// Package bargraph_backpack drives the Adafruit Bi-Color 24-bar LED
// bargraph backpack (Holtek HT16K33 controller).
//
// The driver keeps an in-memory mirror of the chip's 16-byte display RAM.
// Segment changes only touch the mirror; Flush writes the whole frame to the
// device in a single bus transaction so the display never shows a
// half-written state.
package bargraph_backpack

import (
	"github.com/pkg/errors"

	"ledbargraph.dev/led-bargraph/i2c"
)

// commands we support
// OSC on/off 0/1
const i2c_OSC_CMD = 0x20
const i2c_OSC_ON = 0x21

// display on/off and 2 "blink" bits in position 2+1
const i2cDISPLAY_CMD = 0x80
const i2cDISPLAY_ON = 0x81
const i2cDISPLAY_OFF = 0x80

// 0x0 -> 0xF brightness levels
const i2cBRIGHTNESS_CMD = 0xE0
const i2cBRIGHTNESS_MAX = 0x0F

// export blink positions
const BLINK_OFF = 0
const BLINK_2HZ = 1
const BLINK_1HZ = 2
const BLINK_HALFHZ = 3

// Resolution is the number of bars on the backpack.
const Resolution = 24

// the HT16K33 has 16 bytes of display RAM
const ramSize = 16

// LedColor is the state of one bi-color bar.
type LedColor byte

// The red and green LEDs of a bar are addressed separately; yellow is both
// at once.
const (
	COLOR_OFF LedColor = iota
	COLOR_GREEN
	COLOR_RED
	COLOR_YELLOW
)

func (c LedColor) String() string {
	switch c {
	case COLOR_GREEN:
		return "green"
	case COLOR_RED:
		return "red"
	case COLOR_YELLOW:
		return "yellow"
	default:
		return "off"
	}
}

var (
	// ErrIndexOutOfRange means a segment index >= the configured steps.
	ErrIndexOutOfRange = errors.New("segment index out of range")
	// ErrBadSteps means the requested resolution does not fit the hardware.
	ErrBadSteps = errors.New("steps must be between 1 and 24")
)

// Logf is an optional trace sink; the driver never reaches for a global
// logger.
type Logf func(format string, args ...interface{})

// Bargraph is a connected backpack.
type Bargraph struct {
	bus   i2c.Bus
	steps int
	ram   [ramSize]byte
	logf  Logf
}

// Open wraps an i2c bus as a bargraph with the given number of steps
// (segments). logf may be nil.
func Open(bus i2c.Bus, steps int, logf Logf) (*Bargraph, error) {
	if steps < 1 || steps > Resolution {
		return nil, errors.Wrapf(ErrBadSteps, "got %d", steps)
	}
	return &Bargraph{bus: bus, steps: steps, logf: logf}, nil
}

func (bg *Bargraph) log(format string, args ...interface{}) {
	if bg.logf != nil {
		bg.logf(format, args...)
	}
}

// Steps returns the configured segment count.
func (bg *Bargraph) Steps() int {
	return bg.steps
}

// Initialize runs the power-on sequence: oscillator on, display on with
// blinking off, full brightness. Writes are not visible until this has run
// once since device power-up.
func (bg *Bargraph) Initialize() error {
	bg.log("initialize: oscillator on")
	if err := bg.bus.WriteCmd(i2c_OSC_ON); err != nil {
		return err
	}
	if err := bg.SetBlink(BLINK_OFF); err != nil {
		return err
	}
	return bg.SetBrightness(i2cBRIGHTNESS_MAX)
}

// DisplayOn turns the LED output on or off; the RAM contents survive.
func (bg *Bargraph) DisplayOn(on bool) error {
	bg.log("display: %t", on)
	var val byte = i2cDISPLAY_ON
	if !on {
		val = i2cDISPLAY_OFF
	}
	return bg.bus.WriteCmd(val)
}

// SetBlink sets the whole-display blink rate (BLINK_OFF, BLINK_2HZ,
// BLINK_1HZ, BLINK_HALFHZ). The display is left on.
func (bg *Bargraph) SetBlink(rate uint8) error {
	if rate > BLINK_HALFHZ {
		return errors.Errorf("bad blink rate: %d", rate)
	}
	bg.log("blink rate: %d", rate)
	// blink rate is bits 2 and 1 of the display command
	return bg.bus.WriteCmd(i2cDISPLAY_ON | (rate << 1))
}

// SetBrightness sets the display duty cycle, 0 (dimmest) to 15.
func (bg *Bargraph) SetBrightness(level uint8) error {
	if level > i2cBRIGHTNESS_MAX {
		return errors.Errorf("bad brightness level: %d", level)
	}
	bg.log("brightness: %d", level)
	return bg.bus.WriteCmd(i2cBRIGHTNESS_CMD | level)
}

// SetSegment sets one bar in the mirror. Call Flush to make it visible.
func (bg *Bargraph) SetSegment(index int, color LedColor) error {
	if index < 0 || index >= bg.steps {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, steps %d", index, bg.steps)
	}
	bg.log("segment %d: %s", index, color)
	row, common := barPosition(index)
	mask := byte(1) << common
	setBit(&bg.ram[row], mask, color == COLOR_RED || color == COLOR_YELLOW)
	setBit(&bg.ram[row+1], mask, color == COLOR_GREEN || color == COLOR_YELLOW)
	return nil
}

// SetState replaces the whole mirror. len(state) must equal Steps.
func (bg *Bargraph) SetState(state []LedColor) error {
	if len(state) != bg.steps {
		return errors.Errorf("state has %d segments, want %d", len(state), bg.steps)
	}
	bg.ram = [ramSize]byte{}
	for i, color := range state {
		if err := bg.SetSegment(i, color); err != nil {
			return err
		}
	}
	return nil
}

// Clear blanks the mirror and flushes it to the device.
func (bg *Bargraph) Clear() error {
	bg.log("clear")
	bg.ram = [ramSize]byte{}
	return bg.Flush()
}

// Flush writes the full display RAM in one transaction. A failed flush
// leaves the device indeterminate relative to the mirror; the next
// successful flush resynchronizes it completely.
func (bg *Bargraph) Flush() error {
	bg.log("flush")
	return bg.bus.WriteBlock(0x00, bg.ram[:])
}

// CurrentState is a snapshot of the mirror.
func (bg *Bargraph) CurrentState() []LedColor {
	return decode(bg.ram[:], bg.steps)
}

// ReadState reads the display RAM back from the device and decodes it.
// Unlike CurrentState it reflects what the hardware is actually showing,
// which matters when initialization was skipped.
func (bg *Bargraph) ReadState() ([]LedColor, error) {
	var ram [ramSize]byte
	if err := bg.bus.ReadBlock(0x00, ram[:]); err != nil {
		return nil, err
	}
	return decode(ram[:], bg.steps), nil
}

// barPosition maps a bar index to its display RAM row and common line,
// following the backpack's wiring: bars 0-11 sit on rows 0/2/4, bars 12-23
// reuse the same rows on commons 4-7. The red LED lives at the even row,
// green at the row above it.
func barPosition(bar int) (row, common int) {
	count, rem := bar/12, bar%12
	row = (rem / 4) * 2
	common = rem%4 + count*4
	return row, common
}

func setBit(b *byte, mask byte, on bool) {
	if on {
		*b |= mask
	} else {
		*b &^= mask
	}
}

func decode(ram []byte, steps int) []LedColor {
	state := make([]LedColor, steps)
	for bar := 0; bar < steps; bar++ {
		row, common := barPosition(bar)
		mask := byte(1) << common
		red := ram[row]&mask != 0
		green := ram[row+1]&mask != 0
		switch {
		case red && green:
			state[bar] = COLOR_YELLOW
		case red:
			state[bar] = COLOR_RED
		case green:
			state[bar] = COLOR_GREEN
		}
	}
	return state
}
