// Package i2c is the bus transport for the bargraph backpack. It exposes a
// small Bus interface with two implementations: a real Linux device driven
// through periph.io, and an in-memory mock for tests and --i2c-mock runs.
package i2c

import (
	"github.com/pkg/errors"
	pi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// 7-bit addressing; 0x00-0x07 and 0x78-0x7f are reserved by the bus standard.
const (
	minAddress = 0x08
	maxAddress = 0x77
)

var (
	// ErrDeviceNotFound means the bus device could not be opened.
	ErrDeviceNotFound = errors.New("i2c device not found")
	// ErrAddressOutOfRange means the target address is not a valid
	// 7-bit i2c address.
	ErrAddressOutOfRange = errors.New("i2c address out of range")
)

// ValidAddress reports whether addr is a usable 7-bit device address.
func ValidAddress(addr int) bool {
	return addr >= minAddress && addr <= maxAddress
}

// Bus is a register-level connection to a single device on an i2c bus.
type Bus interface {
	// WriteCmd sends a single command byte (no register, no data).
	WriteCmd(cmd byte) error
	// WriteBlock writes data starting at the given register, as one
	// bus transaction.
	WriteBlock(reg byte, data []byte) error
	// ReadBlock fills buf with registers starting at reg.
	ReadBlock(reg byte, buf []byte) error
	Close() error
}

// WriteReg writes a single register.
func WriteReg(b Bus, reg, val byte) error {
	return b.WriteBlock(reg, []byte{val})
}

// ReadReg reads a single register.
func ReadReg(b Bus, reg byte) (byte, error) {
	var buf [1]byte
	if err := b.ReadBlock(reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Device is a Bus backed by a real i2c device node.
type Device struct {
	bus pi2c.BusCloser
	dev *pi2c.Dev
}

// Open connects to the device at addr on the bus named by path
// (e.g. /dev/i2c-1).
func Open(path string, addr uint16) (*Device, error) {
	if !ValidAddress(int(addr)) {
		return nil, errors.Wrapf(ErrAddressOutOfRange, "address 0x%02x", addr)
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize host drivers")
	}
	bus, err := i2creg.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrDeviceNotFound, "open %s: %v", path, err)
	}
	return &Device{
		bus: bus,
		dev: &pi2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

func (d *Device) WriteCmd(cmd byte) error {
	err := d.dev.Tx([]byte{cmd}, nil)
	return errors.Wrapf(err, "write command 0x%02x", cmd)
}

func (d *Device) WriteBlock(reg byte, data []byte) error {
	buf := make([]byte, 1+len(data))
	buf[0] = reg
	copy(buf[1:], data)
	err := d.dev.Tx(buf, nil)
	return errors.Wrapf(err, "write %d bytes at 0x%02x", len(data), reg)
}

func (d *Device) ReadBlock(reg byte, buf []byte) error {
	err := d.dev.Tx([]byte{reg}, buf)
	return errors.Wrapf(err, "read %d bytes at 0x%02x", len(buf), reg)
}

func (d *Device) Close() error {
	return d.bus.Close()
}
