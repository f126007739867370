package i2c

import (
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func TestMockRegisterFile(t *testing.T) {
	m := NewMock(0x70, nil)

	err := m.WriteBlock(0x10, []byte{0xaa, 0xbb, 0xcc})
	assert.NilError(t, err)

	buf := make([]byte, 3)
	err = m.ReadBlock(0x10, buf)
	assert.NilError(t, err)
	assert.DeepEqual(t, buf, []byte{0xaa, 0xbb, 0xcc})

	// unwritten registers read back zero
	one, err := ReadReg(m, 0x20)
	assert.NilError(t, err)
	assert.Equal(t, one, byte(0))
}

func TestMockSingleRegisterHelpers(t *testing.T) {
	m := NewMock(0x70, nil)

	assert.NilError(t, WriteReg(m, 0x05, 0x42))
	val, err := ReadReg(m, 0x05)
	assert.NilError(t, err)
	assert.Equal(t, val, byte(0x42))
}

func TestMockCommandsAreNotRegisterWrites(t *testing.T) {
	m := NewMock(0x70, nil)

	assert.NilError(t, m.WriteCmd(0x21))
	assert.NilError(t, m.WriteCmd(0x81))

	assert.DeepEqual(t, m.Commands(), []byte{0x21, 0x81})
	// the register file stays untouched
	assert.DeepEqual(t, m.Registers(0x21, 1), []byte{0})
	assert.Equal(t, len(m.Writes()), 0)
}

func TestMockAuditOrder(t *testing.T) {
	m := NewMock(0x70, nil)

	assert.NilError(t, m.WriteCmd(0x21))
	assert.NilError(t, m.WriteBlock(0x00, []byte{1, 2}))
	assert.NilError(t, m.ReadBlock(0x00, make([]byte, 2)))

	audit := m.Audit()
	assert.Equal(t, len(audit), 3)
	assert.Equal(t, audit[0].Kind, TxCmd)
	assert.Equal(t, audit[1].Kind, TxWrite)
	assert.Equal(t, audit[2].Kind, TxRead)
}

func TestMockBoundsChecked(t *testing.T) {
	m := NewMock(0x70, nil)

	err := m.WriteBlock(0xff, []byte{1, 2})
	assert.ErrorContains(t, err, "past register file")

	err = m.ReadBlock(0xff, make([]byte, 2))
	assert.ErrorContains(t, err, "past register file")
}

func TestMockFailWith(t *testing.T) {
	m := NewMock(0x70, nil)
	boom := errors.New("bus gone")

	m.FailWith(boom)
	assert.Assert(t, m.WriteCmd(0x21) == boom)
	assert.Assert(t, m.WriteBlock(0, []byte{1}) == boom)

	m.FailWith(nil)
	assert.NilError(t, m.WriteCmd(0x21))
}

func TestOpenRejectsBadAddress(t *testing.T) {
	_, err := Open("/dev/i2c-1", 0x04)
	assert.Assert(t, errors.Cause(err) == ErrAddressOutOfRange)

	_, err = Open("/dev/i2c-1", 0x90)
	assert.Assert(t, errors.Cause(err) == ErrAddressOutOfRange)
}

func TestValidAddress(t *testing.T) {
	assert.Assert(t, ValidAddress(0x08))
	assert.Assert(t, ValidAddress(0x70))
	assert.Assert(t, ValidAddress(0x77))
	assert.Assert(t, !ValidAddress(0x07))
	assert.Assert(t, !ValidAddress(0x78))
	assert.Assert(t, !ValidAddress(300))
	assert.Assert(t, !ValidAddress(-1))
}
