package i2c

import (
	"sync"

	"github.com/pkg/errors"
)

// TxKind tags an audited mock transaction.
type TxKind int

const (
	TxCmd TxKind = iota
	TxWrite
	TxRead
)

// Transaction is one bus operation recorded by the mock.
type Transaction struct {
	Kind TxKind
	Reg  byte
	Data []byte // written or read bytes, command byte for TxCmd
}

// Mock is an in-memory Bus. Writes land in a 256-byte register file and
// every operation is recorded, so tests can audit exactly what would have
// gone over the wire.
type Mock struct {
	mu    sync.Mutex
	addr  uint16
	regs  [256]byte
	cmds  []byte
	audit []Transaction
	err   error
	logf  func(format string, args ...interface{})
}

// NewMock returns a mock device at addr. logf may be nil.
func NewMock(addr uint16, logf func(format string, args ...interface{})) *Mock {
	return &Mock{addr: addr, logf: logf}
}

// FailWith makes every following operation return err (nil to heal).
func (m *Mock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) log(format string, args ...interface{}) {
	if m.logf != nil {
		m.logf(format, args...)
	}
}

func (m *Mock) WriteCmd(cmd byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.log("mock 0x%02x: cmd 0x%02x", m.addr, cmd)
	m.cmds = append(m.cmds, cmd)
	m.audit = append(m.audit, Transaction{Kind: TxCmd, Data: []byte{cmd}})
	return nil
}

func (m *Mock) WriteBlock(reg byte, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if int(reg)+len(data) > len(m.regs) {
		return errors.Errorf("mock write past register file: 0x%02x + %d", reg, len(data))
	}
	m.log("mock 0x%02x: write 0x%02x %v", m.addr, reg, data)
	copy(m.regs[reg:], data)
	m.audit = append(m.audit, Transaction{Kind: TxWrite, Reg: reg, Data: append([]byte(nil), data...)})
	return nil
}

func (m *Mock) ReadBlock(reg byte, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if int(reg)+len(buf) > len(m.regs) {
		return errors.Errorf("mock read past register file: 0x%02x + %d", reg, len(buf))
	}
	copy(buf, m.regs[reg:])
	m.log("mock 0x%02x: read 0x%02x %v", m.addr, reg, buf)
	m.audit = append(m.audit, Transaction{Kind: TxRead, Reg: reg, Data: append([]byte(nil), buf...)})
	return nil
}

func (m *Mock) Close() error {
	m.log("mock 0x%02x: close", m.addr)
	return nil
}

// Commands returns every command byte written so far.
func (m *Mock) Commands() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.cmds...)
}

// Audit returns the recorded transactions.
func (m *Mock) Audit() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Transaction(nil), m.audit...)
}

// Writes returns only the register-write transactions.
func (m *Mock) Writes() []Transaction {
	var w []Transaction
	for _, tx := range m.Audit() {
		if tx.Kind == TxWrite {
			w = append(w, tx)
		}
	}
	return w
}

// Registers returns a copy of count registers starting at reg.
func (m *Mock) Registers(reg byte, count int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.regs[reg:int(reg)+count]...)
}
