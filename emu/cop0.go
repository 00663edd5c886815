// Package emu provides functional R3000A emulation.
package emu

// COP0 register indices. The move instructions can address all 32 slots;
// only these four carry meaning for the interpreter.
const (
	Cop0BadVAddr = 8  // faulting virtual address
	Cop0Status   = 12 // processor status
	Cop0Cause    = 13 // exception cause
	Cop0EPC      = 14 // exception return address
)

// Status register bits.
const (
	StatusIEc = 1 << 0  // current interrupt enable
	StatusIM2 = 1 << 10 // mask for the external interrupt line
	StatusIsc = 1 << 16 // isolate cache: data accesses bypass the bus
)

// Cause register bits.
const (
	CauseIP2 = 1 << 10 // external interrupt line
	CauseBD  = 1 << 31 // exception taken in a branch delay slot
)

// Cop0 models the system-control coprocessor subset the interpreter
// needs: a flat register file of 32 slots with named accessors for the
// meaningful ones. Move instructions may read and write any slot; the
// exception logic touches only Status, Cause, EPC, and BadVAddr.
type Cop0 struct {
	// Reg holds the raw coprocessor registers.
	Reg [32]uint32
}

// Read reads a coprocessor register by index.
func (c *Cop0) Read(idx uint8) uint32 {
	return c.Reg[idx&31]
}

// Write writes a coprocessor register by index.
func (c *Cop0) Write(idx uint8, value uint32) {
	c.Reg[idx&31] = value
}

// Status returns the processor status register.
func (c *Cop0) Status() uint32 {
	return c.Reg[Cop0Status]
}

// Cause returns the exception cause register.
func (c *Cop0) Cause() uint32 {
	return c.Reg[Cop0Cause]
}

// EPC returns the exception return address.
func (c *Cop0) EPC() uint32 {
	return c.Reg[Cop0EPC]
}

// BadVAddr returns the faulting virtual address of the last address
// error.
func (c *Cop0) BadVAddr() uint32 {
	return c.Reg[Cop0BadVAddr]
}

// CacheIsolated reports whether Status.Isc redirects data accesses away
// from the bus.
func (c *Cop0) CacheIsolated() bool {
	return c.Reg[Cop0Status]&StatusIsc != 0
}

// SetInterruptLine mirrors the external interrupt line into Cause.IP2.
// The line is level-sensitive: the bit tracks the line each step rather
// than latching.
func (c *Cop0) SetInterruptLine(asserted bool) {
	if asserted {
		c.Reg[Cop0Cause] |= CauseIP2
	} else {
		c.Reg[Cop0Cause] &^= CauseIP2
	}
}

// InterruptPending reports whether an interrupt should be taken: the
// current-enable bit is set and at least one pending cause bit is
// unmasked by the status interrupt mask.
func (c *Cop0) InterruptPending() bool {
	status := c.Reg[Cop0Status]
	if status&StatusIEc == 0 {
		return false
	}
	return c.Reg[Cop0Cause]&0xFF00&status != 0
}

// PushMode shifts the kernel/interrupt-enable stack one level deeper on
// exception entry: current and previous move up, current becomes
// kernel-mode with interrupts disabled.
func (c *Cop0) PushMode() {
	st := c.Reg[Cop0Status]
	pushed := ((st & 0x0F) << 2) & 0x3F
	c.Reg[Cop0Status] = st&^uint32(0x3F) | pushed
}

// PopMode undoes one level of the kernel/interrupt-enable stack. RFE
// executes this on exception return.
func (c *Cop0) PopMode() {
	st := c.Reg[Cop0Status]
	c.Reg[Cop0Status] = st&^uint32(0x3F) | (st>>2)&0x3F
}

// Reset zeroes every coprocessor register.
func (c *Cop0) Reset() {
	*c = Cop0{}
}
