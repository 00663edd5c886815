// Package emu provides functional R3000A emulation.
package emu

// GTE is the geometry coprocessor as seen from the core (COP2). Data
// and control register reads feed the load-delay path like CPU loads;
// writes land immediately. LWC2/SWC2 are the dedicated word transfers
// between memory and the data register file.
type GTE interface {
	ReadData(reg uint8) uint32
	WriteData(reg uint8, value uint32)
	ReadCtrl(reg uint8) uint32
	WriteCtrl(reg uint8, value uint32)

	// Execute runs a coprocessor command word and reports whether it
	// was accepted. The core raises reserved-instruction for a
	// rejected command.
	Execute(command uint32) bool

	// LWC2 delivers a word loaded from memory into a data register.
	LWC2(reg uint8, value uint32)

	// SWC2 reads a data register word for storing to memory.
	SWC2(reg uint8) uint32

	// Reset restores power-on state. The core calls this from its own
	// reset.
	Reset()
}

// NopGTE is a stand-in coprocessor holding no state. Reads return zero,
// writes are dropped, and every command is accepted as a no-op, so
// programs that touch COP2 run without trapping.
type NopGTE struct{}

func (NopGTE) ReadData(reg uint8) uint32 { return 0 }

func (NopGTE) WriteData(reg uint8, value uint32) {}

func (NopGTE) ReadCtrl(reg uint8) uint32 { return 0 }

func (NopGTE) WriteCtrl(reg uint8, value uint32) {}

func (NopGTE) Execute(command uint32) bool { return true }

func (NopGTE) LWC2(reg uint8, value uint32) {}

func (NopGTE) SWC2(reg uint8) uint32 { return 0 }

func (NopGTE) Reset() {}
