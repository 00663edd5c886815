// Package emu provides functional R3000A emulation.
package emu

// RegFile represents the R3000A register file.
// It contains 32 general-purpose registers, the HI/LO pair used by
// multiply and divide, and the program counter.
type RegFile struct {
	// GPR holds general-purpose registers r0-r31.
	// GPR[0] is hardwired to zero; writes to it are discarded.
	GPR [32]uint32

	// HI and LO hold multiply/divide results.
	HI uint32
	LO uint32

	// PC is the program counter (virtual address of the next fetch).
	PC uint32
}

// ReadReg reads a general-purpose register. Register 0 always reads 0.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	return r.GPR[reg&31]
}

// WriteReg writes a general-purpose register. Writes to register 0 are
// silently discarded.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg&31 == 0 {
		return
	}
	r.GPR[reg&31] = value
}

// Reset returns every register, the HI/LO pair, and the program counter
// to zero.
func (r *RegFile) Reset() {
	*r = RegFile{}
}
