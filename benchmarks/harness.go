// Package benchmarks provides small guest programs for exercising the
// interpreter under the standard Go benchmark tooling.
package benchmarks

import (
	"encoding/binary"

	"github.com/DrJVTek/R3000-Emu-sub001/emu"
)

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the CPU state (e.g., initialize registers)
	Setup func(c *emu.CPU)

	// Program is the R3000A machine code to execute
	Program []uint32

	// Check validates the final CPU state (may be nil)
	Check func(c *emu.CPU) error
}

// Install assembles the benchmark program at base, resets the CPU to
// start there, and applies the benchmark's register setup.
func Install(c *emu.CPU, b Benchmark, base uint32) error {
	bus := c.Bus()
	for i, by := range BuildProgram(b.Program...) {
		if err := bus.Write8(emu.Translate(base+uint32(i)), by); err != nil {
			return err
		}
	}
	c.Reset(base)
	if b.Setup != nil {
		b.Setup(c)
	}
	return nil
}

// Helper functions for building R3000A programs

// BuildProgram assembles instruction words into a byte slice.
func BuildProgram(instrs ...uint32) []byte {
	program := make([]byte, 0, len(instrs)*4)
	for _, inst := range instrs {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, inst)
		program = append(program, buf...)
	}
	return program
}

// Instruction encoding helpers

// EncodeNOP encodes SLL r0, r0, 0, the canonical no-op.
func EncodeNOP() uint32 {
	return 0
}

// EncodeADDIU encodes ADDIU rt, rs, #imm (no overflow trap).
func EncodeADDIU(rt, rs uint8, imm int16) uint32 {
	return 0x09<<26 | uint32(rs&0x1F)<<21 | uint32(rt&0x1F)<<16 | uint32(uint16(imm))
}

// EncodeADDU encodes ADDU rd, rs, rt.
func EncodeADDU(rd, rs, rt uint8) uint32 {
	return uint32(rs&0x1F)<<21 | uint32(rt&0x1F)<<16 | uint32(rd&0x1F)<<11 | 0x21
}

// EncodeLW encodes LW rt, offset(base).
func EncodeLW(rt, base uint8, offset int16) uint32 {
	return 0x23<<26 | uint32(base&0x1F)<<21 | uint32(rt&0x1F)<<16 | uint32(uint16(offset))
}

// EncodeSW encodes SW rt, offset(base).
func EncodeSW(rt, base uint8, offset int16) uint32 {
	return 0x2B<<26 | uint32(base&0x1F)<<21 | uint32(rt&0x1F)<<16 | uint32(uint16(offset))
}

// EncodeBNE encodes BNE rs, rt, offset with the offset counted in
// instructions from the delay slot.
func EncodeBNE(rs, rt uint8, offset int16) uint32 {
	return 0x05<<26 | uint32(rs&0x1F)<<21 | uint32(rt&0x1F)<<16 | uint32(uint16(offset))
}

// EncodeBGEZAL encodes BGEZAL rs, offset. With rs = r0 the branch is
// always taken and links r31, giving a position-independent call.
func EncodeBGEZAL(rs uint8, offset int16) uint32 {
	return 0x01<<26 | uint32(rs&0x1F)<<21 | 0x11<<16 | uint32(uint16(offset))
}

// EncodeJR encodes JR rs.
func EncodeJR(rs uint8) uint32 {
	return uint32(rs&0x1F)<<21 | 0x08
}

// EncodeBREAK encodes BREAK, which halts the interpreter.
func EncodeBREAK() uint32 {
	return 0x0D
}
