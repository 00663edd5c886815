// Package insts provides MIPS-I instruction definitions and decoding.
//
// This package implements decoding of R3000A (MIPS-I) machine code into
// structured instruction representations. It covers the full user-mode
// instruction set of the processor:
//   - ALU register and immediate forms: ADD/ADDU/SUB/SUBU, logic ops,
//     shifts, set-on-less-than, LUI
//   - Multiply/divide and the HI/LO transfer instructions
//   - Loads and stores, including the unaligned LWL/LWR/SWL/SWR forms
//   - Branches and jumps, with and without linking
//   - SYSCALL/BREAK and the coprocessor transfer instructions
//     (COP0 moves, RFE, COP2/GTE moves and commands, LWC2/SWC2)
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x3C081234) // LUI t0, 0x1234
//	fmt.Printf("Op: %v, Rt: %d, Imm: 0x%04X\n", inst.Op, inst.Rt, inst.Imm)
package insts
