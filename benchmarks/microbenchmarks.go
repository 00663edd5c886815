package benchmarks

import (
	"fmt"

	"github.com/DrJVTek/R3000-Emu-sub001/emu"
)

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark targets a specific interpreter path and halts with
// BREAK, so completion is observable as a halt.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		memorySequential(),
		countdownLoop(100),
		functionCalls(),
	}
}

// checkReg reports a mismatch between a register and its expected
// final value.
func checkReg(c *emu.CPU, idx uint8, want uint32) error {
	if got := c.Reg(idx); got != want {
		return fmt.Errorf("r%d = 0x%08X, want 0x%08X", idx, got, want)
	}
	return nil
}

// 1. Arithmetic Sequential - independent ADDIUs across five registers
func arithmeticSequential() Benchmark {
	var program []uint32
	for round := 0; round < 4; round++ {
		for reg := uint8(8); reg <= 12; reg++ {
			program = append(program, EncodeADDIU(reg, reg, 1))
		}
	}
	program = append(program, EncodeBREAK())

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "20 independent ADDIU operations",
		Program:     program,
		Check: func(c *emu.CPU) error {
			for reg := uint8(8); reg <= 12; reg++ {
				if err := checkReg(c, reg, 4); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// 2. Dependency Chain - serial ADDIUs through one register
func dependencyChain() Benchmark {
	var program []uint32
	for i := 0; i < 20; i++ {
		program = append(program, EncodeADDIU(8, 8, 1))
	}
	program = append(program, EncodeBREAK())

	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 serially dependent ADDIU operations",
		Program:     program,
		Check: func(c *emu.CPU) error {
			return checkReg(c, 8, 20)
		},
	}
}

// 3. Memory Sequential - a store burst read back through load delays
func memorySequential() Benchmark {
	return Benchmark{
		Name:        "memory_sequential",
		Description: "word stores followed by loads from the same region",
		Setup: func(c *emu.CPU) {
			c.SetReg(8, 0x2000) // buffer base
		},
		Program: []uint32{
			EncodeADDIU(9, 0, 0x1111),
			EncodeSW(9, 8, 0),
			EncodeADDIU(9, 9, 0x1111),
			EncodeSW(9, 8, 4),
			EncodeADDIU(9, 9, 0x1111),
			EncodeSW(9, 8, 8),
			EncodeADDIU(9, 9, 0x1111),
			EncodeSW(9, 8, 12),
			EncodeLW(10, 8, 0),
			EncodeLW(11, 8, 4),
			EncodeLW(12, 8, 8),
			EncodeLW(13, 8, 12),
			EncodeNOP(),
			EncodeBREAK(),
		},
		Check: func(c *emu.CPU) error {
			if err := checkReg(c, 10, 0x1111); err != nil {
				return err
			}
			return checkReg(c, 13, 0x4444)
		},
	}
}

// 4. Countdown Loop - a taken branch with its delay slot per iteration
func countdownLoop(iterations uint32) Benchmark {
	return Benchmark{
		Name:        "countdown_loop",
		Description: "decrement-and-branch loop",
		Setup: func(c *emu.CPU) {
			c.SetReg(8, iterations)
		},
		Program: []uint32{
			EncodeADDIU(8, 8, -1),
			EncodeBNE(8, 0, -2),
			EncodeNOP(), // delay slot
			EncodeBREAK(),
		},
		Check: func(c *emu.CPU) error {
			return checkReg(c, 8, 0)
		},
	}
}

// 5. Function Calls - linked branches into a leaf that returns via JR
func functionCalls() Benchmark {
	return Benchmark{
		Name:        "function_calls",
		Description: "two calls to a leaf routine through r31",
		Program: []uint32{
			EncodeBGEZAL(0, 4), // call leaf
			EncodeNOP(),
			EncodeBGEZAL(0, 2), // call leaf again
			EncodeNOP(),
			EncodeBREAK(),
			EncodeADDIU(9, 9, 1), // leaf
			EncodeJR(31),
			EncodeNOP(),
		},
		Check: func(c *emu.CPU) error {
			return checkReg(c, 9, 2)
		},
	}
}
