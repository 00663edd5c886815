// Package main provides the entry point for r3000emu.
// r3000emu is a MIPS R3000A CPU interpreter for PlayStation-class
// guest programs.
//
// For the full CLI, use: go run ./cmd/r3000emu
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("r3000emu - MIPS R3000A CPU Interpreter")
	fmt.Println("")
	fmt.Println("Usage: r3000emu [options] <program>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -format    Guest image format: auto, psxexe or elf")
	fmt.Println("  -steps     Stop after this many instructions")
	fmt.Println("  -trace     Write an instruction trace to standard error")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/r3000emu' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/r3000emu' instead.")
	}
}
