// Package main provides the entry point for r3000emu.
// r3000emu interprets R3000A guest programs in PS-X EXE or ELF form.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/DrJVTek/R3000-Emu-sub001/emu"
	"github.com/DrJVTek/R3000-Emu-sub001/loader"
)

var (
	format  = flag.String("format", "auto", "Guest image format: auto, psxexe or elf")
	steps   = flag.Uint64("steps", 0, "Stop after this many instructions (0 = no limit)")
	trace   = flag.Bool("trace", false, "Write an instruction trace to standard error")
	verbose = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: r3000emu [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	imageFormat, err := parseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prog, err := loader.LoadFormat(programPath, imageFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%08X\n", prog.EntryPC)
		fmt.Printf("Segments: %d\n", len(prog.Segments))
	}

	os.Exit(runEmulation(prog, programPath))
}

func parseFormat(name string) (loader.Format, error) {
	switch name {
	case "auto":
		return loader.FormatAuto, nil
	case "psxexe":
		return loader.FormatPSXEXE, nil
	case "elf":
		return loader.FormatELF, nil
	}
	return loader.FormatAuto, fmt.Errorf("unknown format %q (want auto, psxexe or elf)", name)
}

// runEmulation places the program in RAM and interprets it to completion.
func runEmulation(prog *loader.Program, programPath string) int {
	ram := emu.NewRAM(emu.DefaultRAMSize)

	// Place all segments. RAM starts zeroed, so BSS tails need no
	// explicit fill.
	for _, seg := range prog.Segments {
		if len(seg.Data) == 0 {
			continue
		}
		if err := ram.LoadAt(emu.Translate(seg.VirtAddr), seg.Data); err != nil {
			fmt.Fprintf(os.Stderr, "Error placing segment at 0x%08X: %v\n", seg.VirtAddr, err)
			return 1
		}
	}

	opts := []emu.CPUOption{emu.WithBus(ram)}
	if *steps > 0 {
		opts = append(opts, emu.WithMaxInstructions(*steps))
	}
	if *trace {
		opts = append(opts, emu.WithTrace(os.Stderr))
	}

	cpu := emu.NewCPU(opts...)
	cpu.Reset(prog.EntryPC)
	if prog.HasGP {
		cpu.SetReg(28, prog.GP)
	}
	if prog.HasSP {
		cpu.SetReg(29, prog.SP)
	}

	res := cpu.Run()

	p := message.NewPrinter(language.English)
	switch res.Status {
	case emu.StepHalted:
		if *verbose {
			fmt.Printf("\nProgram: %s\n", programPath)
			p.Printf("Instructions executed: %d\n", cpu.InstructionCount())
		}
		return 0
	case emu.StepMemFault:
		fmt.Fprintf(os.Stderr, "Memory fault at PC 0x%08X: %v\n", res.PC, res.Err)
		p.Fprintf(os.Stderr, "Instructions executed: %d\n", cpu.InstructionCount())
		return 1
	}

	// Step budget reached.
	if *verbose {
		fmt.Printf("\nProgram: %s\n", programPath)
		p.Printf("Stopped after %d instructions at PC 0x%08X\n",
			cpu.InstructionCount(), cpu.PC())
	}
	return 0
}
