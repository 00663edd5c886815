// Package loader provides guest executable loading for R3000A programs.
package loader

import (
	"bytes"
	"fmt"
	"os"
)

// Format selects how a guest image file is parsed.
type Format int

const (
	// FormatAuto sniffs the format from the image magic.
	FormatAuto Format = iota
	// FormatPSXEXE is the 2 KiB-header PS-X EXE format.
	FormatPSXEXE
	// FormatELF is a 32-bit little-endian MIPS ELF executable.
	FormatELF
)

// Segment is one loadable region of a guest image.
type Segment struct {
	// VirtAddr is the virtual address where the segment belongs.
	VirtAddr uint32
	// Data contains the image bytes for the segment.
	Data []byte
	// MemSize is the size in memory; anything beyond len(Data) is
	// zero-filled BSS.
	MemSize uint32
}

// Program is a parsed guest executable ready to be placed in memory.
type Program struct {
	// EntryPC is the virtual address where execution begins.
	EntryPC uint32

	// GP is the initial global-pointer seed, valid when HasGP is set.
	// Only the PS-X EXE header carries one.
	GP    uint32
	HasGP bool

	// SP is the initial stack-pointer seed, valid when HasSP is set.
	SP    uint32
	HasSP bool

	// Segments lists the regions to place, in file order.
	Segments []Segment
}

// Load reads a guest executable, sniffing the format from its magic
// bytes.
func Load(path string) (*Program, error) {
	return LoadFormat(path, FormatAuto)
}

// LoadFormat reads a guest executable in the given format.
func LoadFormat(path string, format Format) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guest image: %w", err)
	}

	switch format {
	case FormatPSXEXE:
		return parsePSXEXE(data)
	case FormatELF:
		return parseELF(data)
	case FormatAuto:
	default:
		return nil, fmt.Errorf("unknown image format %d", format)
	}

	switch {
	case bytes.HasPrefix(data, []byte(psxMagic)):
		return parsePSXEXE(data)
	case bytes.HasPrefix(data, []byte(elfMagic)):
		return parseELF(data)
	}
	return nil, fmt.Errorf("%s: unrecognized guest image format", path)
}
