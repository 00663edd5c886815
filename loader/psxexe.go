// Package loader provides guest executable loading for R3000A programs.
package loader

import (
	"encoding/binary"
	"fmt"
)

// psxMagic opens every PS-X EXE header.
const psxMagic = "PS-X EXE"

// psxHeaderSize is the fixed header block preceding the text image.
const psxHeaderSize = 0x800

// PS-X EXE header field offsets, all little-endian words.
const (
	psxOffPC0       = 0x10
	psxOffGP0       = 0x14
	psxOffTextAddr  = 0x18
	psxOffTextSize  = 0x1C
	psxOffBSSAddr   = 0x28
	psxOffBSSSize   = 0x2C
	psxOffStackAddr = 0x30
	psxOffStackSize = 0x34
)

// parsePSXEXE parses a PS-X EXE image: the 0x800-byte header followed
// by one contiguous text blob. A zero stack-base field means the image
// does not ask for a stack seed.
func parsePSXEXE(data []byte) (*Program, error) {
	if len(data) < psxHeaderSize {
		return nil, fmt.Errorf("truncated PS-X EXE header: %d-byte file", len(data))
	}
	if string(data[:len(psxMagic)]) != psxMagic {
		return nil, fmt.Errorf("missing PS-X EXE magic")
	}

	le := binary.LittleEndian
	textAddr := le.Uint32(data[psxOffTextAddr:])
	textSize := le.Uint32(data[psxOffTextSize:])
	bssAddr := le.Uint32(data[psxOffBSSAddr:])
	bssSize := le.Uint32(data[psxOffBSSSize:])
	stackAddr := le.Uint32(data[psxOffStackAddr:])
	stackSize := le.Uint32(data[psxOffStackSize:])

	text := data[psxHeaderSize:]
	if uint64(len(text)) < uint64(textSize) {
		return nil, fmt.Errorf("truncated PS-X EXE text: header claims %d bytes, file carries %d",
			textSize, len(text))
	}

	prog := &Program{EntryPC: le.Uint32(data[psxOffPC0:])}

	if gp0 := le.Uint32(data[psxOffGP0:]); gp0 != 0 {
		prog.GP = gp0
		prog.HasGP = true
	}
	if stackAddr != 0 {
		prog.SP = stackAddr + stackSize
		prog.HasSP = true
	}

	prog.Segments = append(prog.Segments, Segment{
		VirtAddr: textAddr,
		Data:     append([]byte(nil), text[:textSize]...),
		MemSize:  textSize,
	})
	if bssSize > 0 {
		prog.Segments = append(prog.Segments, Segment{
			VirtAddr: bssAddr,
			MemSize:  bssSize,
		})
	}

	return prog, nil
}
