// Package loader provides guest executable loading for R3000A programs.
package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"
)

// elfMagic opens every ELF image.
const elfMagic = "\x7fELF"

// parseELF parses a 32-bit little-endian MIPS ELF executable. Segment
// placement prefers the physical address field when it is populated;
// toolchains targeting this platform put the RAM destination there
// while the virtual address may point into a cached window.
func parseELF(data []byte) (*Program, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing ELF image: %w", err)
	}

	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit ELF file (class %v)", f.Class)
	}
	if f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("not a little-endian ELF file (encoding %v)", f.Data)
	}
	if f.Machine != elf.EM_MIPS {
		return nil, fmt.Errorf("not a MIPS ELF file (machine type: %v)", f.Machine)
	}

	prog := &Program{EntryPC: uint32(f.Entry)}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		segData := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(segData, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("reading segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		addr := phdr.Paddr
		if addr == 0 {
			addr = phdr.Vaddr
		}

		prog.Segments = append(prog.Segments, Segment{
			VirtAddr: uint32(addr),
			Data:     segData,
			MemSize:  uint32(phdr.Memsz),
		})
	}

	return prog, nil
}
