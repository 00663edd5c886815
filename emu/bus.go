// Package emu provides functional R3000A emulation.
package emu

import "fmt"

// Bus is the memory system as seen by the processor core. All addresses
// are physical; the core translates virtual addresses before calling.
// Multi-byte accesses are little-endian.
//
// A nil error means the access completed. Failed accesses return a
// *BusFault; the core converts data-side faults into address-error
// exceptions and treats a fetch-side fault as fatal to the session.
type Bus interface {
	Read8(addr uint32) (uint8, error)
	Read16(addr uint32) (uint16, error)
	Read32(addr uint32) (uint32, error)
	Write8(addr uint32, value uint8) error
	Write16(addr uint32, value uint16) error
	Write32(addr uint32, value uint32) error
}

// BusFault describes a failed bus access.
type BusFault struct {
	// Addr is the physical address of the access.
	Addr uint32
	// Size is the access width in bytes.
	Size uint8
	// Write is true for a store, false for a load or fetch.
	Write bool
}

func (f *BusFault) Error() string {
	dir := "read"
	if f.Write {
		dir = "write"
	}
	return fmt.Sprintf("bus fault: %d-byte %s at 0x%08X", f.Size, dir, f.Addr)
}
