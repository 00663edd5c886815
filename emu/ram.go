// Package emu provides functional R3000A emulation.
package emu

import "encoding/binary"

// DefaultRAMSize is the 2 MiB of main RAM on the target platform.
const DefaultRAMSize = 2 << 20

// RAM is a flat little-endian memory block implementing Bus. Accesses
// beyond the populated size fault; there is no mirroring and no
// device window.
type RAM struct {
	data []byte
}

// NewRAM creates a zero-filled memory of the given size in bytes.
func NewRAM(size uint32) *RAM {
	return &RAM{data: make([]byte, size)}
}

// Size returns the populated size in bytes.
func (m *RAM) Size() uint32 {
	return uint32(len(m.data))
}

// Data exposes the backing store. Loaders use it to place program
// images directly.
func (m *RAM) Data() []byte {
	return m.data
}

// LoadAt copies a program image to the given physical address.
func (m *RAM) LoadAt(addr uint32, image []byte) error {
	if uint64(addr)+uint64(len(image)) > uint64(len(m.data)) {
		return &BusFault{Addr: addr, Size: 1, Write: true}
	}
	copy(m.data[addr:], image)
	return nil
}

func (m *RAM) Read8(addr uint32) (uint8, error) {
	if uint64(addr)+1 > uint64(len(m.data)) {
		return 0, &BusFault{Addr: addr, Size: 1}
	}
	return m.data[addr], nil
}

func (m *RAM) Read16(addr uint32) (uint16, error) {
	if uint64(addr)+2 > uint64(len(m.data)) {
		return 0, &BusFault{Addr: addr, Size: 2}
	}
	return binary.LittleEndian.Uint16(m.data[addr:]), nil
}

func (m *RAM) Read32(addr uint32) (uint32, error) {
	if uint64(addr)+4 > uint64(len(m.data)) {
		return 0, &BusFault{Addr: addr, Size: 4}
	}
	return binary.LittleEndian.Uint32(m.data[addr:]), nil
}

func (m *RAM) Write8(addr uint32, value uint8) error {
	if uint64(addr)+1 > uint64(len(m.data)) {
		return &BusFault{Addr: addr, Size: 1, Write: true}
	}
	m.data[addr] = value
	return nil
}

func (m *RAM) Write16(addr uint32, value uint16) error {
	if uint64(addr)+2 > uint64(len(m.data)) {
		return &BusFault{Addr: addr, Size: 2, Write: true}
	}
	binary.LittleEndian.PutUint16(m.data[addr:], value)
	return nil
}

func (m *RAM) Write32(addr uint32, value uint32) error {
	if uint64(addr)+4 > uint64(len(m.data)) {
		return &BusFault{Addr: addr, Size: 4, Write: true}
	}
	binary.LittleEndian.PutUint32(m.data[addr:], value)
	return nil
}
