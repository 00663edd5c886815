// Package emu provides functional R3000A emulation.
package emu

// Translate maps a virtual address to a physical one. The two fixed
// 512 MB kernel windows (cached at 0x80000000, uncached at 0xA0000000)
// strip their top three bits; everything else passes through unchanged.
// Translation never fails; the Bus decides whether the physical address
// is backed.
func Translate(vaddr uint32) uint32 {
	segment := vaddr & 0xE0000000
	if segment == 0x80000000 || segment == 0xA0000000 {
		return vaddr & 0x1FFFFFFF
	}
	return vaddr
}

// cachedSegment reports whether the address lies in a cacheable region:
// the user segment or the cached kernel window. The uncached kernel
// window always reaches the bus.
func cachedSegment(vaddr uint32) bool {
	if vaddr < 0x80000000 {
		return true
	}
	return vaddr&0xE0000000 == 0x80000000
}

// AccessFault reports a failed data access: a misaligned virtual
// address, or a bus access outside the populated range. Code selects
// the load or store flavor of the address-error exception; VAddr is
// what BadVAddr will record.
type AccessFault struct {
	Code  ExcCode
	VAddr uint32
}

// LoadStoreUnit performs data-side memory accesses: address
// computation, alignment checking, segment translation, and the
// isolated-cache redirect.
type LoadStoreUnit struct {
	regFile *RegFile
	cop0    *Cop0
	bus     Bus

	// cache backs loads and stores while Status.Isc isolates the data
	// path from the bus. Boot code clears the real cache through
	// exactly this mechanism; redirecting the accesses here keeps it
	// from wiping low RAM.
	cache [4096]byte
}

// NewLoadStoreUnit creates a load/store unit connected to the given
// register file, system coprocessor, and bus.
func NewLoadStoreUnit(regFile *RegFile, cop0 *Cop0, bus Bus) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile, cop0: cop0, bus: bus}
}

// Reset clears the isolated-cache backing store.
func (u *LoadStoreUnit) Reset() {
	u.cache = [4096]byte{}
}

func (u *LoadStoreUnit) isolated(vaddr uint32) bool {
	return u.cop0.CacheIsolated() && cachedSegment(vaddr)
}

// cacheIndex maps an address onto the 4 KiB isolated-cache store.
func cacheIndex(vaddr uint32) uint32 {
	return Translate(vaddr) & 0xFFF
}

func (u *LoadStoreUnit) cacheRead8(vaddr uint32) uint8 {
	return u.cache[cacheIndex(vaddr)]
}

func (u *LoadStoreUnit) cacheRead16(vaddr uint32) uint16 {
	idx := cacheIndex(vaddr)
	return uint16(u.cache[idx]) | uint16(u.cache[(idx+1)&0xFFF])<<8
}

func (u *LoadStoreUnit) cacheRead32(vaddr uint32) uint32 {
	idx := cacheIndex(vaddr)
	return uint32(u.cache[idx]) |
		uint32(u.cache[(idx+1)&0xFFF])<<8 |
		uint32(u.cache[(idx+2)&0xFFF])<<16 |
		uint32(u.cache[(idx+3)&0xFFF])<<24
}

func (u *LoadStoreUnit) cacheWrite8(vaddr uint32, value uint8) {
	u.cache[cacheIndex(vaddr)] = value
}

func (u *LoadStoreUnit) cacheWrite16(vaddr uint32, value uint16) {
	idx := cacheIndex(vaddr)
	u.cache[idx] = uint8(value)
	u.cache[(idx+1)&0xFFF] = uint8(value >> 8)
}

func (u *LoadStoreUnit) cacheWrite32(vaddr uint32, value uint32) {
	idx := cacheIndex(vaddr)
	u.cache[idx] = uint8(value)
	u.cache[(idx+1)&0xFFF] = uint8(value >> 8)
	u.cache[(idx+2)&0xFFF] = uint8(value >> 16)
	u.cache[(idx+3)&0xFFF] = uint8(value >> 24)
}

func (u *LoadStoreUnit) readByte(vaddr uint32) (uint8, *AccessFault) {
	if u.isolated(vaddr) {
		return u.cacheRead8(vaddr), nil
	}
	v, err := u.bus.Read8(Translate(vaddr))
	if err != nil {
		return 0, &AccessFault{Code: ExcAdEL, VAddr: vaddr}
	}
	return v, nil
}

func (u *LoadStoreUnit) readHalf(vaddr uint32) (uint16, *AccessFault) {
	if u.isolated(vaddr) {
		return u.cacheRead16(vaddr), nil
	}
	v, err := u.bus.Read16(Translate(vaddr))
	if err != nil {
		return 0, &AccessFault{Code: ExcAdEL, VAddr: vaddr}
	}
	return v, nil
}

func (u *LoadStoreUnit) readWord(vaddr uint32) (uint32, *AccessFault) {
	if u.isolated(vaddr) {
		return u.cacheRead32(vaddr), nil
	}
	v, err := u.bus.Read32(Translate(vaddr))
	if err != nil {
		return 0, &AccessFault{Code: ExcAdEL, VAddr: vaddr}
	}
	return v, nil
}

func (u *LoadStoreUnit) writeByte(vaddr uint32, value uint8) *AccessFault {
	if u.isolated(vaddr) {
		u.cacheWrite8(vaddr, value)
		return nil
	}
	if err := u.bus.Write8(Translate(vaddr), value); err != nil {
		return &AccessFault{Code: ExcAdES, VAddr: vaddr}
	}
	return nil
}

func (u *LoadStoreUnit) writeHalf(vaddr uint32, value uint16) *AccessFault {
	if u.isolated(vaddr) {
		u.cacheWrite16(vaddr, value)
		return nil
	}
	if err := u.bus.Write16(Translate(vaddr), value); err != nil {
		return &AccessFault{Code: ExcAdES, VAddr: vaddr}
	}
	return nil
}

func (u *LoadStoreUnit) writeWord(vaddr uint32, value uint32) *AccessFault {
	if u.isolated(vaddr) {
		u.cacheWrite32(vaddr, value)
		return nil
	}
	if err := u.bus.Write32(Translate(vaddr), value); err != nil {
		return &AccessFault{Code: ExcAdES, VAddr: vaddr}
	}
	return nil
}

// LoadByte reads a sign-extended byte.
func (u *LoadStoreUnit) LoadByte(vaddr uint32) (uint32, *AccessFault) {
	v, fault := u.readByte(vaddr)
	if fault != nil {
		return 0, fault
	}
	return uint32(int32(int8(v))), nil
}

// LoadByteUnsigned reads a zero-extended byte.
func (u *LoadStoreUnit) LoadByteUnsigned(vaddr uint32) (uint32, *AccessFault) {
	v, fault := u.readByte(vaddr)
	if fault != nil {
		return 0, fault
	}
	return uint32(v), nil
}

// LoadHalf reads a sign-extended halfword. The address must be 2-byte
// aligned.
func (u *LoadStoreUnit) LoadHalf(vaddr uint32) (uint32, *AccessFault) {
	if vaddr&1 != 0 {
		return 0, &AccessFault{Code: ExcAdEL, VAddr: vaddr}
	}
	v, fault := u.readHalf(vaddr)
	if fault != nil {
		return 0, fault
	}
	return uint32(int32(int16(v))), nil
}

// LoadHalfUnsigned reads a zero-extended halfword. The address must be
// 2-byte aligned.
func (u *LoadStoreUnit) LoadHalfUnsigned(vaddr uint32) (uint32, *AccessFault) {
	if vaddr&1 != 0 {
		return 0, &AccessFault{Code: ExcAdEL, VAddr: vaddr}
	}
	v, fault := u.readHalf(vaddr)
	if fault != nil {
		return 0, fault
	}
	return uint32(v), nil
}

// LoadWord reads a word. The address must be 4-byte aligned.
func (u *LoadStoreUnit) LoadWord(vaddr uint32) (uint32, *AccessFault) {
	if vaddr&3 != 0 {
		return 0, &AccessFault{Code: ExcAdEL, VAddr: vaddr}
	}
	return u.readWord(vaddr)
}

// StoreByte writes the low byte of value.
func (u *LoadStoreUnit) StoreByte(vaddr uint32, value uint32) *AccessFault {
	return u.writeByte(vaddr, uint8(value))
}

// StoreHalf writes the low halfword of value. The address must be
// 2-byte aligned.
func (u *LoadStoreUnit) StoreHalf(vaddr uint32, value uint32) *AccessFault {
	if vaddr&1 != 0 {
		return &AccessFault{Code: ExcAdES, VAddr: vaddr}
	}
	return u.writeHalf(vaddr, uint16(value))
}

// StoreWord writes a word. The address must be 4-byte aligned.
func (u *LoadStoreUnit) StoreWord(vaddr uint32, value uint32) *AccessFault {
	if vaddr&3 != 0 {
		return &AccessFault{Code: ExcAdES, VAddr: vaddr}
	}
	return u.writeWord(vaddr, value)
}

// LoadWordLeft merges the bytes from the containing word down to the
// addressed byte into the upper end of cur (little-endian LWL).
func (u *LoadStoreUnit) LoadWordLeft(vaddr uint32, cur uint32) (uint32, *AccessFault) {
	w, fault := u.readWord(vaddr &^ 3)
	if fault != nil {
		return 0, fault
	}
	switch vaddr & 3 {
	case 0:
		return cur&0x00FFFFFF | w<<24, nil
	case 1:
		return cur&0x0000FFFF | w<<16, nil
	case 2:
		return cur&0x000000FF | w<<8, nil
	default:
		return w, nil
	}
}

// LoadWordRight merges the bytes from the addressed byte up to the end
// of the containing word into the lower end of cur (little-endian LWR).
func (u *LoadStoreUnit) LoadWordRight(vaddr uint32, cur uint32) (uint32, *AccessFault) {
	w, fault := u.readWord(vaddr &^ 3)
	if fault != nil {
		return 0, fault
	}
	switch vaddr & 3 {
	case 0:
		return w, nil
	case 1:
		return cur&0xFF000000 | w>>8, nil
	case 2:
		return cur&0xFFFF0000 | w>>16, nil
	default:
		return cur&0xFFFFFF00 | w>>24, nil
	}
}

// StoreWordLeft writes the upper bytes of value into the lower end of
// the containing memory word (little-endian SWL). The merge reads the
// word back first, so a fault on that read reports as a load error.
func (u *LoadStoreUnit) StoreWordLeft(vaddr uint32, value uint32) *AccessFault {
	base := vaddr &^ 3
	w, fault := u.readWord(base)
	if fault != nil {
		return fault
	}
	switch vaddr & 3 {
	case 0:
		w = w&0xFFFFFF00 | value>>24
	case 1:
		w = w&0xFFFF0000 | value>>16
	case 2:
		w = w&0xFF000000 | value>>8
	default:
		w = value
	}
	return u.writeWord(base, w)
}

// StoreWordRight writes the lower bytes of value into the upper end of
// the containing memory word (little-endian SWR). The merge reads the
// word back first, so a fault on that read reports as a load error.
func (u *LoadStoreUnit) StoreWordRight(vaddr uint32, value uint32) *AccessFault {
	base := vaddr &^ 3
	w, fault := u.readWord(base)
	if fault != nil {
		return fault
	}
	switch vaddr & 3 {
	case 0:
		w = value
	case 1:
		w = w&0x000000FF | value<<8
	case 2:
		w = w&0x0000FFFF | value<<16
	default:
		w = w&0x00FFFFFF | value<<24
	}
	return u.writeWord(base, w)
}
