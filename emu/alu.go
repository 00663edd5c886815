// Package emu provides functional R3000A emulation.
package emu

// ALU implements the MIPS-I arithmetic and logic operations, including
// multiply/divide into the HI/LO pair.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ADD performs checked signed addition: rd = rs + rt. It reports
// whether the addition overflowed, in which case rd is not written.
func (a *ALU) ADD(rd, rs, rt uint8) bool {
	x := int32(a.regFile.ReadReg(rs))
	y := int32(a.regFile.ReadReg(rt))
	sum := x + y

	if (x^y) >= 0 && (x^sum) < 0 {
		return true
	}

	a.regFile.WriteReg(rd, uint32(sum))
	return false
}

// ADDU performs unchecked addition: rd = rs + rt.
func (a *ALU) ADDU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)+a.regFile.ReadReg(rt))
}

// ADDI performs checked signed addition with immediate: rt = rs + imm.
// It reports whether the addition overflowed, in which case rt is not
// written.
func (a *ALU) ADDI(rt, rs uint8, imm int32) bool {
	x := int32(a.regFile.ReadReg(rs))
	sum := x + imm

	if (x^imm) >= 0 && (x^sum) < 0 {
		return true
	}

	a.regFile.WriteReg(rt, uint32(sum))
	return false
}

// ADDIU performs unchecked addition with immediate: rt = rs + imm.
// Despite the name, the immediate is sign-extended.
func (a *ALU) ADDIU(rt, rs uint8, imm int32) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)+uint32(imm))
}

// SUB performs checked signed subtraction: rd = rs - rt. It reports
// whether the subtraction overflowed, in which case rd is not written.
func (a *ALU) SUB(rd, rs, rt uint8) bool {
	x := int32(a.regFile.ReadReg(rs))
	y := int32(a.regFile.ReadReg(rt))
	diff := x - y

	if (x^y) < 0 && (x^diff) < 0 {
		return true
	}

	a.regFile.WriteReg(rd, uint32(diff))
	return false
}

// SUBU performs unchecked subtraction: rd = rs - rt.
func (a *ALU) SUBU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)-a.regFile.ReadReg(rt))
}

// AND performs bitwise AND: rd = rs & rt.
func (a *ALU) AND(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)&a.regFile.ReadReg(rt))
}

// OR performs bitwise OR: rd = rs | rt.
func (a *ALU) OR(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)|a.regFile.ReadReg(rt))
}

// XOR performs bitwise exclusive OR: rd = rs ^ rt.
func (a *ALU) XOR(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)^a.regFile.ReadReg(rt))
}

// NOR performs bitwise NOT-OR: rd = ^(rs | rt).
func (a *ALU) NOR(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, ^(a.regFile.ReadReg(rs) | a.regFile.ReadReg(rt)))
}

// ANDI performs bitwise AND with a zero-extended immediate.
func (a *ALU) ANDI(rt, rs uint8, imm uint16) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)&uint32(imm))
}

// ORI performs bitwise OR with a zero-extended immediate.
func (a *ALU) ORI(rt, rs uint8, imm uint16) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)|uint32(imm))
}

// XORI performs bitwise exclusive OR with a zero-extended immediate.
func (a *ALU) XORI(rt, rs uint8, imm uint16) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)^uint32(imm))
}

// LUI loads the immediate into the upper halfword: rt = imm << 16.
func (a *ALU) LUI(rt uint8, imm uint16) {
	a.regFile.WriteReg(rt, uint32(imm)<<16)
}

// SLL performs a logical left shift by a constant amount.
func (a *ALU) SLL(rd, rt, shamt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rt)<<(shamt&31))
}

// SRL performs a logical right shift by a constant amount.
func (a *ALU) SRL(rd, rt, shamt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rt)>>(shamt&31))
}

// SRA performs an arithmetic right shift by a constant amount,
// preserving the sign bit.
func (a *ALU) SRA(rd, rt, shamt uint8) {
	a.regFile.WriteReg(rd, uint32(int32(a.regFile.ReadReg(rt))>>(shamt&31)))
}

// SLLV performs a logical left shift by the low 5 bits of rs.
func (a *ALU) SLLV(rd, rt, rs uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rt)<<(a.regFile.ReadReg(rs)&31))
}

// SRLV performs a logical right shift by the low 5 bits of rs.
func (a *ALU) SRLV(rd, rt, rs uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rt)>>(a.regFile.ReadReg(rs)&31))
}

// SRAV performs an arithmetic right shift by the low 5 bits of rs.
func (a *ALU) SRAV(rd, rt, rs uint8) {
	a.regFile.WriteReg(rd, uint32(int32(a.regFile.ReadReg(rt))>>(a.regFile.ReadReg(rs)&31)))
}

// SLT sets rd to 1 if rs < rt as signed values, else 0.
func (a *ALU) SLT(rd, rs, rt uint8) {
	if int32(a.regFile.ReadReg(rs)) < int32(a.regFile.ReadReg(rt)) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}

// SLTU sets rd to 1 if rs < rt as unsigned values, else 0.
func (a *ALU) SLTU(rd, rs, rt uint8) {
	if a.regFile.ReadReg(rs) < a.regFile.ReadReg(rt) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}

// SLTI sets rt to 1 if rs < imm as signed values, else 0.
func (a *ALU) SLTI(rt, rs uint8, imm int32) {
	if int32(a.regFile.ReadReg(rs)) < imm {
		a.regFile.WriteReg(rt, 1)
	} else {
		a.regFile.WriteReg(rt, 0)
	}
}

// SLTIU sets rt to 1 if rs < imm as unsigned values, else 0. The
// immediate is sign-extended first and then compared unsigned.
func (a *ALU) SLTIU(rt, rs uint8, imm int32) {
	if a.regFile.ReadReg(rs) < uint32(imm) {
		a.regFile.WriteReg(rt, 1)
	} else {
		a.regFile.WriteReg(rt, 0)
	}
}

// MULT performs signed 32x32 multiplication into the 64-bit HI/LO pair.
func (a *ALU) MULT(rs, rt uint8) {
	prod := int64(int32(a.regFile.ReadReg(rs))) * int64(int32(a.regFile.ReadReg(rt)))
	a.regFile.LO = uint32(uint64(prod))
	a.regFile.HI = uint32(uint64(prod) >> 32)
}

// MULTU performs unsigned 32x32 multiplication into the HI/LO pair.
func (a *ALU) MULTU(rs, rt uint8) {
	prod := uint64(a.regFile.ReadReg(rs)) * uint64(a.regFile.ReadReg(rt))
	a.regFile.LO = uint32(prod)
	a.regFile.HI = uint32(prod >> 32)
}

// DIV performs signed division: LO = rs / rt, HI = rs % rt. A zero
// divisor leaves HI and LO untouched rather than trapping.
func (a *ALU) DIV(rs, rt uint8) {
	divisor := int32(a.regFile.ReadReg(rt))
	if divisor == 0 {
		return
	}
	dividend := int32(a.regFile.ReadReg(rs))
	a.regFile.LO = uint32(dividend / divisor)
	a.regFile.HI = uint32(dividend % divisor)
}

// DIVU performs unsigned division: LO = rs / rt, HI = rs % rt. A zero
// divisor leaves HI and LO untouched rather than trapping.
func (a *ALU) DIVU(rs, rt uint8) {
	divisor := a.regFile.ReadReg(rt)
	if divisor == 0 {
		return
	}
	dividend := a.regFile.ReadReg(rs)
	a.regFile.LO = dividend / divisor
	a.regFile.HI = dividend % divisor
}

// MFHI moves HI into rd.
func (a *ALU) MFHI(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.HI)
}

// MFLO moves LO into rd.
func (a *ALU) MFLO(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.LO)
}

// MTHI moves rs into HI.
func (a *ALU) MTHI(rs uint8) {
	a.regFile.HI = a.regFile.ReadReg(rs)
}

// MTLO moves rs into LO.
func (a *ALU) MTLO(rs uint8) {
	a.regFile.LO = a.regFile.ReadReg(rs)
}
