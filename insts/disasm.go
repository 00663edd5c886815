// Package insts provides MIPS-I instruction definitions and decoding.
package insts

import "fmt"

// regNames holds the conventional MIPS ABI register mnemonics. The processor
// itself knows only numbered registers; the names exist for readable traces.
var regNames = [32]string{
	"r0", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// RegName returns the ABI mnemonic for a general-purpose register index.
func RegName(idx uint8) string {
	return regNames[idx&31]
}

var opNames = map[Op]string{
	OpSLL: "SLL", OpSRL: "SRL", OpSRA: "SRA",
	OpSLLV: "SLLV", OpSRLV: "SRLV", OpSRAV: "SRAV",
	OpJR: "JR", OpJALR: "JALR",
	OpSYSCALL: "SYSCALL", OpBREAK: "BREAK",
	OpMFHI: "MFHI", OpMTHI: "MTHI", OpMFLO: "MFLO", OpMTLO: "MTLO",
	OpMULT: "MULT", OpMULTU: "MULTU", OpDIV: "DIV", OpDIVU: "DIVU",
	OpADD: "ADD", OpADDU: "ADDU", OpSUB: "SUB", OpSUBU: "SUBU",
	OpAND: "AND", OpOR: "OR", OpXOR: "XOR", OpNOR: "NOR",
	OpSLT: "SLT", OpSLTU: "SLTU",
	OpBLTZ: "BLTZ", OpBGEZ: "BGEZ", OpBLTZAL: "BLTZAL", OpBGEZAL: "BGEZAL",
	OpJ: "J", OpJAL: "JAL",
	OpBEQ: "BEQ", OpBNE: "BNE", OpBLEZ: "BLEZ", OpBGTZ: "BGTZ",
	OpADDI: "ADDI", OpADDIU: "ADDIU", OpSLTI: "SLTI", OpSLTIU: "SLTIU",
	OpANDI: "ANDI", OpORI: "ORI", OpXORI: "XORI", OpLUI: "LUI",
	OpMFC0: "MFC0", OpMTC0: "MTC0", OpRFE: "RFE",
	OpMFC2: "MFC2", OpCFC2: "CFC2", OpMTC2: "MTC2", OpCTC2: "CTC2",
	OpCOP2: "COP2",
	OpLB:   "LB", OpLH: "LH", OpLWL: "LWL", OpLW: "LW",
	OpLBU: "LBU", OpLHU: "LHU", OpLWR: "LWR",
	OpSB: "SB", OpSH: "SH", OpSWL: "SWL", OpSW: "SW", OpSWR: "SWR",
	OpCACHE: "CACHE", OpLWC2: "LWC2", OpSWC2: "SWC2",
}

// String returns the assembler mnemonic for the operation.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// String renders the instruction in conventional MIPS assembly syntax.
// Branch and jump operands are shown as encoded displacements; resolving
// them against a program counter is the caller's concern.
func (i *Instruction) String() string {
	name := i.Op.String()

	switch i.Op {
	case OpUnknown:
		return fmt.Sprintf(".word 0x%08X", i.Raw)

	case OpSLL, OpSRL, OpSRA:
		// The canonical NOP is SLL r0, r0, 0.
		if i.Raw == 0 {
			return "NOP"
		}
		return fmt.Sprintf("%s %s, %s, %d", name, RegName(i.Rd), RegName(i.Rt), i.Shamt)

	case OpSLLV, OpSRLV, OpSRAV:
		return fmt.Sprintf("%s %s, %s, %s", name, RegName(i.Rd), RegName(i.Rt), RegName(i.Rs))

	case OpJR:
		return fmt.Sprintf("%s %s", name, RegName(i.Rs))

	case OpJALR:
		return fmt.Sprintf("%s %s, %s", name, RegName(i.Rd), RegName(i.Rs))

	case OpSYSCALL, OpBREAK, OpRFE:
		return name

	case OpMFHI, OpMFLO:
		return fmt.Sprintf("%s %s", name, RegName(i.Rd))

	case OpMTHI, OpMTLO:
		return fmt.Sprintf("%s %s", name, RegName(i.Rs))

	case OpMULT, OpMULTU, OpDIV, OpDIVU:
		return fmt.Sprintf("%s %s, %s", name, RegName(i.Rs), RegName(i.Rt))

	case OpADD, OpADDU, OpSUB, OpSUBU, OpAND, OpOR, OpXOR, OpNOR, OpSLT, OpSLTU:
		return fmt.Sprintf("%s %s, %s, %s", name, RegName(i.Rd), RegName(i.Rs), RegName(i.Rt))

	case OpBLTZ, OpBGEZ, OpBLTZAL, OpBGEZAL, OpBLEZ, OpBGTZ:
		return fmt.Sprintf("%s %s, %d", name, RegName(i.Rs), i.SImm<<2)

	case OpBEQ, OpBNE:
		return fmt.Sprintf("%s %s, %s, %d", name, RegName(i.Rs), RegName(i.Rt), i.SImm<<2)

	case OpJ, OpJAL:
		return fmt.Sprintf("%s 0x%08X", name, i.Target<<2)

	case OpADDI, OpADDIU, OpSLTI, OpSLTIU:
		return fmt.Sprintf("%s %s, %s, %d", name, RegName(i.Rt), RegName(i.Rs), i.SImm)

	case OpANDI, OpORI, OpXORI:
		return fmt.Sprintf("%s %s, %s, 0x%04X", name, RegName(i.Rt), RegName(i.Rs), i.Imm)

	case OpLUI:
		return fmt.Sprintf("%s %s, 0x%04X", name, RegName(i.Rt), i.Imm)

	case OpMFC0, OpMTC0:
		return fmt.Sprintf("%s %s, $%d", name, RegName(i.Rt), i.Rd)

	case OpMFC2, OpCFC2, OpMTC2, OpCTC2:
		return fmt.Sprintf("%s %s, $%d", name, RegName(i.Rt), i.Rd)

	case OpCOP2:
		return fmt.Sprintf("%s 0x%07X", name, i.Raw&0x01FFFFFF)

	case OpLB, OpLH, OpLWL, OpLW, OpLBU, OpLHU, OpLWR,
		OpSB, OpSH, OpSWL, OpSW, OpSWR:
		return fmt.Sprintf("%s %s, %d(%s)", name, RegName(i.Rt), i.SImm, RegName(i.Rs))

	case OpCACHE:
		return fmt.Sprintf("%s 0x%02X, %d(%s)", name, i.Rt, i.SImm, RegName(i.Rs))

	case OpLWC2, OpSWC2:
		return fmt.Sprintf("%s $%d, %d(%s)", name, i.Rt, i.SImm, RegName(i.Rs))
	}

	return fmt.Sprintf(".word 0x%08X", i.Raw)
}
