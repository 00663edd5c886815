// Package insts provides MIPS-I instruction definitions and decoding.
package insts

// Op represents a MIPS-I operation.
type Op uint16

// MIPS-I operations.
const (
	OpUnknown Op = iota

	// SPECIAL (opcode 0x00) operations, selected by function code.
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV
	OpJR
	OpJALR
	OpSYSCALL
	OpBREAK
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU

	// REGIMM (opcode 0x01) operations, selected by the rt field.
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	// Jumps and conditional branches.
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ

	// Immediate ALU operations.
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI

	// Coprocessor 0 transfers, selected by the rs field.
	OpMFC0
	OpMTC0
	OpRFE

	// Coprocessor 2 (GTE) transfers and command dispatch.
	OpMFC2
	OpCFC2
	OpMTC2
	OpCTC2
	OpCOP2

	// Loads. All route through the load-delay mechanism.
	OpLB
	OpLH
	OpLWL
	OpLW
	OpLBU
	OpLHU
	OpLWR

	// Stores.
	OpSB
	OpSH
	OpSWL
	OpSW
	OpSWR

	// Cache maintenance and coprocessor 2 memory transfers.
	OpCACHE
	OpLWC2
	OpSWC2
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // Register (SPECIAL): rs, rt, rd, shamt, funct
	FormatI              // Immediate: rs, rt, 16-bit immediate
	FormatJ              // Jump: 26-bit target index
	FormatCop            // Coprocessor transfer/command
)

// Instruction represents a decoded MIPS-I instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format

	// Register fields
	Rs uint8 // Source register (bits 25-21)
	Rt uint8 // Target register (bits 20-16)
	Rd uint8 // Destination register (bits 15-11)

	// Shift amount for the fixed shift forms (bits 10-6)
	Shamt uint8

	// Immediate operand (bits 15-0)
	Imm  uint16 // Raw immediate (zero-extended use)
	SImm int32  // Sign-extended immediate

	// Jump target index (bits 25-0) for J/JAL
	Target uint32

	// Raw is the undecoded instruction word. COP2 command dispatch and
	// disassembly of unknown words need the full 32 bits.
	Raw uint32
}

// Decoder decodes MIPS-I machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new MIPS-I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit MIPS-I instruction word.
func (d *Decoder) Decode(word uint32) *Instruction {
	// All MIPS-I formats share the same field positions, so extraction is
	// unconditional; classification below only assigns Op and Format.
	inst := &Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		Rs:     uint8((word >> 21) & 0x1F), // bits [25:21]
		Rt:     uint8((word >> 16) & 0x1F), // bits [20:16]
		Rd:     uint8((word >> 11) & 0x1F), // bits [15:11]
		Shamt:  uint8((word >> 6) & 0x1F),  // bits [10:6]
		Imm:    uint16(word & 0xFFFF),      // bits [15:0]
		SImm:   int32(int16(word & 0xFFFF)),
		Target: word & 0x03FFFFFF, // bits [25:0]
		Raw:    word,
	}

	opcode := word >> 26 // bits [31:26]

	switch opcode {
	case 0x00:
		d.decodeSpecial(word, inst)
	case 0x01:
		d.decodeRegimm(word, inst)
	case 0x10:
		d.decodeCop0(word, inst)
	case 0x12:
		d.decodeCop2(word, inst)
	default:
		d.decodePrimary(opcode, inst)
	}

	return inst
}

// decodeSpecial classifies an opcode-0x00 word by its function code.
func (d *Decoder) decodeSpecial(word uint32, inst *Instruction) {
	inst.Format = FormatR

	funct := word & 0x3F // bits [5:0]
	switch funct {
	case 0x00:
		inst.Op = OpSLL
	case 0x02:
		inst.Op = OpSRL
	case 0x03:
		inst.Op = OpSRA
	case 0x04:
		inst.Op = OpSLLV
	case 0x06:
		inst.Op = OpSRLV
	case 0x07:
		inst.Op = OpSRAV
	case 0x08:
		inst.Op = OpJR
	case 0x09:
		inst.Op = OpJALR
	case 0x0C:
		inst.Op = OpSYSCALL
	case 0x0D:
		inst.Op = OpBREAK
	case 0x10:
		inst.Op = OpMFHI
	case 0x11:
		inst.Op = OpMTHI
	case 0x12:
		inst.Op = OpMFLO
	case 0x13:
		inst.Op = OpMTLO
	case 0x18:
		inst.Op = OpMULT
	case 0x19:
		inst.Op = OpMULTU
	case 0x1A:
		inst.Op = OpDIV
	case 0x1B:
		inst.Op = OpDIVU
	case 0x20:
		inst.Op = OpADD
	case 0x21:
		inst.Op = OpADDU
	case 0x22:
		inst.Op = OpSUB
	case 0x23:
		inst.Op = OpSUBU
	case 0x24:
		inst.Op = OpAND
	case 0x25:
		inst.Op = OpOR
	case 0x26:
		inst.Op = OpXOR
	case 0x27:
		inst.Op = OpNOR
	case 0x2A:
		inst.Op = OpSLT
	case 0x2B:
		inst.Op = OpSLTU
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

// decodeRegimm classifies an opcode-0x01 word by its rt field.
func (d *Decoder) decodeRegimm(word uint32, inst *Instruction) {
	inst.Format = FormatI

	switch inst.Rt {
	case 0x00:
		inst.Op = OpBLTZ
	case 0x01:
		inst.Op = OpBGEZ
	case 0x10:
		inst.Op = OpBLTZAL
	case 0x11:
		inst.Op = OpBGEZAL
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

// decodeCop0 classifies an opcode-0x10 word by its rs field.
func (d *Decoder) decodeCop0(word uint32, inst *Instruction) {
	inst.Format = FormatCop

	switch inst.Rs {
	case 0x00:
		inst.Op = OpMFC0
	case 0x04:
		inst.Op = OpMTC0
	case 0x10:
		// The privileged sub-opcode space; only RFE (function 0x10) exists
		// on this processor.
		if word&0x3F == 0x10 {
			inst.Op = OpRFE
		} else {
			inst.Op = OpUnknown
			inst.Format = FormatUnknown
		}
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

// decodeCop2 classifies an opcode-0x12 word by its rs field.
func (d *Decoder) decodeCop2(word uint32, inst *Instruction) {
	inst.Format = FormatCop

	// Bit 25 set means a GTE command; the low 25 bits are the command word,
	// passed through Raw.
	if inst.Rs&0x10 != 0 {
		inst.Op = OpCOP2
		return
	}

	switch inst.Rs {
	case 0x00:
		inst.Op = OpMFC2
	case 0x02:
		inst.Op = OpCFC2
	case 0x04:
		inst.Op = OpMTC2
	case 0x06:
		inst.Op = OpCTC2
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

// decodePrimary classifies every word whose primary opcode selects the
// operation directly.
func (d *Decoder) decodePrimary(opcode uint32, inst *Instruction) {
	switch opcode {
	case 0x02:
		inst.Op = OpJ
		inst.Format = FormatJ
	case 0x03:
		inst.Op = OpJAL
		inst.Format = FormatJ
	case 0x04:
		inst.Op = OpBEQ
		inst.Format = FormatI
	case 0x05:
		inst.Op = OpBNE
		inst.Format = FormatI
	case 0x06:
		inst.Op = OpBLEZ
		inst.Format = FormatI
	case 0x07:
		inst.Op = OpBGTZ
		inst.Format = FormatI
	case 0x08:
		inst.Op = OpADDI
		inst.Format = FormatI
	case 0x09:
		inst.Op = OpADDIU
		inst.Format = FormatI
	case 0x0A:
		inst.Op = OpSLTI
		inst.Format = FormatI
	case 0x0B:
		inst.Op = OpSLTIU
		inst.Format = FormatI
	case 0x0C:
		inst.Op = OpANDI
		inst.Format = FormatI
	case 0x0D:
		inst.Op = OpORI
		inst.Format = FormatI
	case 0x0E:
		inst.Op = OpXORI
		inst.Format = FormatI
	case 0x0F:
		inst.Op = OpLUI
		inst.Format = FormatI
	case 0x20:
		inst.Op = OpLB
		inst.Format = FormatI
	case 0x21:
		inst.Op = OpLH
		inst.Format = FormatI
	case 0x22:
		inst.Op = OpLWL
		inst.Format = FormatI
	case 0x23:
		inst.Op = OpLW
		inst.Format = FormatI
	case 0x24:
		inst.Op = OpLBU
		inst.Format = FormatI
	case 0x25:
		inst.Op = OpLHU
		inst.Format = FormatI
	case 0x26:
		inst.Op = OpLWR
		inst.Format = FormatI
	case 0x28:
		inst.Op = OpSB
		inst.Format = FormatI
	case 0x29:
		inst.Op = OpSH
		inst.Format = FormatI
	case 0x2A:
		inst.Op = OpSWL
		inst.Format = FormatI
	case 0x2B:
		inst.Op = OpSW
		inst.Format = FormatI
	case 0x2E:
		inst.Op = OpSWR
		inst.Format = FormatI
	case 0x2F:
		inst.Op = OpCACHE
		inst.Format = FormatI
	case 0x32:
		inst.Op = OpLWC2
		inst.Format = FormatI
	case 0x3A:
		inst.Op = OpSWC2
		inst.Format = FormatI
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}
