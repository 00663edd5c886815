// Package emu provides functional R3000A emulation.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/DrJVTek/R3000-Emu-sub001/insts"
)

// StepStatus classifies the host-level outcome of one interpreter step.
type StepStatus int

const (
	// StepOK means the instruction completed. An architectural
	// exception it raised was handled internally by vectoring; the
	// session simply continues at the handler.
	StepOK StepStatus = iota

	// StepHalted means a BREAK instruction stopped the session.
	StepHalted

	// StepMemFault means instruction fetch failed at the bus level.
	// The session cannot continue meaningfully.
	StepMemFault

	// StepIllegal is reserved for callers that want undecodable words
	// surfaced instead of trapped. The core itself never produces it:
	// reserved encodings raise the reserved-instruction exception and
	// report StepOK.
	StepIllegal
)

// String names the status for diagnostics.
func (s StepStatus) String() string {
	switch s {
	case StepOK:
		return "ok"
	case StepHalted:
		return "halted"
	case StepMemFault:
		return "memory fault"
	case StepIllegal:
		return "illegal instruction"
	}
	return fmt.Sprintf("StepStatus(%d)", int(s))
}

// StepResult reports one executed step.
type StepResult struct {
	Status StepStatus

	// PC is the address of the instruction this step executed, or
	// attempted to fetch.
	PC uint32

	// Word is the raw instruction word. It is zero when the fetch
	// failed or the step was consumed by an interrupt.
	Word uint32

	// Err carries the bus fault detail for StepMemFault.
	Err error
}

// CPU interprets R3000A machine code one instruction at a time.
type CPU struct {
	regFile *RegFile
	cop0    *Cop0
	decoder *insts.Decoder
	bus     Bus
	gte     GTE

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit
	sched      *BranchScheduler

	syscallHandler SyscallHandler
	irq            IRQLine

	// Load-delay buffer: pending commits at the end of the current
	// step, staged is armed by the current instruction and promoted
	// into pending for the next.
	pending pendingLoad
	staged  pendingLoad

	// I/O
	stdout io.Writer
	trace  io.Writer

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

type pendingLoad struct {
	valid bool
	reg   uint8
	value uint32
}

// CPUOption is a functional option for configuring the CPU.
type CPUOption func(*CPU)

// WithBus attaches a memory system. The default is a bare 2 MiB RAM.
func WithBus(bus Bus) CPUOption {
	return func(c *CPU) {
		c.bus = bus
	}
}

// WithGTE attaches a geometry coprocessor. The default accepts every
// command and holds no state.
func WithGTE(gte GTE) CPUOption {
	return func(c *CPU) {
		c.gte = gte
	}
}

// WithStdout sets the output stream for the host debug services.
func WithStdout(w io.Writer) CPUOption {
	return func(c *CPU) {
		c.stdout = w
	}
}

// WithSyscallHandler sets a custom SYSCALL interceptor.
func WithSyscallHandler(handler SyscallHandler) CPUOption {
	return func(c *CPU) {
		c.syscallHandler = handler
	}
}

// WithIRQLine attaches an external interrupt line, sampled between
// instructions.
func WithIRQLine(line IRQLine) CPUOption {
	return func(c *CPU) {
		c.irq = line
	}
}

// WithTrace streams one disassembled line per executed instruction to
// the given writer. Tracing never influences architectural state.
func WithTrace(w io.Writer) CPUOption {
	return func(c *CPU) {
		c.trace = w
	}
}

// WithMaxInstructions bounds Run to the given instruction count. A
// value of 0 means no limit.
func WithMaxInstructions(max uint64) CPUOption {
	return func(c *CPU) {
		c.maxInstructions = max
	}
}

// NewCPU creates a new R3000A interpreter.
func NewCPU(opts ...CPUOption) *CPU {
	c := &CPU{
		regFile: &RegFile{},
		cop0:    &Cop0{},
		decoder: insts.NewDecoder(),
		bus:     NewRAM(DefaultRAMSize),
		gte:     NopGTE{},
		sched:   &BranchScheduler{},
		stdout:  os.Stdout,
	}

	// Apply options first (may replace the bus the units bind to).
	for _, opt := range opts {
		opt(c)
	}

	c.alu = NewALU(c.regFile)
	c.lsu = NewLoadStoreUnit(c.regFile, c.cop0, c.bus)
	c.branchUnit = NewBranchUnit(c.regFile, c.sched)

	if c.syscallHandler == nil {
		c.syscallHandler = NewDefaultSyscallHandler(c.regFile, c.lsu, c.stdout)
	}

	return c
}

// RegFile returns the register file.
func (c *CPU) RegFile() *RegFile {
	return c.regFile
}

// Cop0 returns the system coprocessor.
func (c *CPU) Cop0() *Cop0 {
	return c.cop0
}

// Bus returns the attached memory system.
func (c *CPU) Bus() Bus {
	return c.bus
}

// PC returns the program counter.
func (c *CPU) PC() uint32 {
	return c.regFile.PC
}

// SetPC sets the program counter. Bring-up tooling uses it to seed
// execution state without a full boot sequence.
func (c *CPU) SetPC(pc uint32) {
	c.regFile.PC = pc
}

// Reg reads a general-purpose register.
func (c *CPU) Reg(idx uint8) uint32 {
	return c.regFile.ReadReg(idx)
}

// SetReg writes a general-purpose register. Writes to register 0 are
// discarded.
func (c *CPU) SetReg(idx uint8, value uint32) {
	c.regFile.WriteReg(idx, value)
}

// HI returns the HI register.
func (c *CPU) HI() uint32 {
	return c.regFile.HI
}

// LO returns the LO register.
func (c *CPU) LO() uint32 {
	return c.regFile.LO
}

// SetHI sets the HI register.
func (c *CPU) SetHI(value uint32) {
	c.regFile.HI = value
}

// SetLO sets the LO register.
func (c *CPU) SetLO(value uint32) {
	c.regFile.LO = value
}

// InstructionCount returns the number of instructions executed since
// the last reset.
func (c *CPU) InstructionCount() uint64 {
	return c.instructionCount
}

// Reset returns the processor to power-on state and starts execution at
// the given virtual address: registers, HI/LO, and the system
// coprocessor are zeroed, the load-delay and branch buffers cleared,
// and the attached coprocessor reset.
func (c *CPU) Reset(entryPC uint32) {
	c.regFile.Reset()
	c.cop0.Reset()
	c.lsu.Reset()
	c.sched.Cancel()
	c.pending = pendingLoad{}
	c.staged = pendingLoad{}
	c.gte.Reset()
	c.instructionCount = 0
	c.regFile.PC = entryPC
}

// Step executes a single instruction and returns the host-level
// outcome. Architectural exceptions are handled inside: the program
// counter vectors and the step still reports StepOK.
func (c *CPU) Step() StepResult {
	result := StepResult{PC: c.regFile.PC}

	// Interrupts are sampled between instructions. The line level is
	// mirrored into Cause.IP2 every step; when the status register
	// unmasks a pending cause bit, the step is consumed by the
	// interrupt and no instruction executes.
	if c.irq != nil {
		c.cop0.SetInterruptLine(c.irq.Pending())
	}
	if c.cop0.InterruptPending() {
		c.raiseException(ExcInt, 0, c.regFile.PC)
		return result
	}

	word, err := c.bus.Read32(Translate(c.regFile.PC))
	if err != nil {
		result.Status = StepMemFault
		result.Err = err
		return result
	}
	result.Word = word

	// The program counter moves past the instruction before execution:
	// branch targets and link addresses are computed from the
	// delay-slot address.
	pc := c.regFile.PC
	c.regFile.PC += 4
	c.sched.BeginStep()

	inst := c.decoder.Decode(word)
	result.Status = c.execute(inst, pc)

	// Commit: the load armed one instruction ago lands now, after the
	// current instruction's own writes; the load armed by the current
	// instruction moves up for the next step.
	if c.pending.valid {
		c.regFile.WriteReg(c.pending.reg, c.pending.value)
	}
	c.pending = c.staged
	c.staged = pendingLoad{}

	c.regFile.GPR[0] = 0

	if target, due := c.sched.EndStep(); due {
		c.regFile.PC = target
	}

	c.instructionCount++

	if c.trace != nil {
		fmt.Fprintf(c.trace, "%08X  %s\n", pc, inst)
	}

	return result
}

// Run steps until the program halts, a fetch fault ends the session, or
// the configured instruction budget runs out. It returns the final
// step's result.
func (c *CPU) Run() StepResult {
	for {
		result := c.Step()
		if result.Status != StepOK {
			return result
		}
		if c.maxInstructions > 0 && c.instructionCount >= c.maxInstructions {
			return result
		}
	}
}

// armLoad schedules a register write through the load-delay buffer.
func (c *CPU) armLoad(reg uint8, value uint32) {
	c.staged = pendingLoad{valid: true, reg: reg, value: value}
}

// effectiveAddress computes base + sign-extended offset for a memory
// instruction.
func (c *CPU) effectiveAddress(inst *insts.Instruction) uint32 {
	return c.regFile.ReadReg(inst.Rs) + uint32(inst.SImm)
}

// execute dispatches a decoded instruction. pc is the instruction's own
// address, recorded into EPC if it faults.
func (c *CPU) execute(inst *insts.Instruction, pc uint32) StepStatus {
	switch inst.Op {
	case insts.OpSLL:
		c.alu.SLL(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpSRL:
		c.alu.SRL(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpSRA:
		c.alu.SRA(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpSLLV:
		c.alu.SLLV(inst.Rd, inst.Rt, inst.Rs)
	case insts.OpSRLV:
		c.alu.SRLV(inst.Rd, inst.Rt, inst.Rs)
	case insts.OpSRAV:
		c.alu.SRAV(inst.Rd, inst.Rt, inst.Rs)

	case insts.OpJR:
		c.branchUnit.JR(inst.Rs)
	case insts.OpJALR:
		c.branchUnit.JALR(inst.Rd, inst.Rs)

	case insts.OpSYSCALL:
		if !c.syscallHandler.Handle().Handled {
			c.raiseException(ExcSys, 0, pc)
		}
	case insts.OpBREAK:
		return StepHalted

	case insts.OpMFHI:
		c.alu.MFHI(inst.Rd)
	case insts.OpMTHI:
		c.alu.MTHI(inst.Rs)
	case insts.OpMFLO:
		c.alu.MFLO(inst.Rd)
	case insts.OpMTLO:
		c.alu.MTLO(inst.Rs)

	case insts.OpMULT:
		c.alu.MULT(inst.Rs, inst.Rt)
	case insts.OpMULTU:
		c.alu.MULTU(inst.Rs, inst.Rt)
	case insts.OpDIV:
		c.alu.DIV(inst.Rs, inst.Rt)
	case insts.OpDIVU:
		c.alu.DIVU(inst.Rs, inst.Rt)

	case insts.OpADD:
		if c.alu.ADD(inst.Rd, inst.Rs, inst.Rt) {
			c.raiseException(ExcOvf, 0, pc)
		}
	case insts.OpADDU:
		c.alu.ADDU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSUB:
		if c.alu.SUB(inst.Rd, inst.Rs, inst.Rt) {
			c.raiseException(ExcOvf, 0, pc)
		}
	case insts.OpSUBU:
		c.alu.SUBU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpAND:
		c.alu.AND(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpOR:
		c.alu.OR(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpXOR:
		c.alu.XOR(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpNOR:
		c.alu.NOR(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLT:
		c.alu.SLT(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLTU:
		c.alu.SLTU(inst.Rd, inst.Rs, inst.Rt)

	case insts.OpBLTZ:
		c.branchUnit.BLTZ(inst.Rs, inst.SImm)
	case insts.OpBGEZ:
		c.branchUnit.BGEZ(inst.Rs, inst.SImm)
	case insts.OpBLTZAL:
		c.branchUnit.BLTZAL(inst.Rs, inst.SImm)
	case insts.OpBGEZAL:
		c.branchUnit.BGEZAL(inst.Rs, inst.SImm)

	case insts.OpJ:
		c.branchUnit.J(inst.Target)
	case insts.OpJAL:
		c.branchUnit.JAL(inst.Target)
	case insts.OpBEQ:
		c.branchUnit.BEQ(inst.Rs, inst.Rt, inst.SImm)
	case insts.OpBNE:
		c.branchUnit.BNE(inst.Rs, inst.Rt, inst.SImm)
	case insts.OpBLEZ:
		c.branchUnit.BLEZ(inst.Rs, inst.SImm)
	case insts.OpBGTZ:
		c.branchUnit.BGTZ(inst.Rs, inst.SImm)

	case insts.OpADDI:
		if c.alu.ADDI(inst.Rt, inst.Rs, inst.SImm) {
			c.raiseException(ExcOvf, 0, pc)
		}
	case insts.OpADDIU:
		c.alu.ADDIU(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpSLTI:
		c.alu.SLTI(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpSLTIU:
		c.alu.SLTIU(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpANDI:
		c.alu.ANDI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpORI:
		c.alu.ORI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpXORI:
		c.alu.XORI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpLUI:
		c.alu.LUI(inst.Rt, inst.Imm)

	case insts.OpMFC0:
		// Coprocessor reads have the same one-instruction latency as
		// memory loads.
		c.armLoad(inst.Rt, c.cop0.Read(inst.Rd))
	case insts.OpMTC0:
		c.cop0.Write(inst.Rd, c.regFile.ReadReg(inst.Rt))
	case insts.OpRFE:
		c.cop0.PopMode()

	case insts.OpMFC2:
		c.armLoad(inst.Rt, c.gte.ReadData(inst.Rd))
	case insts.OpCFC2:
		c.armLoad(inst.Rt, c.gte.ReadCtrl(inst.Rd))
	case insts.OpMTC2:
		c.gte.WriteData(inst.Rd, c.regFile.ReadReg(inst.Rt))
	case insts.OpCTC2:
		c.gte.WriteCtrl(inst.Rd, c.regFile.ReadReg(inst.Rt))
	case insts.OpCOP2:
		if !c.gte.Execute(inst.Raw) {
			c.raiseException(ExcRI, 0, pc)
		}

	case insts.OpLB:
		if v, fault := c.lsu.LoadByte(c.effectiveAddress(inst)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.armLoad(inst.Rt, v)
		}
	case insts.OpLBU:
		if v, fault := c.lsu.LoadByteUnsigned(c.effectiveAddress(inst)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.armLoad(inst.Rt, v)
		}
	case insts.OpLH:
		if v, fault := c.lsu.LoadHalf(c.effectiveAddress(inst)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.armLoad(inst.Rt, v)
		}
	case insts.OpLHU:
		if v, fault := c.lsu.LoadHalfUnsigned(c.effectiveAddress(inst)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.armLoad(inst.Rt, v)
		}
	case insts.OpLW:
		if v, fault := c.lsu.LoadWord(c.effectiveAddress(inst)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.armLoad(inst.Rt, v)
		}
	case insts.OpLWL:
		cur := c.regFile.ReadReg(inst.Rt)
		if v, fault := c.lsu.LoadWordLeft(c.effectiveAddress(inst), cur); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.armLoad(inst.Rt, v)
		}
	case insts.OpLWR:
		cur := c.regFile.ReadReg(inst.Rt)
		if v, fault := c.lsu.LoadWordRight(c.effectiveAddress(inst), cur); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.armLoad(inst.Rt, v)
		}

	case insts.OpSB:
		if fault := c.lsu.StoreByte(c.effectiveAddress(inst), c.regFile.ReadReg(inst.Rt)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		}
	case insts.OpSH:
		if fault := c.lsu.StoreHalf(c.effectiveAddress(inst), c.regFile.ReadReg(inst.Rt)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		}
	case insts.OpSW:
		if fault := c.lsu.StoreWord(c.effectiveAddress(inst), c.regFile.ReadReg(inst.Rt)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		}
	case insts.OpSWL:
		if fault := c.lsu.StoreWordLeft(c.effectiveAddress(inst), c.regFile.ReadReg(inst.Rt)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		}
	case insts.OpSWR:
		if fault := c.lsu.StoreWordRight(c.effectiveAddress(inst), c.regFile.ReadReg(inst.Rt)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		}

	case insts.OpCACHE:
		// Cache maintenance has no architectural effect here.

	case insts.OpLWC2:
		if v, fault := c.lsu.LoadWord(c.effectiveAddress(inst)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		} else {
			c.gte.LWC2(inst.Rt, v)
		}
	case insts.OpSWC2:
		if fault := c.lsu.StoreWord(c.effectiveAddress(inst), c.gte.SWC2(inst.Rt)); fault != nil {
			c.raiseException(fault.Code, fault.VAddr, pc)
		}

	default:
		c.raiseException(ExcRI, 0, pc)
	}

	return StepOK
}
