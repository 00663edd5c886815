// Package emu provides functional R3000A emulation.
package emu

// BranchScheduler is the single-slot delay-slot state machine. A taken
// branch schedules a target; exactly one further instruction executes
// before the program counter actually moves. Scheduling while an
// earlier schedule is still in flight replaces it: the last branch
// wins.
type BranchScheduler struct {
	pending       bool
	target        uint32
	delaySlots    int
	justScheduled bool
}

// Schedule arms the scheduler with a branch target. The redirection
// lands after the next instruction (the delay slot) has executed.
func (s *BranchScheduler) Schedule(target uint32) {
	s.pending = true
	s.target = target
	s.delaySlots = 1
	s.justScheduled = true
}

// BeginStep marks the start of a new step, aging a schedule created in
// the previous one so that this step counts as its delay slot.
func (s *BranchScheduler) BeginStep() {
	s.justScheduled = false
}

// EndStep advances the delay-slot countdown and reports the target when
// the redirection falls due. A schedule created during the current step
// is left untouched; its delay slot has not run yet.
func (s *BranchScheduler) EndStep() (uint32, bool) {
	if !s.pending || s.justScheduled {
		return 0, false
	}
	s.delaySlots--
	if s.delaySlots > 0 {
		return 0, false
	}
	s.pending = false
	return s.target, true
}

// Cancel discards any in-flight schedule. Taken exceptions call this:
// the trap vector wins over a scheduled branch.
func (s *BranchScheduler) Cancel() {
	s.pending = false
	s.delaySlots = 0
	s.justScheduled = false
}

// InDelaySlot reports whether the instruction currently executing sits
// in the delay slot of an earlier branch.
func (s *BranchScheduler) InDelaySlot() bool {
	return s.pending && !s.justScheduled && s.delaySlots == 1
}

// BranchUnit evaluates branch and jump instructions. The program
// counter has already advanced past the branch when these run, so
// relative targets are computed from the delay-slot address.
type BranchUnit struct {
	regFile *RegFile
	sched   *BranchScheduler
}

// NewBranchUnit creates a branch unit connected to the given register
// file and scheduler.
func NewBranchUnit(regFile *RegFile, sched *BranchScheduler) *BranchUnit {
	return &BranchUnit{regFile: regFile, sched: sched}
}

// relativeTarget computes a branch destination from the signed word
// offset in the instruction.
func (b *BranchUnit) relativeTarget(offset int32) uint32 {
	return b.regFile.PC + uint32(offset)<<2
}

// J jumps within the current 256 MB region: the 26-bit index supplies
// the low bits, the program counter the high nibble.
func (b *BranchUnit) J(index uint32) {
	b.sched.Schedule(b.regFile.PC&0xF0000000 | index<<2)
}

// JAL jumps like J and links the return address (the instruction after
// the delay slot) into r31.
func (b *BranchUnit) JAL(index uint32) {
	b.regFile.WriteReg(31, b.regFile.PC+4)
	b.J(index)
}

// JR jumps to the address held in rs.
func (b *BranchUnit) JR(rs uint8) {
	b.sched.Schedule(b.regFile.ReadReg(rs))
}

// JALR jumps to the address held in rs and links the return address
// into rd. An rd of zero links into r31 instead, matching how
// assemblers emit the bare two-operand form. The link is written before
// the jump target is read, so JALR with rd == rs jumps to the link
// address.
func (b *BranchUnit) JALR(rd, rs uint8) {
	link := rd
	if link == 0 {
		link = 31
	}
	b.regFile.WriteReg(link, b.regFile.PC+4)
	b.sched.Schedule(b.regFile.ReadReg(rs))
}

// BEQ branches if rs == rt.
func (b *BranchUnit) BEQ(rs, rt uint8, offset int32) {
	if b.regFile.ReadReg(rs) == b.regFile.ReadReg(rt) {
		b.sched.Schedule(b.relativeTarget(offset))
	}
}

// BNE branches if rs != rt.
func (b *BranchUnit) BNE(rs, rt uint8, offset int32) {
	if b.regFile.ReadReg(rs) != b.regFile.ReadReg(rt) {
		b.sched.Schedule(b.relativeTarget(offset))
	}
}

// BLEZ branches if rs <= 0 as a signed value.
func (b *BranchUnit) BLEZ(rs uint8, offset int32) {
	if int32(b.regFile.ReadReg(rs)) <= 0 {
		b.sched.Schedule(b.relativeTarget(offset))
	}
}

// BGTZ branches if rs > 0 as a signed value.
func (b *BranchUnit) BGTZ(rs uint8, offset int32) {
	if int32(b.regFile.ReadReg(rs)) > 0 {
		b.sched.Schedule(b.relativeTarget(offset))
	}
}

// BLTZ branches if rs < 0 as a signed value.
func (b *BranchUnit) BLTZ(rs uint8, offset int32) {
	if int32(b.regFile.ReadReg(rs)) < 0 {
		b.sched.Schedule(b.relativeTarget(offset))
	}
}

// BGEZ branches if rs >= 0 as a signed value.
func (b *BranchUnit) BGEZ(rs uint8, offset int32) {
	if int32(b.regFile.ReadReg(rs)) >= 0 {
		b.sched.Schedule(b.relativeTarget(offset))
	}
}

// BLTZAL branches if rs < 0, linking the return address into r31 when
// the branch is taken.
func (b *BranchUnit) BLTZAL(rs uint8, offset int32) {
	if int32(b.regFile.ReadReg(rs)) < 0 {
		b.regFile.WriteReg(31, b.regFile.PC+4)
		b.sched.Schedule(b.relativeTarget(offset))
	}
}

// BGEZAL branches if rs >= 0, linking the return address into r31 when
// the branch is taken.
func (b *BranchUnit) BGEZAL(rs uint8, offset int32) {
	if int32(b.regFile.ReadReg(rs)) >= 0 {
		b.regFile.WriteReg(31, b.regFile.PC+4)
		b.sched.Schedule(b.relativeTarget(offset))
	}
}
