// Package emu provides functional R3000A emulation.
package emu

// ExcCode is an architectural exception cause code, stored in bits 6..2
// of the Cause register.
type ExcCode uint8

// Exception cause codes.
const (
	ExcInt  ExcCode = 0x00 // external interrupt
	ExcAdEL ExcCode = 0x04 // address error on load or fetch
	ExcAdES ExcCode = 0x05 // address error on store
	ExcSys  ExcCode = 0x08 // SYSCALL
	ExcBp   ExcCode = 0x09 // BREAK
	ExcRI   ExcCode = 0x0A // reserved instruction
	ExcOvf  ExcCode = 0x0C // arithmetic overflow
)

// ExceptionVector is where control transfers on any architectural
// exception.
const ExceptionVector uint32 = 0x80000080

// raiseException records an architectural exception and redirects the
// program counter to the exception vector.
//
// EPC normally records the faulting instruction's address. When the
// fault hits a delay-slot instruction, EPC backs up to the branch and
// Cause.BD is set so the handler can re-run the branch on return.
// Interrupts are taken between instructions and never report a delay
// slot. Entry pushes the kernel/interrupt-enable stack and cancels any
// in-flight branch schedule: the trap vector wins.
func (c *CPU) raiseException(code ExcCode, badVAddr uint32, faultPC uint32) {
	inDelaySlot := c.sched.InDelaySlot() && code != ExcInt

	epc := faultPC
	if inDelaySlot {
		epc = faultPC - 4
	}

	c.cop0.Reg[Cop0EPC] = epc
	c.cop0.Reg[Cop0BadVAddr] = badVAddr

	cause := c.cop0.Reg[Cop0Cause]
	cause &^= uint32(0x1F) << 2
	cause |= uint32(code&0x1F) << 2
	if inDelaySlot {
		cause |= CauseBD
	} else {
		cause &^= uint32(CauseBD)
	}
	c.cop0.Reg[Cop0Cause] = cause

	c.cop0.PushMode()

	c.regFile.PC = ExceptionVector
	c.sched.Cancel()
}
