package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DrJVTek/R3000-Emu-sub001/emu"
)

func causeCode(c *emu.CPU) emu.ExcCode {
	return emu.ExcCode(c.Cop0().Cause() >> 2 & 0x1F)
}

var _ = Describe("Arithmetic overflow", func() {
	var c *emu.CPU

	BeforeEach(func() {
		c = emu.NewCPU()
	})

	It("should trap ADD overflow without writing the destination", func() {
		loadWords(c, 0x1000,
			encodeADD(10, 8, 9),
		)
		c.SetReg(8, 0x7FFFFFFF)
		c.SetReg(9, 1)
		c.SetReg(10, 77)

		result := c.Step()

		Expect(result.Status).To(Equal(emu.StepOK))
		Expect(c.Reg(10)).To(Equal(uint32(77)))
		Expect(c.PC()).To(Equal(emu.ExceptionVector))
		Expect(c.Cop0().EPC()).To(Equal(uint32(0x1000)))
		Expect(causeCode(c)).To(Equal(emu.ExcOvf))
		Expect(c.Cop0().Cause() & emu.CauseBD).To(BeZero())
	})

	It("should trap ADDI overflow without writing rt", func() {
		loadWords(c, 0x1000,
			encodeADDI(9, 8, 1),
		)
		c.SetReg(8, 0x7FFFFFFF)
		c.SetReg(9, 7)

		c.Step()

		Expect(c.Reg(9)).To(Equal(uint32(7)))
		Expect(causeCode(c)).To(Equal(emu.ExcOvf))
	})

	It("should trap SUB overflow", func() {
		loadWords(c, 0x1000,
			encodeSUB(10, 8, 9),
		)
		c.SetReg(8, 0x80000000)
		c.SetReg(9, 1)

		c.Step()

		Expect(causeCode(c)).To(Equal(emu.ExcOvf))
	})

	It("should not trap the unsigned forms", func() {
		loadWords(c, 0x1000,
			encodeADDU(10, 8, 9),
		)
		c.SetReg(8, 0x7FFFFFFF)
		c.SetReg(9, 1)

		c.Step()

		Expect(c.Reg(10)).To(Equal(uint32(0x80000000)))
		Expect(c.PC()).To(Equal(uint32(0x1004)))
	})
})

var _ = Describe("Reserved instructions", func() {
	var c *emu.CPU

	BeforeEach(func() {
		c = emu.NewCPU()
	})

	It("should trap an unassigned primary opcode", func() {
		loadWords(c, 0x1000,
			0x4C000000, // primary 0x13
		)

		result := c.Step()

		Expect(result.Status).To(Equal(emu.StepOK))
		Expect(c.PC()).To(Equal(emu.ExceptionVector))
		Expect(c.Cop0().EPC()).To(Equal(uint32(0x1000)))
		Expect(causeCode(c)).To(Equal(emu.ExcRI))
	})

	It("should trap an unassigned SPECIAL function", func() {
		loadWords(c, 0x1000,
			0x00000001,
		)

		c.Step()

		Expect(causeCode(c)).To(Equal(emu.ExcRI))
	})

	It("should trap a coprocessor 1 access", func() {
		loadWords(c, 0x1000,
			0x44000000, // MFC1
		)

		c.Step()

		Expect(causeCode(c)).To(Equal(emu.ExcRI))
	})
})

var _ = Describe("Address errors", func() {
	var c *emu.CPU

	BeforeEach(func() {
		c = emu.NewCPU()
	})

	It("should fault a misaligned LW and leave the destination alone", func() {
		loadWords(c, 0x1000,
			encodeLW(9, 8, 0),
		)
		c.SetReg(8, 0x2002)
		c.SetReg(9, 55)

		c.Step()

		Expect(c.PC()).To(Equal(emu.ExceptionVector))
		Expect(causeCode(c)).To(Equal(emu.ExcAdEL))
		Expect(c.Cop0().BadVAddr()).To(Equal(uint32(0x2002)))
		Expect(c.Cop0().EPC()).To(Equal(uint32(0x1000)))

		// No load is in flight: stepping through the (empty) handler
		// never delivers one.
		c.Step()
		c.Step()
		Expect(c.Reg(9)).To(Equal(uint32(55)))
	})

	It("should fault a misaligned SH", func() {
		loadWords(c, 0x1000,
			encodeSH(9, 8, 1),
		)
		c.SetReg(8, 0x2000)

		c.Step()

		Expect(causeCode(c)).To(Equal(emu.ExcAdES))
		Expect(c.Cop0().BadVAddr()).To(Equal(uint32(0x2001)))
	})

	It("should fault a store into unpopulated memory", func() {
		loadWords(c, 0x1000,
			encodeSW(9, 8, 0),
		)
		c.SetReg(8, 0x00300000)

		c.Step()

		Expect(causeCode(c)).To(Equal(emu.ExcAdES))
		Expect(c.Cop0().BadVAddr()).To(Equal(uint32(0x00300000)))
	})
})

var _ = Describe("Delay-slot faults", func() {
	var c *emu.CPU

	BeforeEach(func() {
		c = emu.NewCPU()
	})

	It("should back EPC up to the branch and set Cause.BD", func() {
		loadWords(c, 0x1000,
			encodeBEQ(0, 0, 2),
			encodeLW(9, 8, 0), // misaligned, faults in the delay slot
		)
		c.SetReg(8, 0x2001)

		c.Step()
		c.Step()

		Expect(c.Cop0().EPC()).To(Equal(uint32(0x1000)))
		Expect(c.Cop0().Cause() & emu.CauseBD).NotTo(BeZero())
		Expect(causeCode(c)).To(Equal(emu.ExcAdEL))
		Expect(c.PC()).To(Equal(emu.ExceptionVector))

		// The scheduled branch is gone: execution continues at the
		// handler, not the branch target.
		c.Step()
		Expect(c.PC()).To(Equal(emu.ExceptionVector + 4))
	})
})

var _ = Describe("Exception entry and return", func() {
	var c *emu.CPU

	BeforeEach(func() {
		c = emu.NewCPU()
	})

	It("should push the interrupt-enable stack on entry", func() {
		loadWords(c, 0x1000,
			encodeSYSCALL(),
		)
		c.Cop0().Write(emu.Cop0Status, emu.StatusIEc)

		c.Step()

		Expect(c.Cop0().Status()).To(Equal(uint32(0x04)))
		Expect(causeCode(c)).To(Equal(emu.ExcSys))
	})

	It("should return through the classic MFC0/JR/RFE sequence", func() {
		loadWords(c, 0x1000,
			encodeSYSCALL(),
			encodeADDIU(9, 0, 1),
		)
		writeWords(c, 0x80000080,
			encodeMFC0(26, emu.Cop0EPC),
			encodeNOP(),
			encodeADDIU(26, 26, 4),
			encodeJR(26),
			encodeRFE(),
		)
		c.Cop0().Write(emu.Cop0Status, emu.StatusIEc)

		c.Step() // SYSCALL traps
		Expect(c.PC()).To(Equal(emu.ExceptionVector))

		c.Step() // MFC0 k0, EPC
		c.Step() // load-delay slot
		Expect(c.Reg(26)).To(Equal(uint32(0x1000)))

		c.Step() // skip the trapping instruction
		c.Step() // JR k0
		c.Step() // RFE in the delay slot

		Expect(c.PC()).To(Equal(uint32(0x1004)))
		Expect(c.Cop0().Status()).To(Equal(uint32(emu.StatusIEc)))

		c.Step()
		Expect(c.Reg(9)).To(Equal(uint32(1)))
	})
})
