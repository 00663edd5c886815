package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DrJVTek/R3000-Emu-sub001/emu"
)

// recordingGTE is a test double that stores register writes and logs
// every command word.
type recordingGTE struct {
	data     [32]uint32
	ctrl     [32]uint32
	commands []uint32
	reject   bool
	resets   int
}

func (g *recordingGTE) ReadData(reg uint8) uint32 { return g.data[reg&31] }

func (g *recordingGTE) WriteData(reg uint8, value uint32) { g.data[reg&31] = value }

func (g *recordingGTE) ReadCtrl(reg uint8) uint32 { return g.ctrl[reg&31] }

func (g *recordingGTE) WriteCtrl(reg uint8, value uint32) { g.ctrl[reg&31] = value }

func (g *recordingGTE) Execute(command uint32) bool {
	g.commands = append(g.commands, command)
	return !g.reject
}

func (g *recordingGTE) LWC2(reg uint8, value uint32) { g.data[reg&31] = value }

func (g *recordingGTE) SWC2(reg uint8) uint32 { return g.data[reg&31] }

func (g *recordingGTE) Reset() { g.resets++ }

var _ = Describe("Geometry coprocessor dispatch", func() {
	var (
		c   *emu.CPU
		gte *recordingGTE
	)

	BeforeEach(func() {
		gte = &recordingGTE{}
		c = emu.NewCPU(emu.WithGTE(gte))
	})

	It("should write data registers immediately on MTC2", func() {
		loadWords(c, 0x1000,
			encodeMTC2(8, 5),
		)
		c.SetReg(8, 0xDEAD0005)

		c.Step()

		Expect(gte.data[5]).To(Equal(uint32(0xDEAD0005)))
	})

	It("should write control registers immediately on CTC2", func() {
		loadWords(c, 0x1000,
			encodeCTC2(8, 3),
		)
		c.SetReg(8, 0xC0DE0003)

		c.Step()

		Expect(gte.ctrl[3]).To(Equal(uint32(0xC0DE0003)))
	})

	It("should read data registers through the load delay on MFC2", func() {
		gte.data[7] = 0x1234
		loadWords(c, 0x1000,
			encodeMFC2(9, 7),
			encodeADDU(10, 9, 0),
			encodeNOP(),
		)

		c.Step()
		Expect(c.Reg(9)).To(Equal(uint32(0)))

		c.Step()
		Expect(c.Reg(10)).To(Equal(uint32(0)))
		Expect(c.Reg(9)).To(Equal(uint32(0x1234)))
	})

	It("should read control registers through the load delay on CFC2", func() {
		gte.ctrl[4] = 0x5678
		loadWords(c, 0x1000,
			encodeCFC2(9, 4),
			encodeNOP(),
		)

		c.Step()
		c.Step()

		Expect(c.Reg(9)).To(Equal(uint32(0x5678)))
	})

	It("should pass command words through opaquely", func() {
		loadWords(c, 0x1000,
			encodeCOP2(0x0180001), // RTPS
		)

		c.Step()

		Expect(gte.commands).To(Equal([]uint32{0x4A180001}))
		Expect(c.PC()).To(Equal(uint32(0x1004)))
	})

	It("should trap commands the coprocessor rejects", func() {
		gte.reject = true
		loadWords(c, 0x1000,
			encodeCOP2(0x0180001),
		)

		c.Step()

		Expect(c.PC()).To(Equal(emu.ExceptionVector))
		Expect(c.Cop0().EPC()).To(Equal(uint32(0x1000)))
		Expect(causeCode(c)).To(Equal(emu.ExcRI))
	})

	It("should load a data register from memory on LWC2", func() {
		ram := c.Bus().(*emu.RAM)
		Expect(ram.Write32(0x2000, 0x12345678)).To(Succeed())
		loadWords(c, 0x1000,
			encodeLWC2(13, 8, 0),
		)
		c.SetReg(8, 0x2000)

		c.Step()

		Expect(gte.data[13]).To(Equal(uint32(0x12345678)))
		Expect(c.PC()).To(Equal(uint32(0x1004)))
	})

	It("should fault a misaligned LWC2 without touching the coprocessor", func() {
		loadWords(c, 0x1000,
			encodeLWC2(13, 8, 2),
		)
		c.SetReg(8, 0x2000)

		c.Step()

		Expect(causeCode(c)).To(Equal(emu.ExcAdEL))
		Expect(c.Cop0().BadVAddr()).To(Equal(uint32(0x2002)))
		Expect(gte.data[13]).To(BeZero())
	})

	It("should store a data register to memory on SWC2", func() {
		gte.data[13] = 0x55AA55AA
		loadWords(c, 0x1000,
			encodeSWC2(13, 8, 0),
		)
		c.SetReg(8, 0x2000)

		c.Step()

		ram := c.Bus().(*emu.RAM)
		v, _ := ram.Read32(0x2000)
		Expect(v).To(Equal(uint32(0x55AA55AA)))
	})

	It("should reset the coprocessor with the core", func() {
		c.Reset(0x1000)

		Expect(gte.resets).To(Equal(1))
	})
})

var _ = Describe("NopGTE", func() {
	It("should accept every command and read as zero", func() {
		var gte emu.NopGTE

		Expect(gte.Execute(0x4A180001)).To(BeTrue())
		Expect(gte.ReadData(5)).To(BeZero())
		Expect(gte.ReadCtrl(5)).To(BeZero())
		Expect(gte.SWC2(5)).To(BeZero())
	})
})
