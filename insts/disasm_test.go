package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DrJVTek/R3000-Emu-sub001/insts"
)

var _ = Describe("Disassembler", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	It("should render the all-zero word as NOP", func() {
		Expect(decoder.Decode(0x00000000).String()).To(Equal("NOP"))
	})

	It("should render three-register ALU forms", func() {
		Expect(decoder.Decode(0x01095021).String()).To(Equal("ADDU t2, t0, t1"))
		Expect(decoder.Decode(0x0085102B).String()).To(Equal("SLTU v0, a0, a1"))
	})

	It("should render shifts with their amounts", func() {
		Expect(decoder.Decode(0x00094100).String()).To(Equal("SLL t0, t1, 4"))
		Expect(decoder.Decode(0x001187C3).String()).To(Equal("SRA s0, s1, 31"))
	})

	It("should render immediates in the conventional base", func() {
		Expect(decoder.Decode(0x27BDFFF0).String()).To(Equal("ADDIU sp, sp, -16"))
		Expect(decoder.Decode(0x3C081234).String()).To(Equal("LUI t0, 0x1234"))
		Expect(decoder.Decode(0x34215678).String()).To(Equal("ORI at, at, 0x5678"))
	})

	It("should render loads and stores with base displacement syntax", func() {
		Expect(decoder.Decode(0x8FA80004).String()).To(Equal("LW t0, 4(sp)"))
		Expect(decoder.Decode(0xAFBF0000).String()).To(Equal("SW ra, 0(sp)"))
		Expect(decoder.Decode(0x8104FFFF).String()).To(Equal("LB a0, -1(t0)"))
	})

	It("should render branch displacements in bytes", func() {
		Expect(decoder.Decode(0x10850004).String()).To(Equal("BEQ a0, a1, 16"))
		Expect(decoder.Decode(0x0480FFFF).String()).To(Equal("BLTZ a0, -4"))
	})

	It("should render jumps and calls", func() {
		Expect(decoder.Decode(0x08100000).String()).To(Equal("J 0x00400000"))
		Expect(decoder.Decode(0x03E00008).String()).To(Equal("JR ra"))
		Expect(decoder.Decode(0x0320F809).String()).To(Equal("JALR ra, t9"))
	})

	It("should render coprocessor moves with numbered registers", func() {
		Expect(decoder.Decode(0x40086000).String()).To(Equal("MFC0 t0, $12"))
		Expect(decoder.Decode(0x48886800).String()).To(Equal("MTC2 t0, $13"))
		Expect(decoder.Decode(0x42000010).String()).To(Equal("RFE"))
	})

	It("should render GTE command words with their payload", func() {
		Expect(decoder.Decode(0x4A180001).String()).To(Equal("COP2 0x0180001"))
	})

	It("should render undecodable words as raw data", func() {
		Expect(decoder.Decode(0x4C000000).String()).To(Equal(".word 0x4C000000"))
	})
})
