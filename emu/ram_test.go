package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DrJVTek/R3000-Emu-sub001/emu"
)

var _ = Describe("RAM", func() {
	var ram *emu.RAM

	BeforeEach(func() {
		ram = emu.NewRAM(0x1000)
	})

	It("should report its populated size", func() {
		Expect(ram.Size()).To(Equal(uint32(0x1000)))
	})

	It("should start zero-filled", func() {
		v, err := ram.Read32(0x100)

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeZero())
	})

	It("should store words little-endian", func() {
		Expect(ram.Write32(0x10, 0x11223344)).To(Succeed())

		b0, _ := ram.Read8(0x10)
		b1, _ := ram.Read8(0x11)
		b2, _ := ram.Read8(0x12)
		b3, _ := ram.Read8(0x13)

		Expect(b0).To(Equal(uint8(0x44)))
		Expect(b1).To(Equal(uint8(0x33)))
		Expect(b2).To(Equal(uint8(0x22)))
		Expect(b3).To(Equal(uint8(0x11)))
	})

	It("should store halfwords little-endian", func() {
		Expect(ram.Write16(0x20, 0xBEEF)).To(Succeed())

		b0, _ := ram.Read8(0x20)
		b1, _ := ram.Read8(0x21)
		v, _ := ram.Read16(0x20)

		Expect(b0).To(Equal(uint8(0xEF)))
		Expect(b1).To(Equal(uint8(0xBE)))
		Expect(v).To(Equal(uint16(0xBEEF)))
	})

	It("should allow byte access to the last populated address", func() {
		Expect(ram.Write8(0x0FFF, 0x5A)).To(Succeed())

		v, err := ram.Read8(0x0FFF)

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint8(0x5A)))
	})

	It("should fault accesses past the end", func() {
		_, err := ram.Read32(0x1000)

		Expect(err).To(HaveOccurred())
	})

	It("should fault word accesses that straddle the end", func() {
		_, err := ram.Read32(0x0FFE)

		Expect(err).To(HaveOccurred())

		err = ram.Write32(0x0FFE, 1)

		Expect(err).To(HaveOccurred())
	})

	It("should describe faults with address, size, and direction", func() {
		err := ram.Write16(0xFFFF0000, 1)

		fault, ok := err.(*emu.BusFault)
		Expect(ok).To(BeTrue())
		Expect(fault.Addr).To(Equal(uint32(0xFFFF0000)))
		Expect(fault.Size).To(Equal(uint8(2)))
		Expect(fault.Write).To(BeTrue())
		Expect(fault.Error()).To(ContainSubstring("0xFFFF0000"))
	})

	Describe("LoadAt", func() {
		It("should copy an image into place", func() {
			image := []byte{0xDE, 0xAD, 0xBE, 0xEF}

			Expect(ram.LoadAt(0x200, image)).To(Succeed())

			v, _ := ram.Read32(0x200)
			Expect(v).To(Equal(uint32(0xEFBEADDE)))
		})

		It("should reject images that do not fit", func() {
			image := make([]byte, 0x20)

			Expect(ram.LoadAt(0x0FF0, image)).NotTo(Succeed())
		})
	})
})
