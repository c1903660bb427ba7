package instr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pseudoc/instr"
)

var _ = Describe("Reg", func() {
	It("should look up registers by name", func() {
		r, ok := instr.RegByName("RBP")
		Expect(ok).To(BeTrue())
		Expect(r).To(Equal(instr.RBP))
		Expect(r.IsFramePointer()).To(BeTrue())

		r, ok = instr.RegByName("xmm15")
		Expect(ok).To(BeTrue())
		Expect(r.Size()).To(Equal(16))
		Expect(r.String()).To(Equal("xmm15"))

		_, ok = instr.RegByName("zmm0")
		Expect(ok).To(BeFalse())
	})

	DescribeTable("should name numbered registers",
		func(name string, size int) {
			r, ok := instr.RegByName(name)
			Expect(ok).To(BeTrue())
			Expect(r.String()).To(Equal(name))
			Expect(r.Size()).To(Equal(size))
		},
		Entry("r15d", "r15d", 4),
		Entry("st7", "st7", 10),
		Entry("ymm12", "ymm12", 32),
		Entry("cr15", "cr15", 8),
		Entry("dr0", "dr0", 8),
	)

	It("should know register widths", func() {
		Expect(instr.RAX.Size()).To(Equal(8))
		Expect(instr.ECX.Size()).To(Equal(4))
		Expect(instr.DX.Size()).To(Equal(2))
		Expect(instr.BH.Size()).To(Equal(1))

		r, _ := instr.RegByName("r10d")
		Expect(r.Size()).To(Equal(4))
	})

	It("should recognize instruction pointers", func() {
		Expect(instr.RIP.IsInstructionPointer()).To(BeTrue())
		Expect(instr.EIP.IsInstructionPointer()).To(BeTrue())
		Expect(instr.RSP.IsInstructionPointer()).To(BeFalse())
	})

	It("should treat RegNone as absent", func() {
		Expect(instr.RegNone.Valid()).To(BeFalse())
		Expect(instr.RegNone.String()).To(Equal("?"))
	})
})

var _ = Describe("Opcode", func() {
	It("should map mnemonics", func() {
		Expect(instr.OpcodeByName("imul")).To(Equal(instr.OpImul))
		Expect(instr.OpcodeByName("jrcxz")).To(Equal(instr.OpJrcxz))
		Expect(instr.OpcodeByName("vpxor")).To(Equal(instr.OpOther))
		Expect(instr.OpScasw.String()).To(Equal("scasw"))
	})

	It("should classify branches", func() {
		Expect(instr.OpJmp.IsJump()).To(BeTrue())
		Expect(instr.OpJmp.IsCondJump()).To(BeFalse())
		Expect(instr.OpJle.IsCondJump()).To(BeTrue())
		Expect(instr.OpJle.ReadsFlags()).To(BeTrue())
		Expect(instr.OpJecxz.IsCondJump()).To(BeTrue())
		Expect(instr.OpJecxz.ReadsFlags()).To(BeFalse())
		Expect(instr.OpCall.IsJump()).To(BeFalse())
	})

	It("should group string instructions", func() {
		family, width := instr.OpStosb.StringFamily()
		Expect(family).To(Equal(instr.FamilyStos))
		Expect(width).To(Equal(1))

		family, width = instr.OpCmpsd.StringFamily()
		Expect(family).To(Equal(instr.FamilyCmps))
		Expect(width).To(Equal(4))

		family, width = instr.OpScasq.StringFamily()
		Expect(family).To(Equal(instr.FamilyScas))
		Expect(width).To(Equal(8))

		family, _ = instr.OpMov.StringFamily()
		Expect(family).To(Equal(instr.NotString))
	})
})

var _ = Describe("Inst", func() {
	It("should compute the end address", func() {
		i := instr.Inst{Address: 0x401000, Size: 7}
		Expect(i.End()).To(Equal(uint64(0x401007)))
	})

	It("should prefer the raw text", func() {
		i := instr.Inst{Mnemonic: "xor", Text: "xor eax, eax"}
		Expect(i.String()).To(Equal("xor eax, eax"))
	})

	It("should format operands without raw text", func() {
		i := instr.Inst{
			Mnemonic: "mov",
			Operands: []instr.Operand{
				instr.MemOp(instr.Memory{Base: instr.RBP, Disp: -8}, 4),
				instr.Imm(16, 4),
			},
		}
		Expect(i.String()).To(Equal("mov [rbp-0x8], 0x10"))

		i = instr.Inst{
			Mnemonic: "movsb",
			Prefix:   instr.PrefixRep,
		}
		Expect(i.String()).To(Equal("rep movsb"))
	})

	It("should default the memory scale", func() {
		op := instr.MemOp(instr.Memory{Base: instr.RAX}, 8)
		Expect(op.Mem.Scale).To(Equal(1))
		Expect(op.Kind).To(Equal(instr.KindMemory))
	})
})
