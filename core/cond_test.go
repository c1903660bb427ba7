package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pseudoc/core"
	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/token"
)

func binary(addr uint64, op instr.Opcode, dst, src instr.Operand) instr.Inst {
	return instr.Inst{
		Address:  addr,
		Mnemonic: op.String(),
		Size:     3,
		Op:       op,
		Operands: []instr.Operand{dst, src},
	}
}

func jump(addr uint64, op instr.Opcode, target uint64) instr.Inst {
	return instr.Inst{
		Address:  addr,
		Mnemonic: op.String(),
		Size:     2,
		Op:       op,
		Operands: []instr.Operand{instr.Imm(int64(target), 8)},
	}
}

var _ = Describe("ConditionFuser", func() {
	var t *core.Translator

	BeforeEach(func() {
		t = core.NewBuilder().Build()
	})

	cond := func(jumpOp instr.Opcode, fused *core.Fusion) string {
		var w token.Writer
		t.Condition(&w, core.Env{}, jumpOp, fused)
		return w.Plain()
	}

	fuse := func(prev instr.Inst, jumpOp instr.Opcode) *core.Fusion {
		f, err := core.NewFusion(prev, jump(prev.End(), jumpOp, 0x401100))
		Expect(err).NotTo(HaveOccurred())
		return f
	}

	Context("without a predecessor", func() {
		It("should print only the symbol", func() {
			Expect(cond(instr.OpJe, nil)).To(Equal("=="))
			Expect(cond(instr.OpJge, nil)).To(Equal(">="))
		})

		It("should compare implicit-zero conditions against 0", func() {
			Expect(cond(instr.OpJs, nil)).To(Equal("< 0"))
			Expect(cond(instr.OpJnp, nil)).To(Equal("% 2 != 0"))
			Expect(cond(instr.OpJrcxz, nil)).To(Equal("rcx == 0"))
		})
	})

	Context("after a compare", func() {
		It("should compare both operands", func() {
			prev := binary(0x401000, instr.OpCmp, eax, instr.Imm(5, 4))

			Expect(cond(instr.OpJg, fuse(prev, instr.OpJg))).To(Equal("(eax > 5)"))
			Expect(cond(instr.OpJne, fuse(prev, instr.OpJne))).To(Equal("(eax != 5)"))
		})

		It("should never append 0", func() {
			prev := binary(0x401000, instr.OpCmp, eax, ebx)

			Expect(cond(instr.OpJs, fuse(prev, instr.OpJs))).To(Equal("(eax < ebx)"))
		})
	})

	Context("after a test", func() {
		It("should compare the first operand against 0", func() {
			prev := binary(0x401000, instr.OpTest, eax, eax)

			Expect(cond(instr.OpJe, fuse(prev, instr.OpJe))).To(Equal("((eax == 0))"))
			Expect(cond(instr.OpJs, fuse(prev, instr.OpJs))).To(Equal("((eax < 0))"))
		})
	})

	Context("after a self-assigning operation", func() {
		It("should keep the assignment inside the condition", func() {
			prev := binary(0x401000, instr.OpAnd, eax, instr.Imm(1, 4))

			Expect(cond(instr.OpJne, fuse(prev, instr.OpJne))).
				To(Equal("((eax &= 1) != 0)"))
		})

		It("should use the operation's own operator", func() {
			prev := binary(0x401000, instr.OpXor, eax, ebx)
			Expect(cond(instr.OpJp, fuse(prev, instr.OpJp))).
				To(Equal("((eax ^= ebx) % 2 == 0)"))

			prev = binary(0x401000, instr.OpShr, eax, instr.Imm(2, 4))
			Expect(cond(instr.OpJe, fuse(prev, instr.OpJe))).
				To(Equal("((eax >>= 2) == 0)"))
		})
	})

	Context("when creating fusions", func() {
		prev := binary(0x401000, instr.OpCmp, eax, instr.Imm(5, 4))

		It("should accept adjacent pairs", func() {
			j := jump(0x401003, instr.OpJe, 0x401100)
			f, err := core.NewFusion(prev, j)

			Expect(err).NotTo(HaveOccurred())
			Expect(f.Prev()).To(Equal(prev))
			Expect(f.Jump()).To(Equal(j))
		})

		It("should reject a gap between the instructions", func() {
			_, err := core.NewFusion(prev, jump(0x401005, instr.OpJe, 0x401100))

			Expect(err).To(MatchError(core.ErrNotAdjacent))
		})

		It("should reject jumps that do not read flags", func() {
			_, err := core.NewFusion(prev, jump(0x401003, instr.OpJrcxz, 0x401100))
			Expect(err).To(MatchError(core.ErrNotCondJump))

			_, err = core.NewFusion(prev, jump(0x401003, instr.OpJmp, 0x401100))
			Expect(err).To(MatchError(core.ErrNotCondJump))
		})

		It("should reject jumps through a register or memory", func() {
			j := instr.Inst{
				Address:  0x401003,
				Size:     2,
				Op:       instr.OpJne,
				Operands: []instr.Operand{eax},
			}
			_, err := core.NewFusion(prev, j)
			Expect(err).To(MatchError(core.ErrIndirectJump))

			j.Operands = nil
			_, err = core.NewFusion(prev, j)
			Expect(err).To(MatchError(core.ErrIndirectJump))
		})

		It("should reject instructions that cannot be folded", func() {
			mov := binary(0x401000, instr.OpMov, eax, instr.Imm(5, 4))
			_, err := core.NewFusion(mov, jump(0x401003, instr.OpJe, 0x401100))
			Expect(err).To(MatchError(core.ErrNotFlagSetter))

			inc := instr.Inst{
				Address:  0x401000,
				Size:     3,
				Op:       instr.OpInc,
				Operands: []instr.Operand{eax},
			}
			_, err = core.NewFusion(inc, jump(0x401003, instr.OpJe, 0x401100))
			Expect(err).To(MatchError(core.ErrNotFlagSetter))
		})
	})
})
