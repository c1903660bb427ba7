package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/token"
)

var (
	// ErrNotAdjacent is returned when the jump does not directly follow
	// the flag setter.
	ErrNotAdjacent = errors.New("instructions are not adjacent")
	// ErrNotCondJump is returned when the second instruction is not a
	// conditional jump that reads the flags.
	ErrNotCondJump = errors.New("not a flag-reading conditional jump")
	// ErrNotFlagSetter is returned when the first instruction cannot be
	// folded into a condition.
	ErrNotFlagSetter = errors.New("not a fusable flag setter")
	// ErrIndirectJump is returned for a jump whose target is not a
	// constant address.
	ErrIndirectJump = errors.New("jump target is not an immediate")
)

var condSymbols = map[instr.Opcode]string{
	instr.OpJe:    "==",
	instr.OpJne:   "!=",
	instr.OpJa:    ">",
	instr.OpJae:   ">=",
	instr.OpJb:    "<",
	instr.OpJbe:   "<=",
	instr.OpJg:    ">",
	instr.OpJge:   ">=",
	instr.OpJl:    "<",
	instr.OpJle:   "<=",
	instr.OpJs:    "<",
	instr.OpJns:   ">",
	instr.OpJp:    "% 2 ==",
	instr.OpJnp:   "% 2 !=",
	instr.OpJo:    "overflow",
	instr.OpJno:   "!overflow",
	instr.OpJcxz:  "cx ==",
	instr.OpJecxz: "ecx ==",
	instr.OpJrcxz: "rcx ==",
}

// implicitZero lists the conditions that compare against 0 when nothing
// else supplies a right-hand side.
var implicitZero = map[instr.Opcode]bool{
	instr.OpJs:    true,
	instr.OpJns:   true,
	instr.OpJp:    true,
	instr.OpJnp:   true,
	instr.OpJcxz:  true,
	instr.OpJecxz: true,
	instr.OpJrcxz: true,
}

// selfAssigning lists the flag setters that also write their first
// operand.
var selfAssigning = map[instr.Opcode]bool{
	instr.OpXor: true,
	instr.OpAnd: true,
	instr.OpOr:  true,
	instr.OpSar: true,
	instr.OpSal: true,
	instr.OpShr: true,
	instr.OpShl: true,
}

// CondSymbol returns the comparison operator of a conditional jump.
func CondSymbol(op instr.Opcode) string {
	if sym, ok := condSymbols[op]; ok {
		return sym
	}
	return op.String()
}

// Fusion pairs a flag-setting instruction with the conditional jump that
// directly follows it. The zero value is not usable; create fusions with
// NewFusion.
type Fusion struct {
	prev instr.Inst
	jump instr.Inst
}

// NewFusion checks that prev and jump can be rendered as one condition.
// The jump must start where prev ends, so no instruction in between can
// clobber the flags.
func NewFusion(prev, jump instr.Inst) (*Fusion, error) {
	if !jump.Op.IsCondJump() || !jump.Op.ReadsFlags() {
		return nil, fmt.Errorf("fuse %s at 0x%x: %w",
			jump.Op, jump.Address, ErrNotCondJump)
	}

	if len(jump.Operands) == 0 || jump.Operands[0].Kind != instr.KindImmediate {
		return nil, fmt.Errorf("fuse %s at 0x%x: %w",
			jump.Op, jump.Address, ErrIndirectJump)
	}

	if !isFlagSetter(prev) {
		return nil, fmt.Errorf("fuse %s at 0x%x: %w",
			prev.Op, prev.Address, ErrNotFlagSetter)
	}

	if prev.End() != jump.Address {
		return nil, fmt.Errorf("fuse 0x%x with 0x%x: %w",
			prev.Address, jump.Address, ErrNotAdjacent)
	}

	return &Fusion{prev: prev, jump: jump}, nil
}

func isFlagSetter(inst instr.Inst) bool {
	if len(inst.Operands) != 2 {
		return false
	}

	switch inst.Op {
	case instr.OpCmp, instr.OpTest:
		return true
	}

	return selfAssigning[inst.Op]
}

// Prev returns the flag-setting instruction.
func (f *Fusion) Prev() instr.Inst {
	return f.prev
}

// Jump returns the conditional jump.
func (f *Fusion) Jump() instr.Inst {
	return f.jump
}

// Condition writes the boolean expression tested by a conditional jump.
// Without a fusion only the comparison symbol is written.
func (t *Translator) Condition(
	w *token.Writer,
	env Env,
	jump instr.Opcode,
	fused *Fusion,
) {
	sym := CondSymbol(jump)

	if fused == nil {
		w.Operator(sym)
		if implicitZero[jump] {
			w.Text(" ")
			w.Literal("0")
		}
		return
	}

	prev := fused.prev
	isTest := prev.Op == instr.OpTest
	assignment := selfAssigning[prev.Op]

	if assignment || isTest {
		w.Text("(")
	}
	w.Text("(")
	t.Operand(w, env, prev, 0, Decimal, true)
	w.Text(" ")

	switch {
	case isTest:
		w.Operator(sym)
	case assignment:
		w.Operator(algebraicSymbols[prev.Op])
		w.Text(" ")
		t.Operand(w, env, prev, 1, Decimal, true)
		w.Text(") ")
		w.Operator(sym)
	default:
		w.Operator(sym)
		w.Text(" ")
		t.Operand(w, env, prev, 1, Decimal, true)
	}

	if isTest || (prev.Op != instr.OpCmp && (implicitZero[jump] || assignment)) {
		w.Text(" ")
		w.Literal("0")
	}

	w.Text(")")
	if isTest {
		w.Text(")")
	}
}
