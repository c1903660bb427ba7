package core

import (
	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/token"
)

// stringOp describes how one string-instruction family is rendered.
type stringOp struct {
	compare bool
	// advance lists the pointer operands moved after every iteration,
	// in output order.
	advance []int
}

var stringOps = map[instr.StringFamily]stringOp{
	instr.FamilyStos: {advance: []int{0}},
	instr.FamilyLods: {advance: []int{1}},
	instr.FamilyMovs: {advance: []int{0, 1}},
	instr.FamilyCmps: {compare: true, advance: []int{0, 1}},
	instr.FamilyScas: {compare: true, advance: []int{1}},
}

// Direction is the symbolic per-iteration pointer step. Its sign follows
// the direction flag and its magnitude the element width.
const Direction = "D"

func stringOpOf(inst instr.Inst) (stringOp, bool) {
	family, _ := inst.Op.StringFamily()
	sop, ok := stringOps[family]
	if !ok || len(inst.Operands) != 2 {
		return stringOp{}, false
	}
	return sop, true
}

func (t *Translator) runStringOp(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	sop, ok := stringOpOf(inst)
	if !ok {
		return t.generic(w, env, inst)
	}

	t.Operand(w, env, inst, 0, Decimal, true)
	w.Text(" ")
	if sop.compare {
		w.Operator("cmp")
	} else {
		w.Operator("=")
	}
	w.Text(" ")
	t.Operand(w, env, inst, 1, Decimal, true)

	return Result{Modified: true}
}

// advancePointers writes one "ptr += D" line per pointer the string
// instruction moves. Other instructions write nothing.
func (t *Translator) advancePointers(
	w *token.Writer,
	env Env,
	inst instr.Inst,
	depth int,
) {
	sop, ok := stringOpOf(inst)
	if !ok {
		return
	}

	for _, idx := range sop.advance {
		t.linePrefix(w, inst, depth)
		t.Operand(w, env, inst, idx, Decimal, false)
		w.Text(" ")
		w.Operator("+=")
		w.Text(" ")
		w.Text(Direction)
		w.Newline()
	}
}
