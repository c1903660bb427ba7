package core

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/snapshot"
	"github.com/sarchlab/pseudoc/token"
)

// Operand writes operand idx of inst. It returns true when the text is
// not a lexical echo of the disassembly syntax, in which case callers
// print the raw instruction as a comment. Memory operands are wrapped in
// "*( )" when deref is set.
func (t *Translator) Operand(
	w *token.Writer,
	env Env,
	inst instr.Inst,
	idx int,
	base Base,
	deref bool,
) bool {
	if idx < 0 || idx >= len(inst.Operands) {
		Trace("OperandOutOfRange", "Address", inst.Address, "Index", idx)
		return false
	}

	op := inst.Operands[idx]

	switch op.Kind {
	case instr.KindImmediate:
		return t.immediate(w, env, inst, op, base)
	case instr.KindRegister:
		w.Text(op.Reg.String())
		return false
	case instr.KindFloat:
		w.Literal(strconv.FormatFloat(op.FP, 'f', 6, 64))
		return false
	case instr.KindMemory:
		return t.memory(w, env, inst, idx, op.Mem, deref)
	}

	w.Text("?")
	return false
}

func (t *Translator) immediate(
	w *token.Writer,
	env Env,
	inst instr.Inst,
	op instr.Operand,
	base Base,
) bool {
	addr := uint64(op.Imm)

	if secName, isData, ok := env.section(addr); ok {
		return t.address(w, env, addr, secName, isData)
	}

	switch {
	case op.Size == 1:
		w.Literal(charLiteral(byte(op.Imm)))
		return false
	case base == Hex:
		w.Literal(hexLiteral(op.Imm))
		return false
	}

	w.Literal(strconv.FormatInt(op.Imm, 10))

	if op.Imm <= 0 {
		return true
	}

	var packed []byte
	switch op.Size {
	case 4:
		packed = binary.LittleEndian.AppendUint32(nil, uint32(op.Imm))
	case 8:
		packed = binary.LittleEndian.AppendUint64(nil, uint64(op.Imm))
	default:
		Trace("UnsupportedOperandWidth",
			"Address", inst.Address, "Width", op.Size)
		return true
	}

	for _, c := range packed {
		if !snapshot.IsPrintable(c) {
			return true
		}
	}

	w.Comment(` "` + snapshot.EscapeBytes(packed) + `"`)

	return false
}

// address writes an immediate that falls inside a known section.
func (t *Translator) address(
	w *token.Writer,
	env Env,
	addr uint64,
	secName string,
	isData bool,
) bool {
	if t.opts.SectionNames {
		w.Text("(")
		w.Section(secName)
		w.Text(") ")
	}

	modified := false
	if name, ok := env.symbol(addr); ok {
		w.Symbol(name)
		modified = true
	} else if name, ok := env.label(addr); ok {
		w.Label(name)
		modified = true
	} else {
		w.Literal(fmt.Sprintf("0x%x", addr))
	}

	if isData {
		if s := env.preview(addr, t.opts.MaxDataSize); s != "" {
			w.Text(" ")
			w.StringLit(`"` + s + `"`)
		}
	}

	return modified
}

func (t *Translator) memory(
	w *token.Writer,
	env Env,
	inst instr.Inst,
	idx int,
	m instr.Memory,
	deref bool,
) bool {
	if m.Base != instr.RegNone && m.Disp != 0 &&
		m.Segment == instr.RegNone && m.Index == instr.RegNone {
		if m.Base.IsFramePointer() {
			if name, ok := env.variable(inst, idx); ok {
				w.Variable(name)
				return true
			}
		}

		if m.Base.IsInstructionPointer() {
			target := uint64(int64(inst.End()) + m.Disp)
			w.Operator("*(")
			t.symbolOrHex(w, env, target)
			w.Operator(")")
			return true
		}
	}

	if deref {
		w.Operator("*(")
	}

	printed := false

	switch {
	case m.Base != instr.RegNone:
		w.Text(m.Base.String())
		printed = true
	case m.Segment != instr.RegNone:
		w.Text(m.Segment.String())
		printed = true
	}

	if m.Index != instr.RegNone {
		if printed {
			w.Text(" ")
			w.Operator("+")
			w.Text(" ")
		}
		if m.Scale <= 1 {
			w.Text(m.Index.String())
		} else {
			w.Text("(" + m.Index.String())
			w.Operator("*")
			w.Literal(strconv.Itoa(m.Scale))
			w.Text(")")
		}
		printed = true
	}

	t.displacement(w, env, m.Disp, printed)

	if deref {
		w.Operator(")")
	}

	return true
}

func (t *Translator) displacement(
	w *token.Writer,
	env Env,
	disp int64,
	printed bool,
) {
	if disp != 0 {
		if _, _, ok := env.section(uint64(disp)); ok {
			if printed {
				w.Text(" ")
				w.Operator("+")
				w.Text(" ")
			}
			t.symbolOrHex(w, env, uint64(disp))
			return
		}
	}

	switch {
	case !printed:
		w.Literal(strconv.FormatInt(disp, 10))
	case disp < 0:
		w.Text(" ")
		w.Operator("-")
		w.Text(" ")
		w.Literal(strconv.FormatUint(uint64(-disp), 10))
	case disp > 0:
		w.Text(" ")
		w.Operator("+")
		w.Text(" ")
		w.Literal(strconv.FormatInt(disp, 10))
	}
}

func (t *Translator) symbolOrHex(w *token.Writer, env Env, addr uint64) {
	if name, ok := env.symbol(addr); ok {
		w.Symbol(name)
		return
	}
	w.Literal(fmt.Sprintf("0x%x", addr))
}

func hexLiteral(v int64) string {
	if v < 0 {
		return "-0x" + strconv.FormatUint(uint64(-v), 16)
	}
	return "0x" + strconv.FormatUint(uint64(v), 16)
}

func charLiteral(c byte) string {
	switch c {
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	}
	return "'" + snapshot.EscapeByte(c) + "'"
}
