package core

import (
	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/token"
)

// RepCounter is the register counted down by repeated string
// instructions. The address size is not consulted: 16- and 32-bit
// counters (cx, ecx) are not modeled and are also printed as rcx.
const RepCounter = instr.RCX

// RepState is the state of a RepLoop.
type RepState int

const (
	NotInLoop RepState = iota
	InLoop
)

func (s RepState) String() string {
	if s == InLoop {
		return "InLoop"
	}
	return "NotInLoop"
}

// Repeats reports whether inst is a string instruction carrying a REP or
// REPNE prefix.
func Repeats(inst instr.Inst) bool {
	if inst.Prefix == instr.PrefixNone {
		return false
	}
	family, _ := inst.Op.StringFamily()
	return family != instr.NotString
}

// RepLoop wraps a repeated string instruction in an explicit counted loop.
// Enter and Exit must be called in pairs around the loop body.
type RepLoop struct {
	state  RepState
	prefix instr.Prefix

	// Prefix writes the start of the counter-decrement line. Indentation
	// alone is used when it is nil.
	Prefix func(w *token.Writer, depth int)
}

// State returns the current state.
func (l *RepLoop) State() RepState {
	return l.state
}

// Enter opens the loop if inst repeats and returns the indentation depth
// of the loop body. Otherwise depth is returned unchanged.
func (l *RepLoop) Enter(w *token.Writer, inst instr.Inst, depth int) int {
	if l.state == InLoop || !Repeats(inst) {
		return depth
	}

	l.state = InLoop
	l.prefix = inst.Prefix

	w.Indent(depth)
	w.Keyword("while")
	w.Text(" (" + RepCounter.String() + " ")
	w.Operator("!=")
	w.Text(" ")
	w.Literal("0")
	w.Text(") {")
	w.Newline()

	return depth + 1
}

// Exit closes an open loop and returns the indentation depth after it.
// It does nothing when no loop is open.
func (l *RepLoop) Exit(w *token.Writer, inst instr.Inst, depth int) int {
	if l.state != InLoop {
		return depth
	}

	if l.Prefix != nil {
		l.Prefix(w, depth)
	} else {
		w.Indent(depth)
	}
	w.Text(RepCounter.String())
	w.Operator("--")
	w.Newline()

	if l.prefix == instr.PrefixRepne {
		w.Indent(depth)
		w.Keyword("if")
		w.Text(" (!ZeroFlag) ")
		w.Keyword("break")
		w.Newline()
	}

	depth--
	w.Indent(depth)
	w.Text("}")
	w.Newline()

	l.state = NotInLoop
	l.prefix = instr.PrefixNone

	return depth
}
