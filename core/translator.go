// Package core translates decoded x86 instructions into pseudo-C
// statements.
package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/snapshot"
	"github.com/sarchlab/pseudoc/token"
)

// HookPosInstTranslated marks when an instruction has been rendered. The
// hook item is the instr.Inst and the detail is its Result.
var HookPosInstTranslated = &sim.HookPos{Name: "Inst Translated"}

// Base selects how plain immediates are printed.
type Base int

const (
	Decimal Base = iota
	Hex
)

// Options controls the translator output.
type Options struct {
	Comments     bool
	SectionNames bool
	Addresses    bool
	RawBytes     bool
	MaxDataSize  int
}

// Env bundles the read-only knowledge about the binary used for one
// translation. Nil members behave like empty tables.
type Env struct {
	Symbols  snapshot.SymbolTable
	Sections snapshot.SectionMap
	Labels   snapshot.LabelSet
	Vars     snapshot.VariableNamer
}

// EnvFrom uses s for all four lookups.
func EnvFrom(s *snapshot.Snapshot) Env {
	if s == nil {
		return Env{}
	}
	return Env{Symbols: s, Sections: s, Labels: s, Vars: s}
}

func (e Env) symbol(addr uint64) (string, bool) {
	if e.Symbols == nil {
		return "", false
	}
	return e.Symbols.Symbol(addr)
}

func (e Env) label(addr uint64) (string, bool) {
	if e.Labels == nil {
		return "", false
	}
	return e.Labels.Label(addr)
}

func (e Env) section(addr uint64) (string, bool, bool) {
	if e.Sections == nil {
		return "", false, false
	}
	return e.Sections.Section(addr)
}

func (e Env) preview(addr uint64, limit int) string {
	if e.Sections == nil {
		return ""
	}
	return e.Sections.Preview(addr, limit)
}

func (e Env) variable(inst instr.Inst, idx int) (string, bool) {
	if e.Vars == nil {
		return "", false
	}
	return e.Vars.Variable(inst, idx)
}

// Result describes a translated instruction.
type Result struct {
	// Modified is set when the output differs from the raw assembly text.
	Modified bool
	// Unresolved is set for branches whose target is not an immediate.
	Unresolved bool
}

// Translator renders instructions as pseudo-C. It holds no per-call
// state, so one translator may serve concurrent translations.
type Translator struct {
	*sim.HookableBase

	opts Options
}

// Options returns the translator configuration.
func (t *Translator) Options() Options {
	return t.opts
}

// Translate writes the full line block of inst at the given indentation:
// the repeat loop header, the statement, the raw instruction comment,
// pointer advances and the loop footer. Every line ends with a newline.
// A fusion that does not belong to inst is ignored.
func (t *Translator) Translate(
	w *token.Writer,
	env Env,
	inst instr.Inst,
	fused *Fusion,
	depth int,
) Result {
	if fused != nil && fused.jump.Address != inst.Address {
		Trace("FusionIgnored",
			"Jump", inst.Address, "FusedJump", fused.jump.Address)
		fused = nil
	}

	loop := RepLoop{
		Prefix: func(w *token.Writer, depth int) {
			t.linePrefix(w, inst, depth)
		},
	}

	depth = loop.Enter(w, inst, depth)

	t.linePrefix(w, inst, depth)
	res := t.Statement(w, env, inst, fused)
	if res.Modified && t.opts.Comments {
		raw := inst.String()
		if fused != nil {
			raw = fused.prev.String() + "; " + raw
		}
		w.Comment(" # " + raw)
	}
	w.Newline()

	t.advancePointers(w, env, inst, depth)

	loop.Exit(w, inst, depth)

	LogInst(inst, res)
	t.InvokeHook(sim.HookCtx{
		Domain: t,
		Pos:    HookPosInstTranslated,
		Item:   inst,
		Detail: res,
	})

	return res
}

func (t *Translator) linePrefix(w *token.Writer, inst instr.Inst, depth int) {
	w.Indent(depth)
	if t.opts.Addresses {
		w.Address(fmt.Sprintf("0x%x: ", inst.Address))
	}
	if t.opts.RawBytes {
		w.Bytes(fmt.Sprintf("%-24x ", inst.Bytes))
	}
}

type instFunc func(
	t *Translator,
	w *token.Writer,
	env Env,
	inst instr.Inst,
	fused *Fusion,
) Result

// instFuncs maps every opcode with a dedicated rendering. Anything else
// goes through runFallback, so the dispatch is total.
var instFuncs map[instr.Opcode]instFunc

func init() {
	instFuncs = map[instr.Opcode]instFunc{
		instr.OpRet:  (*Translator).runRet,
		instr.OpCall: (*Translator).runCall,
		instr.OpJmp:  (*Translator).runJump,

		instr.OpOr:  (*Translator).runOr,
		instr.OpAnd: (*Translator).runAnd,
		instr.OpXor: (*Translator).runXor,
		instr.OpInc: (*Translator).runIncDec,
		instr.OpDec: (*Translator).runIncDec,
		instr.OpLea: (*Translator).runLea,
		instr.OpNot: (*Translator).runNot,
		instr.OpNeg: (*Translator).runNeg,

		instr.OpMovzx:  (*Translator).runExtend,
		instr.OpMovsx:  (*Translator).runExtend,
		instr.OpMovsxd: (*Translator).runExtend,
		instr.OpCbw:    (*Translator).runAccExtend,
		instr.OpCwde:   (*Translator).runAccExtend,
		instr.OpCdqe:   (*Translator).runAccExtend,

		instr.OpImul: (*Translator).runImul,
		instr.OpMul:  (*Translator).runMul,
		instr.OpDiv:  (*Translator).runDiv,
		instr.OpIdiv: (*Translator).runDiv,
	}

	for op := instr.OpJa; op <= instr.OpJrcxz; op++ {
		instFuncs[op] = (*Translator).runJump
	}
	for op := instr.OpStosb; op <= instr.OpScasq; op++ {
		instFuncs[op] = (*Translator).runStringOp
	}
}

// Statement writes the primary statement of inst without line prefix or
// newline.
func (t *Translator) Statement(
	w *token.Writer,
	env Env,
	inst instr.Inst,
	fused *Fusion,
) Result {
	if fn, ok := instFuncs[inst.Op]; ok {
		return fn(t, w, env, inst, fused)
	}
	return t.runFallback(w, env, inst, fused)
}

// algebraicSymbols holds the compound-assignment operator of the two
// operand forms "dst OP src".
var algebraicSymbols = map[instr.Opcode]string{
	instr.OpMov:  "=",
	instr.OpAdd:  "+=",
	instr.OpSub:  "-=",
	instr.OpCmp:  "cmp",
	instr.OpXor:  "^=",
	instr.OpAnd:  "&=",
	instr.OpOr:   "|=",
	instr.OpShr:  ">>=",
	instr.OpShl:  "<<=",
	instr.OpSar:  ">>=",
	instr.OpSal:  "<<=",
	instr.OpImul: "*=",
	instr.OpInc:  "++",
	instr.OpDec:  "--",
}

func (t *Translator) runRet(
	w *token.Writer, _ Env, _ instr.Inst, _ *Fusion,
) Result {
	w.Keyword("return")
	return Result{}
}

func (t *Translator) runCall(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) == 0 {
		return t.runFallback(w, env, inst, fused)
	}

	w.Keyword("call")
	w.Text(" ")
	modified := t.Operand(w, env, inst, 0, Hex, true)

	return Result{Modified: modified}
}

func (t *Translator) runJump(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) == 0 {
		return t.runFallback(w, env, inst, fused)
	}

	target := inst.Operands[0]

	if fused != nil && inst.Op.IsCondJump() && target.Kind == instr.KindImmediate {
		w.Keyword("if")
		w.Text(" ")
		t.Condition(w, env, inst.Op, fused)
		w.Text(" ")
		w.Keyword("goto")
		w.Text(" ")
		t.jumpTarget(w, env, uint64(target.Imm))
		return Result{Modified: true}
	}

	w.Text(inst.Mnemonic + " ")

	if target.Kind != instr.KindImmediate {
		t.Operand(w, env, inst, 0, Decimal, true)
		if inst.Op == instr.OpJmp && t.opts.Comments {
			w.Comment(" # STOPPED")
		}
		return Result{Unresolved: true}
	}

	t.jumpTarget(w, env, uint64(target.Imm))

	return Result{}
}

func (t *Translator) jumpTarget(w *token.Writer, env Env, addr uint64) {
	if name, ok := env.label(addr); ok {
		w.Label(name)
		return
	}
	w.Literal(fmt.Sprintf("0x%x", addr))
}

func (t *Translator) runOr(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) == 2 && inst.Operands[1].IsImm(-1) {
		return t.assignConst(w, env, inst, "-1")
	}
	return t.runFallback(w, env, inst, fused)
}

func (t *Translator) runAnd(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) == 2 && inst.Operands[1].IsImm(0) {
		return t.assignConst(w, env, inst, "0")
	}
	return t.runFallback(w, env, inst, fused)
}

func (t *Translator) runXor(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if isSelfRegister(inst) {
		return t.assignConst(w, env, inst, "0")
	}
	return t.runFallback(w, env, inst, fused)
}

// isSelfRegister reports whether all operands are the same register.
func isSelfRegister(inst instr.Inst) bool {
	if len(inst.Operands) < 2 {
		return false
	}
	first := inst.Operands[0]
	for _, op := range inst.Operands {
		if op.Kind != instr.KindRegister || op.Reg != first.Reg {
			return false
		}
	}
	return true
}

func (t *Translator) assignConst(
	w *token.Writer, env Env, inst instr.Inst, value string,
) Result {
	t.Operand(w, env, inst, 0, Decimal, true)
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Literal(value)
	return Result{Modified: true}
}

func (t *Translator) runIncDec(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) != 1 {
		return t.runFallback(w, env, inst, fused)
	}

	t.Operand(w, env, inst, 0, Decimal, true)
	w.Operator(algebraicSymbols[inst.Op])

	return Result{Modified: true}
}

func (t *Translator) runLea(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) != 2 {
		return t.runFallback(w, env, inst, fused)
	}

	t.Operand(w, env, inst, 0, Decimal, true)
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Operator("&(")
	t.Operand(w, env, inst, 1, Decimal, true)
	w.Operator(")")

	return Result{Modified: true}
}

func (t *Translator) runNot(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) != 1 {
		return t.runFallback(w, env, inst, fused)
	}

	t.Operand(w, env, inst, 0, Decimal, true)
	w.Text(" ")
	w.Operator("^=")
	w.Text(" ")
	w.Literal("-1")

	return Result{Modified: true}
}

func (t *Translator) runNeg(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) != 1 {
		return t.runFallback(w, env, inst, fused)
	}

	t.Operand(w, env, inst, 0, Decimal, true)
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Operator("-")
	t.Operand(w, env, inst, 0, Decimal, true)

	return Result{Modified: true}
}

func (t *Translator) runExtend(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) != 2 {
		return t.runFallback(w, env, inst, fused)
	}

	cast := "(sign ext)"
	if inst.Op == instr.OpMovzx {
		cast = "(zero ext)"
	}

	t.Operand(w, env, inst, 0, Decimal, true)
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Keyword(cast)
	w.Text(" ")
	t.Operand(w, env, inst, 1, Decimal, true)

	return Result{Modified: true}
}

var accExtend = map[instr.Opcode][2]instr.Reg{
	instr.OpCbw:  {instr.AX, instr.AL},
	instr.OpCwde: {instr.EAX, instr.AX},
	instr.OpCdqe: {instr.RAX, instr.EAX},
}

func (t *Translator) runAccExtend(
	w *token.Writer, _ Env, inst instr.Inst, _ *Fusion,
) Result {
	regs := accExtend[inst.Op]

	w.Text(regs[0].String())
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Text(regs[1].String())

	return Result{Modified: true}
}

// accumulatorPair holds the (narrow, wide) accumulator names used by
// one-operand multiply and divide, keyed by operand width.
var accumulatorPair = map[int][2]string{
	1: {"al", "ax"},
	2: {"ax", "dx:ax"},
	4: {"eax", "edx:eax"},
	8: {"rax", "rdx:rax"},
}

// remainderReg is where one-operand divide leaves the remainder.
var remainderReg = map[int]string{
	1: "ah",
	2: "dx",
	4: "edx",
	8: "rdx",
}

func (t *Translator) runImul(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	switch len(inst.Operands) {
	case 3:
		t.Operand(w, env, inst, 0, Decimal, true)
		w.Text(" ")
		w.Operator("=")
		w.Text(" ")
		t.Operand(w, env, inst, 1, Decimal, true)
		w.Text(" ")
		w.Operator("*")
		w.Text(" ")
		t.Operand(w, env, inst, 2, Decimal, true)
		return Result{Modified: true}
	case 2:
		t.Operand(w, env, inst, 0, Decimal, true)
		w.Text(" ")
		w.Operator("*=")
		w.Text(" ")
		t.Operand(w, env, inst, 1, Decimal, true)
		return Result{Modified: true}
	case 1:
		return t.runMul(w, env, inst, fused)
	}
	return t.runFallback(w, env, inst, fused)
}

func (t *Translator) runMul(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) != 1 {
		return t.runFallback(w, env, inst, fused)
	}

	pair, ok := accumulatorPair[inst.Operands[0].Size]
	if !ok {
		Trace("UnsupportedOperandWidth",
			"Address", inst.Address, "Width", inst.Operands[0].Size)
		return t.runFallback(w, env, inst, fused)
	}

	w.Text(pair[1])
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Text(pair[0])
	w.Text(" ")
	w.Operator("*")
	w.Text(" ")
	t.Operand(w, env, inst, 0, Decimal, true)

	return Result{Modified: true}
}

func (t *Translator) runDiv(
	w *token.Writer, env Env, inst instr.Inst, fused *Fusion,
) Result {
	if len(inst.Operands) != 1 {
		return t.runFallback(w, env, inst, fused)
	}

	size := inst.Operands[0].Size
	pair, ok := accumulatorPair[size]
	if !ok {
		Trace("UnsupportedOperandWidth",
			"Address", inst.Address, "Width", size)
		return t.runFallback(w, env, inst, fused)
	}

	w.Text(pair[0])
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Text(pair[1])
	w.Text(" ")
	w.Operator("/")
	w.Text(" ")
	t.Operand(w, env, inst, 0, Decimal, true)
	w.Text("; ")
	w.Text(remainderReg[size])
	w.Text(" ")
	w.Operator("=")
	w.Text(" ")
	w.Text(pair[1])
	w.Text(" ")
	w.Operator("%")
	w.Text(" ")
	t.Operand(w, env, inst, 0, Decimal, true)

	return Result{Modified: true}
}

// runFallback renders "dst OP src" for opcodes with an algebraic symbol
// and "mnemonic op1, op2, ..." for everything else.
func (t *Translator) runFallback(
	w *token.Writer, env Env, inst instr.Inst, _ *Fusion,
) Result {
	if sym, ok := algebraicSymbols[inst.Op]; ok && len(inst.Operands) == 2 {
		t.Operand(w, env, inst, 0, Decimal, true)
		w.Text(" ")
		w.Operator(sym)
		w.Text(" ")
		t.Operand(w, env, inst, 1, Decimal, true)
		return Result{Modified: true}
	}

	return t.generic(w, env, inst)
}

func (t *Translator) generic(w *token.Writer, env Env, inst instr.Inst) Result {
	mnemonic := inst.Mnemonic
	if mnemonic == "" {
		mnemonic = inst.Op.String()
	}
	w.Text(mnemonic)

	modified := false
	for k := range inst.Operands {
		if k == 0 {
			w.Text(" ")
		} else {
			w.Text(", ")
		}
		if t.Operand(w, env, inst, k, Decimal, true) {
			modified = true
		}
	}

	return Result{Modified: modified}
}
