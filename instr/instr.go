// Package instr defines the decoded instruction model consumed by the
// pseudo-C translator.
package instr

import (
	"fmt"
	"strings"
)

// Prefix is the repeat prefix carried by an instruction.
type Prefix int

const (
	PrefixNone Prefix = iota
	PrefixRep
	PrefixRepne
)

func (p Prefix) String() string {
	switch p {
	case PrefixRep:
		return "rep"
	case PrefixRepne:
		return "repne"
	default:
		return ""
	}
}

// Inst is one decoded machine instruction. It is owned by the decoder
// and only read by the translator.
type Inst struct {
	Address  uint64
	Mnemonic string
	// Text is the raw disassembly, "mnemonic op, op". It is printed as a
	// comment after rewritten statements.
	Text     string
	Operands []Operand
	Size     int
	Prefix   Prefix
	Op       Opcode
	Bytes    []byte
}

// End returns the address right after the instruction.
func (i Inst) End() uint64 {
	return i.Address + uint64(i.Size)
}

// NumOperands returns the operand count.
func (i Inst) NumOperands() int {
	return len(i.Operands)
}

// String returns the raw assembly text of the instruction.
func (i Inst) String() string {
	if i.Text != "" {
		return i.Text
	}

	var b strings.Builder
	if i.Prefix != PrefixNone {
		b.WriteString(i.Prefix.String())
		b.WriteByte(' ')
	}
	b.WriteString(i.Mnemonic)
	for k, op := range i.Operands {
		if k == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(formatOperand(op))
	}
	return b.String()
}

func formatOperand(op Operand) string {
	switch op.Kind {
	case KindImmediate:
		if op.Imm < 0 {
			return fmt.Sprintf("-0x%x", -op.Imm)
		}
		return fmt.Sprintf("0x%x", op.Imm)
	case KindRegister:
		return op.Reg.String()
	case KindFloat:
		return fmt.Sprintf("%f", op.FP)
	case KindMemory:
		m := op.Mem
		var parts []string
		if m.Base.Valid() {
			parts = append(parts, m.Base.String())
		}
		if m.Index.Valid() {
			parts = append(parts, fmt.Sprintf("%s*%d", m.Index, m.Scale))
		}
		s := strings.Join(parts, "+")
		switch {
		case m.Disp < 0:
			s += fmt.Sprintf("-0x%x", -m.Disp)
		case m.Disp > 0 && s != "":
			s += fmt.Sprintf("+0x%x", m.Disp)
		case m.Disp > 0 || s == "":
			s += fmt.Sprintf("0x%x", m.Disp)
		}
		if m.Segment.Valid() {
			return fmt.Sprintf("%s:[%s]", m.Segment, s)
		}
		return "[" + s + "]"
	default:
		return "?"
	}
}
