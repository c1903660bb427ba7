// Package decode turns raw x86 machine code into the instruction model
// used by the translator.
package decode

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sarchlab/pseudoc/instr"
	"golang.org/x/arch/x86/x86asm"
)

// BadMnemonic is used for bytes that do not decode.
const BadMnemonic = "(bad)"

// SymLookup returns the symbol containing addr and its start address.
type SymLookup func(addr uint64) (string, uint64)

// Decoder decodes instructions for one processor mode.
type Decoder struct {
	mode   int
	symbol SymLookup
}

// New creates a decoder. Mode is 16, 32 or 64.
func New(mode int) (*Decoder, error) {
	switch mode {
	case 16, 32, 64:
	default:
		return nil, fmt.Errorf("unsupported processor mode %d", mode)
	}

	return &Decoder{mode: mode, symbol: noSymbol}, nil
}

// WithSymbols makes the raw instruction text use symbol names for
// branch targets.
func (d *Decoder) WithSymbols(lookup SymLookup) *Decoder {
	if lookup == nil {
		lookup = noSymbol
	}
	d.symbol = lookup
	return d
}

func noSymbol(uint64) (string, uint64) {
	return "", 0
}

// Decode decodes the instruction at the start of code, located at addr.
// Bytes that do not form a valid instruction become a one byte "(bad)"
// instruction so that a stream can always continue.
func (d *Decoder) Decode(code []byte, addr uint64) instr.Inst {
	inst, err := x86asm.Decode(code, d.mode)
	if err != nil || inst.Len == 0 || inst.Op == 0 {
		slog.Debug("DecodeFailed", "Address", addr, "Err", err)
		return badInst(code, addr)
	}

	mnemonic := mnemonicOf(inst.Op)

	out := instr.Inst{
		Address:  addr,
		Mnemonic: mnemonic,
		Text:     x86asm.IntelSyntax(inst, addr, x86asm.SymLookup(d.symbol)),
		Size:     inst.Len,
		Prefix:   repPrefix(inst),
		Op:       opcodeOf(inst.Op),
		Bytes:    append([]byte(nil), code[:inst.Len]...),
	}

	if family, width := out.Op.StringFamily(); family != instr.NotString {
		out.Operands = stringOperands(family, width, inst.AddrSize)
		return out
	}

	for _, arg := range inst.Args {
		if arg == nil {
			break
		}
		out.Operands = append(out.Operands, d.operand(inst, addr, arg))
	}

	return out
}

// All decodes code from start to end.
func (d *Decoder) All(code []byte, addr uint64) []instr.Inst {
	var insts []instr.Inst

	for off := 0; off < len(code); {
		inst := d.Decode(code[off:], addr+uint64(off))
		insts = append(insts, inst)
		off += inst.Size
	}

	return insts
}

func badInst(code []byte, addr uint64) instr.Inst {
	inst := instr.Inst{
		Address:  addr,
		Mnemonic: BadMnemonic,
		Text:     BadMnemonic,
		Size:     1,
		Op:       instr.OpOther,
	}
	if len(code) > 0 {
		inst.Bytes = []byte{code[0]}
	}
	return inst
}

// mnemonicOf returns the lower-case mnemonic. Variants that share a
// mnemonic, such as MOVSD_XMM, lose their suffix.
func mnemonicOf(op x86asm.Op) string {
	name := strings.ToLower(op.String())
	if i := strings.IndexByte(name, '_'); i > 0 {
		name = name[:i]
	}
	return name
}

func opcodeOf(op x86asm.Op) instr.Opcode {
	name := strings.ToLower(op.String())
	if strings.ContainsRune(name, '_') {
		return instr.OpOther
	}
	return instr.OpcodeByName(name)
}

func repPrefix(inst x86asm.Inst) instr.Prefix {
	for _, p := range inst.Prefix {
		if p == 0 {
			break
		}
		if p&x86asm.PrefixIgnored != 0 {
			continue
		}
		switch p & 0xFF {
		case x86asm.PrefixREP:
			return instr.PrefixRep
		case x86asm.PrefixREPN:
			return instr.PrefixRepne
		}
	}
	return instr.PrefixNone
}

func (d *Decoder) operand(inst x86asm.Inst, pc uint64, arg x86asm.Arg) instr.Operand {
	switch a := arg.(type) {
	case x86asm.Reg:
		r := Reg(a)
		op := instr.RegOp(r)
		if op.Size == 0 {
			op.Size = inst.DataSize / 8
		}
		return op
	case x86asm.Mem:
		return instr.MemOp(instr.Memory{
			Base:    Reg(a.Base),
			Index:   Reg(a.Index),
			Segment: Reg(a.Segment),
			Scale:   int(a.Scale),
			Disp:    a.Disp,
		}, inst.MemBytes)
	case x86asm.Imm:
		return instr.Imm(int64(a), immSize(inst))
	case x86asm.Rel:
		target := int64(pc) + int64(inst.Len) + int64(a)
		return instr.Imm(target, d.mode/8)
	}

	slog.Debug("UnknownOperand", "Arg", fmt.Sprintf("%T", arg))
	return instr.Operand{}
}

// immSize is the width of the destination, which is the width the
// immediate is extended to.
func immSize(inst x86asm.Inst) int {
	switch dst := inst.Args[0].(type) {
	case x86asm.Reg:
		if size := Reg(dst).Size(); size > 0 {
			return size
		}
	case x86asm.Mem:
		if inst.MemBytes > 0 {
			return inst.MemBytes
		}
	}
	return inst.DataSize / 8
}
