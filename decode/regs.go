package decode

import (
	"strings"

	"github.com/sarchlab/pseudoc/instr"
	"golang.org/x/arch/x86/x86asm"
)

// regAliases maps x86asm register names that differ from the usual
// assembler spelling.
var regAliases = map[string]string{
	"spb": "spl",
	"bpb": "bpl",
	"sib": "sil",
	"dib": "dil",
}

// Reg converts an x86asm register. Unknown registers map to RegNone.
func Reg(r x86asm.Reg) instr.Reg {
	if r == 0 {
		return instr.RegNone
	}

	name := regName(strings.ToLower(r.String()))
	if reg, ok := instr.RegByName(name); ok {
		return reg
	}

	return instr.RegNone
}

func regName(name string) string {
	if alias, ok := regAliases[name]; ok {
		return alias
	}

	if len(name) < 2 {
		return name
	}

	num := name[1:]
	if !isDigits(num) {
		// r8l..r15l are the 32-bit halves.
		if name[0] == 'r' && strings.HasSuffix(name, "l") && isDigits(name[1:len(name)-1]) {
			return name[:len(name)-1] + "d"
		}
		return name
	}

	switch name[0] {
	case 'f':
		return "st" + num
	case 'm':
		return "mm" + num
	case 'x':
		return "xmm" + num
	case 'y':
		return "ymm" + num
	}

	return name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Pointer and accumulator registers by address or operand width.
var (
	srcIndex = map[int]instr.Reg{2: instr.SI, 4: instr.ESI, 8: instr.RSI}
	dstIndex = map[int]instr.Reg{2: instr.DI, 4: instr.EDI, 8: instr.RDI}
	accum    = map[int]instr.Reg{
		1: instr.AL, 2: instr.AX, 4: instr.EAX, 8: instr.RAX,
	}
)

// stringOperands builds the implicit operands of a string instruction
// in the order the translator expects:
//
//	stos  [dst], acc
//	lods  acc, [src]
//	movs  [dst], [src]
//	cmps  [src], [dst]
//	scas  acc, [dst]
func stringOperands(family instr.StringFamily, width, addrSize int) []instr.Operand {
	ptrSize := addrSize / 8
	if _, ok := srcIndex[ptrSize]; !ok {
		ptrSize = 8
	}

	src := instr.MemOp(instr.Memory{Base: srcIndex[ptrSize]}, width)
	dst := instr.MemOp(instr.Memory{Base: dstIndex[ptrSize]}, width)
	acc := instr.RegOp(accum[width])

	switch family {
	case instr.FamilyStos:
		return []instr.Operand{dst, acc}
	case instr.FamilyLods:
		return []instr.Operand{acc, src}
	case instr.FamilyMovs:
		return []instr.Operand{dst, src}
	case instr.FamilyCmps:
		return []instr.Operand{src, dst}
	case instr.FamilyScas:
		return []instr.Operand{acc, dst}
	}

	return nil
}
