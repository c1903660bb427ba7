package instr

import (
	"strconv"
	"strings"
)

// Reg identifies a machine register. The zero value means "no register".
type Reg int

// RegNone marks an absent base, index or segment register.
const RegNone Reg = 0

// General purpose, pointer and segment registers that the translator
// needs to name directly. Every other register is reached through
// RegByName.
const (
	RAX Reg = iota + 1
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15

	EAX
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI

	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI

	AL
	CL
	DL
	BL
	AH
	CH
	DH
	BH

	ES
	CS
	SS
	DS
	FS
	GS

	RIP
	EIP
	IP

	numFixedRegs
)

var fixedRegNames = [...]string{
	RAX: "rax", RCX: "rcx", RDX: "rdx", RBX: "rbx",
	RSP: "rsp", RBP: "rbp", RSI: "rsi", RDI: "rdi",
	R8: "r8", R9: "r9", R10: "r10", R11: "r11",
	R12: "r12", R13: "r13", R14: "r14", R15: "r15",
	EAX: "eax", ECX: "ecx", EDX: "edx", EBX: "ebx",
	ESP: "esp", EBP: "ebp", ESI: "esi", EDI: "edi",
	AX: "ax", CX: "cx", DX: "dx", BX: "bx",
	SP: "sp", BP: "bp", SI: "si", DI: "di",
	AL: "al", CL: "cl", DL: "dl", BL: "bl",
	AH: "ah", CH: "ch", DH: "dh", BH: "bh",
	ES: "es", CS: "cs", SS: "ss", DS: "ds", FS: "fs", GS: "gs",
	RIP: "rip", EIP: "eip", IP: "ip",
}

// regNames holds every register name, indexed by Reg. The fixed
// registers come first, the rest are appended in init.
var regNames []string

var regByName map[string]Reg

var regSizes map[Reg]int

func init() {
	regNames = make([]string, numFixedRegs)
	copy(regNames, fixedRegNames[:])
	regSizes = make(map[Reg]int)

	for r := RAX; r <= R15; r++ {
		regSizes[r] = 8
	}
	for r := EAX; r <= EDI; r++ {
		regSizes[r] = 4
	}
	for r := AX; r <= DI; r++ {
		regSizes[r] = 2
	}
	for r := AL; r <= BH; r++ {
		regSizes[r] = 1
	}
	for r := ES; r <= GS; r++ {
		regSizes[r] = 2
	}
	regSizes[RIP] = 8
	regSizes[EIP] = 4
	regSizes[IP] = 2

	add := func(name string, size int) {
		regNames = append(regNames, name)
		regSizes[Reg(len(regNames)-1)] = size
	}

	for n := 8; n <= 15; n++ {
		num := strconv.Itoa(n)
		add("r"+num+"d", 4)
		add("r"+num+"w", 2)
		add("r"+num+"b", 1)
	}
	for _, name := range []string{"spl", "bpl", "sil", "dil"} {
		add(name, 1)
	}
	for n := 0; n < 8; n++ {
		add("st"+strconv.Itoa(n), 10)
		add("mm"+strconv.Itoa(n), 8)
	}
	for n := 0; n < 16; n++ {
		add("xmm"+strconv.Itoa(n), 16)
		add("ymm"+strconv.Itoa(n), 32)
	}
	for n := 0; n < 16; n++ {
		add("cr"+strconv.Itoa(n), 8)
	}
	for n := 0; n < 8; n++ {
		add("dr"+strconv.Itoa(n), 8)
	}

	regByName = make(map[string]Reg, len(regNames))
	for i, name := range regNames {
		if name != "" {
			regByName[name] = Reg(i)
		}
	}
}

// RegByName returns the register with the given (case-insensitive) name.
func RegByName(name string) (Reg, bool) {
	r, ok := regByName[strings.ToLower(name)]
	return r, ok
}

// String returns the lower-case assembler name of the register.
func (r Reg) String() string {
	if r <= RegNone || int(r) >= len(regNames) {
		return "?"
	}
	return regNames[r]
}

// Valid reports whether the register is present.
func (r Reg) Valid() bool {
	return r > RegNone && int(r) < len(regNames)
}

// Size returns the register width in bytes, or 0 if unknown.
func (r Reg) Size() int {
	return regSizes[r]
}

// IsFramePointer reports whether r is rbp, ebp or bp.
func (r Reg) IsFramePointer() bool {
	return r == RBP || r == EBP || r == BP
}

// IsInstructionPointer reports whether r is rip, eip or ip.
func (r Reg) IsInstructionPointer() bool {
	return r == RIP || r == EIP || r == IP
}
