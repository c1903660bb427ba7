package instr

// Opcode is the semantic operation family of an instruction,
// independent of its operand encoding.
type Opcode int

const (
	OpOther Opcode = iota

	OpAdd
	OpSub
	OpMov
	OpCmp
	OpTest
	OpXor
	OpAnd
	OpOr
	OpNot
	OpNeg
	OpShr
	OpShl
	OpSar
	OpSal
	OpInc
	OpDec
	OpLea
	OpMovzx
	OpMovsx
	OpMovsxd
	OpCbw
	OpCwde
	OpCdqe
	OpMul
	OpImul
	OpDiv
	OpIdiv

	OpCall
	OpRet
	OpJmp

	OpJa
	OpJae
	OpJb
	OpJbe
	OpJe
	OpJne
	OpJg
	OpJge
	OpJl
	OpJle
	OpJs
	OpJns
	OpJp
	OpJnp
	OpJo
	OpJno
	OpJcxz
	OpJecxz
	OpJrcxz

	OpStosb
	OpStosw
	OpStosd
	OpStosq
	OpLodsb
	OpLodsw
	OpLodsd
	OpLodsq
	OpMovsb
	OpMovsw
	OpMovsd
	OpMovsq
	OpCmpsb
	OpCmpsw
	OpCmpsd
	OpCmpsq
	OpScasb
	OpScasw
	OpScasd
	OpScasq

	OpNop
	OpPush
	OpPop
	OpLeave

	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	OpOther: "other",
	OpAdd:   "add", OpSub: "sub", OpMov: "mov", OpCmp: "cmp", OpTest: "test",
	OpXor: "xor", OpAnd: "and", OpOr: "or", OpNot: "not", OpNeg: "neg",
	OpShr: "shr", OpShl: "shl", OpSar: "sar", OpSal: "sal",
	OpInc: "inc", OpDec: "dec", OpLea: "lea",
	OpMovzx: "movzx", OpMovsx: "movsx", OpMovsxd: "movsxd",
	OpCbw: "cbw", OpCwde: "cwde", OpCdqe: "cdqe",
	OpMul: "mul", OpImul: "imul", OpDiv: "div", OpIdiv: "idiv",
	OpCall: "call", OpRet: "ret", OpJmp: "jmp",
	OpJa: "ja", OpJae: "jae", OpJb: "jb", OpJbe: "jbe",
	OpJe: "je", OpJne: "jne", OpJg: "jg", OpJge: "jge",
	OpJl: "jl", OpJle: "jle", OpJs: "js", OpJns: "jns",
	OpJp: "jp", OpJnp: "jnp", OpJo: "jo", OpJno: "jno",
	OpJcxz: "jcxz", OpJecxz: "jecxz", OpJrcxz: "jrcxz",
	OpStosb: "stosb", OpStosw: "stosw", OpStosd: "stosd", OpStosq: "stosq",
	OpLodsb: "lodsb", OpLodsw: "lodsw", OpLodsd: "lodsd", OpLodsq: "lodsq",
	OpMovsb: "movsb", OpMovsw: "movsw", OpMovsd: "movsd", OpMovsq: "movsq",
	OpCmpsb: "cmpsb", OpCmpsw: "cmpsw", OpCmpsd: "cmpsd", OpCmpsq: "cmpsq",
	OpScasb: "scasb", OpScasw: "scasw", OpScasd: "scasd", OpScasq: "scasq",
	OpNop: "nop", OpPush: "push", OpPop: "pop", OpLeave: "leave",
}

var opcodeByName map[string]Opcode

func init() {
	opcodeByName = make(map[string]Opcode, numOpcodes)
	for op, name := range opcodeNames {
		opcodeByName[name] = Opcode(op)
	}
}

// OpcodeByName maps a lower-case mnemonic to its opcode, or OpOther.
func OpcodeByName(mnemonic string) Opcode {
	if op, ok := opcodeByName[mnemonic]; ok {
		return op
	}
	return OpOther
}

func (op Opcode) String() string {
	if op < 0 || op >= numOpcodes {
		return "other"
	}
	return opcodeNames[op]
}

// IsRet reports whether op returns from a procedure.
func (op Opcode) IsRet() bool { return op == OpRet }

// IsCall reports whether op is a procedure call.
func (op Opcode) IsCall() bool { return op == OpCall }

// IsCondJump reports whether op is a conditional branch.
func (op Opcode) IsCondJump() bool {
	return op >= OpJa && op <= OpJrcxz
}

// IsJump reports whether op is a conditional or unconditional branch.
func (op Opcode) IsJump() bool {
	return op == OpJmp || op.IsCondJump()
}

// ReadsFlags reports whether the conditional branch depends on the flags
// register. The counter branches test rcx/ecx/cx instead.
func (op Opcode) ReadsFlags() bool {
	return op.IsCondJump() && op != OpJcxz && op != OpJecxz && op != OpJrcxz
}

// StringFamily groups the string instructions.
type StringFamily int

const (
	NotString StringFamily = iota
	FamilyStos
	FamilyLods
	FamilyMovs
	FamilyCmps
	FamilyScas
)

// StringFamily returns the string-instruction family of op and the
// element width in bytes.
func (op Opcode) StringFamily() (StringFamily, int) {
	if op < OpStosb || op > OpScasq {
		return NotString, 0
	}
	idx := int(op - OpStosb)
	family := StringFamily(idx/4) + FamilyStos
	width := 1 << (idx % 4)
	return family, width
}
