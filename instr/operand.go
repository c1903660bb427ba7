package instr

// OperandKind tags the variant held by an Operand.
type OperandKind int

const (
	KindInvalid OperandKind = iota
	KindImmediate
	KindRegister
	KindFloat
	KindMemory
)

func (k OperandKind) String() string {
	switch k {
	case KindImmediate:
		return "imm"
	case KindRegister:
		return "reg"
	case KindFloat:
		return "fp"
	case KindMemory:
		return "mem"
	default:
		return "invalid"
	}
}

// Memory is a memory reference: segment:[base + index*scale + disp].
// Absent registers are RegNone.
type Memory struct {
	Base    Reg
	Index   Reg
	Segment Reg
	Scale   int
	Disp    int64
}

// Operand is a decoded instruction operand. Only the fields matching
// Kind are meaningful.
type Operand struct {
	Kind OperandKind
	Size int // width in bytes

	Imm int64
	Reg Reg
	FP  float64
	Mem Memory
}

// Imm creates an immediate operand of the given byte width.
func Imm(value int64, size int) Operand {
	return Operand{Kind: KindImmediate, Imm: value, Size: size}
}

// RegOp creates a register operand.
func RegOp(r Reg) Operand {
	return Operand{Kind: KindRegister, Reg: r, Size: r.Size()}
}

// Float creates a floating point operand.
func Float(value float64) Operand {
	return Operand{Kind: KindFloat, FP: value, Size: 8}
}

// MemOp creates a memory operand accessing size bytes.
func MemOp(m Memory, size int) Operand {
	if m.Scale == 0 {
		m.Scale = 1
	}
	return Operand{Kind: KindMemory, Mem: m, Size: size}
}

// IsImm reports whether the operand is an immediate equal to v.
func (o Operand) IsImm(v int64) bool {
	return o.Kind == KindImmediate && o.Imm == v
}
