// Package snapshot provides the read-only knowledge about a binary that
// the translator consults: symbols, sections, labels and stack variable
// names.
package snapshot

import (
	"sort"
	"strings"

	"github.com/sarchlab/pseudoc/instr"
)

// SymbolTable maps addresses to symbol names.
type SymbolTable interface {
	Symbol(addr uint64) (string, bool)
}

// SectionMap tells which section an address belongs to.
type SectionMap interface {
	// Section returns the name of the section containing addr and whether
	// it holds data. ok is false when addr is not inside any section.
	Section(addr uint64) (name string, isData bool, ok bool)

	// Preview returns at most limit printable characters stored at addr,
	// already escaped. It returns "" when there is nothing printable.
	Preview(addr uint64, limit int) string
}

// LabelSet holds the branch targets that need a label.
type LabelSet interface {
	Label(addr uint64) (string, bool)
}

// VariableNamer names frame-relative memory operands.
type VariableNamer interface {
	Variable(inst instr.Inst, operand int) (string, bool)
}

// Section is a contiguous address range of a binary.
type Section struct {
	Name   string
	Start  uint64
	Size   uint64
	IsData bool
	Data   []byte
}

// Contains reports whether addr falls inside the section.
func (s Section) Contains(addr uint64) bool {
	return addr >= s.Start && addr-s.Start < s.Size
}

type varKey struct {
	addr    uint64
	operand int
}

// Snapshot is an immutable, in-memory view of a binary. It implements
// all four lookup interfaces and is safe for concurrent reads.
type Snapshot struct {
	sections []Section
	symbols  map[uint64]string
	labels   map[uint64]string
	vars     map[varKey]string
}

// Builder collects the contents of a Snapshot.
type Builder struct {
	sections []Section
	symbols  map[uint64]string
	labels   map[uint64]string
	vars     map[varKey]string
}

// NewBuilder creates an empty snapshot builder.
func NewBuilder() *Builder {
	return &Builder{
		symbols: make(map[uint64]string),
		labels:  make(map[uint64]string),
		vars:    make(map[varKey]string),
	}
}

// WithSection adds a section.
func (b *Builder) WithSection(s Section) *Builder {
	if s.Size == 0 {
		s.Size = uint64(len(s.Data))
	}
	b.sections = append(b.sections, s)
	return b
}

// WithSymbol names an address.
func (b *Builder) WithSymbol(addr uint64, name string) *Builder {
	b.symbols[addr] = name
	return b
}

// WithLabel marks an address as a branch target.
func (b *Builder) WithLabel(addr uint64, name string) *Builder {
	b.labels[addr] = name
	return b
}

// WithVariable names operand number operand of the instruction at addr.
func (b *Builder) WithVariable(addr uint64, operand int, name string) *Builder {
	b.vars[varKey{addr: addr, operand: operand}] = name
	return b
}

// Merge adds everything s knows. Entries of s replace existing ones.
func (b *Builder) Merge(s *Snapshot) *Builder {
	b.sections = append(b.sections, s.sections...)
	for k, v := range s.symbols {
		b.symbols[k] = v
	}
	for k, v := range s.labels {
		b.labels[k] = v
	}
	for k, v := range s.vars {
		b.vars[k] = v
	}
	return b
}

// Build freezes the builder into a Snapshot.
func (b *Builder) Build() *Snapshot {
	s := &Snapshot{
		sections: append([]Section(nil), b.sections...),
		symbols:  make(map[uint64]string, len(b.symbols)),
		labels:   make(map[uint64]string, len(b.labels)),
		vars:     make(map[varKey]string, len(b.vars)),
	}
	for k, v := range b.symbols {
		s.symbols[k] = v
	}
	for k, v := range b.labels {
		s.labels[k] = v
	}
	for k, v := range b.vars {
		s.vars[k] = v
	}
	sort.Slice(s.sections, func(i, j int) bool {
		return s.sections[i].Start < s.sections[j].Start
	})
	return s
}

// Empty returns a snapshot that knows nothing.
func Empty() *Snapshot {
	return NewBuilder().Build()
}

// Builder returns a builder holding a copy of s, for deriving a
// snapshot with more entries.
func (s *Snapshot) Builder() *Builder {
	return NewBuilder().Merge(s)
}

// Symbol implements SymbolTable.
func (s *Snapshot) Symbol(addr uint64) (string, bool) {
	name, ok := s.symbols[addr]
	return name, ok
}

// Label implements LabelSet.
func (s *Snapshot) Label(addr uint64) (string, bool) {
	name, ok := s.labels[addr]
	return name, ok
}

// Variable implements VariableNamer.
func (s *Snapshot) Variable(inst instr.Inst, operand int) (string, bool) {
	name, ok := s.vars[varKey{addr: inst.Address, operand: operand}]
	return name, ok
}

// Section implements SectionMap.
func (s *Snapshot) Section(addr uint64) (string, bool, bool) {
	sec, ok := s.find(addr)
	if !ok {
		return "", false, false
	}
	return sec.Name, sec.IsData, true
}

// Preview implements SectionMap. The string stops at the first NUL or
// non-printable byte.
func (s *Snapshot) Preview(addr uint64, limit int) string {
	sec, ok := s.find(addr)
	if !ok || limit <= 0 {
		return ""
	}
	off := addr - sec.Start
	if off >= uint64(len(sec.Data)) {
		return ""
	}

	var b strings.Builder
	n := 0
	for _, c := range sec.Data[off:] {
		if c == 0 || !IsPrintable(c) {
			break
		}
		if n == limit {
			b.WriteString("...")
			break
		}
		b.WriteString(EscapeByte(c))
		n++
	}
	return b.String()
}

// Sections returns the sections ordered by start address.
func (s *Snapshot) Sections() []Section {
	return s.sections
}

// SectionByName returns the first section with the given name.
func (s *Snapshot) SectionByName(name string) (Section, bool) {
	for _, sec := range s.sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return Section{}, false
}

func (s *Snapshot) find(addr uint64) (Section, bool) {
	i := sort.Search(len(s.sections), func(i int) bool {
		return s.sections[i].Start > addr
	})
	if i == 0 {
		return Section{}, false
	}
	sec := s.sections[i-1]
	if !sec.Contains(addr) {
		return Section{}, false
	}
	return sec, true
}
