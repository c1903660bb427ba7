package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new translators.
type Builder struct {
	comments     bool
	sectionNames bool
	addresses    bool
	rawBytes     bool
	maxDataSize  int
	hooks        []sim.Hook
}

// NewBuilder returns a builder with addresses enabled and a 30 character
// data preview.
func NewBuilder() Builder {
	return Builder{
		addresses:   true,
		maxDataSize: 30,
	}
}

// WithComments appends the raw instruction as a comment after rewritten
// statements.
func (b Builder) WithComments(comments bool) Builder {
	b.comments = comments
	return b
}

// WithSectionNames prefixes addresses with the name of their section.
func (b Builder) WithSectionNames(sectionNames bool) Builder {
	b.sectionNames = sectionNames
	return b
}

// WithAddresses starts every line with the instruction address.
func (b Builder) WithAddresses(addresses bool) Builder {
	b.addresses = addresses
	return b
}

// WithRawBytes prints the instruction encoding after the address.
func (b Builder) WithRawBytes(rawBytes bool) Builder {
	b.rawBytes = rawBytes
	return b
}

// WithMaxDataSize bounds the string preview of data addresses.
func (b Builder) WithMaxDataSize(n int) Builder {
	if n < 0 {
		panic("max data size must not be negative")
	}
	b.maxDataSize = n
	return b
}

// WithHook registers a hook invoked after every translated instruction.
func (b Builder) WithHook(hook sim.Hook) Builder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), hook)
	return b
}

// Build creates a translator.
func (b Builder) Build() *Translator {
	t := &Translator{
		HookableBase: sim.NewHookableBase(),
		opts: Options{
			Comments:     b.comments,
			SectionNames: b.sectionNames,
			Addresses:    b.addresses,
			RawBytes:     b.rawBytes,
			MaxDataSize:  b.maxDataSize,
		},
	}

	for _, h := range b.hooks {
		t.AcceptHook(h)
	}

	return t
}
