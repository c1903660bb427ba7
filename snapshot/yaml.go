package snapshot

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a snapshot fixture.
//
//	sections:
//	  - name: .rodata
//	    start: 0x402000
//	    data: true
//	    bytes: "48656c6c6f00"
//	symbols:
//	  0x401000: main
//	labels:
//	  0x401020: loop_1
//	variables:
//	  - address: 0x401004
//	    operand: 0
//	    name: var_8
type File struct {
	Sections  []SectionEntry    `yaml:"sections"`
	Symbols   map[string]string `yaml:"symbols"`
	Labels    map[string]string `yaml:"labels"`
	Variables []VariableEntry   `yaml:"variables"`
}

// SectionEntry is one section of a snapshot fixture.
type SectionEntry struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	Size  string `yaml:"size"`
	Data  bool   `yaml:"data"`
	Bytes string `yaml:"bytes"`
	Text  string `yaml:"text"`
}

// VariableEntry names one operand of one instruction.
type VariableEntry struct {
	Address string `yaml:"address"`
	Operand int    `yaml:"operand"`
	Name    string `yaml:"name"`
}

// LoadYAMLFile reads a snapshot fixture from path.
func LoadYAMLFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	s, err := LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}

	return s, nil
}

// LoadYAML parses a snapshot fixture.
func LoadYAML(data []byte) (*Snapshot, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return f.Build()
}

// Build converts the fixture into a Snapshot.
func (f File) Build() (*Snapshot, error) {
	b := NewBuilder()

	for _, e := range f.Sections {
		sec, err := e.section()
		if err != nil {
			return nil, err
		}
		b.WithSection(sec)
	}

	for addrStr, name := range f.Symbols {
		addr, err := ParseAddress(addrStr)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", name, err)
		}
		b.WithSymbol(addr, name)
	}

	for addrStr, name := range f.Labels {
		addr, err := ParseAddress(addrStr)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", name, err)
		}
		b.WithLabel(addr, name)
	}

	for _, v := range f.Variables {
		addr, err := ParseAddress(v.Address)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		b.WithVariable(addr, v.Operand, v.Name)
	}

	return b.Build(), nil
}

func (e SectionEntry) section() (Section, error) {
	start, err := ParseAddress(e.Start)
	if err != nil {
		return Section{}, fmt.Errorf("section %q start: %w", e.Name, err)
	}

	sec := Section{Name: e.Name, Start: start, IsData: e.Data}

	switch {
	case e.Bytes != "":
		raw, err := hex.DecodeString(strings.Join(strings.Fields(e.Bytes), ""))
		if err != nil {
			return Section{}, fmt.Errorf("section %q bytes: %w", e.Name, err)
		}
		sec.Data = raw
	case e.Text != "":
		sec.Data = append([]byte(e.Text), 0)
	}

	if e.Size != "" {
		size, err := ParseAddress(e.Size)
		if err != nil {
			return Section{}, fmt.Errorf("section %q size: %w", e.Name, err)
		}
		sec.Size = size
	}

	return sec, nil
}

// ParseAddress parses a decimal or 0x-prefixed address.
func ParseAddress(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return v, nil
}
