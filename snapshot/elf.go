package snapshot

import (
	"debug/elf"
	"errors"
	"fmt"
)

// Code is an executable range extracted from a binary.
type Code struct {
	Name    string
	Address uint64
	Bytes   []byte
	Mode    int // 32 or 64
}

// FromELF loads the allocated sections and the function and object
// symbols of an ELF file. It also returns the contents of .text.
func FromELF(path string) (*Snapshot, Code, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, Code{}, fmt.Errorf("open elf %s: %w", path, err)
	}
	defer f.Close()

	b := NewBuilder()
	var code Code

	mode := 64
	if f.Class == elf.ELFCLASS32 {
		mode = 32
	}

	for _, sec := range f.Sections {
		if sec.Flags&elf.SHF_ALLOC == 0 || sec.Addr == 0 {
			continue
		}

		var data []byte
		if sec.Type != elf.SHT_NOBITS {
			data, err = sec.Data()
			if err != nil {
				return nil, Code{}, fmt.Errorf("read section %s: %w", sec.Name, err)
			}
		}

		b.WithSection(Section{
			Name:   sec.Name,
			Start:  sec.Addr,
			Size:   sec.Size,
			IsData: sec.Flags&elf.SHF_EXECINSTR == 0,
			Data:   data,
		})

		if sec.Name == ".text" {
			code = Code{Name: sec.Name, Address: sec.Addr, Bytes: data, Mode: mode}
		}
	}

	if err := addELFSymbols(b, f.Symbols); err != nil {
		return nil, Code{}, err
	}
	if err := addELFSymbols(b, f.DynamicSymbols); err != nil {
		return nil, Code{}, err
	}

	if code.Bytes == nil {
		return nil, Code{}, fmt.Errorf("elf %s: no .text section", path)
	}

	return b.Build(), code, nil
}

func addELFSymbols(b *Builder, read func() ([]elf.Symbol, error)) error {
	syms, err := read()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read elf symbols: %w", err)
	}

	for _, sym := range syms {
		typ := elf.ST_TYPE(sym.Info)
		if typ != elf.STT_FUNC && typ != elf.STT_OBJECT {
			continue
		}
		if sym.Value == 0 || sym.Name == "" {
			continue
		}
		if _, exists := b.symbols[sym.Value]; exists {
			continue
		}
		b.WithSymbol(sym.Value, sym.Name)
	}

	return nil
}
