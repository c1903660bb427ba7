package token

import (
	"bufio"
	"io"
)

const ansiReset = "\x1b[0m"

// Palette maps token kinds to ANSI escape sequences. Kinds without an
// entry are printed uncolored.
type Palette map[Kind]string

// DefaultPalette is used by Render when color is enabled.
var DefaultPalette = Palette{
	Keyword:  "\x1b[1;35m",
	Literal:  "\x1b[36m",
	String:   "\x1b[33m",
	Symbol:   "\x1b[1;34m",
	Label:    "\x1b[1;32m",
	Variable: "\x1b[1;36m",
	Comment:  "\x1b[90m",
	Address:  "\x1b[32m",
	Section:  "\x1b[34m",
	Bytes:    "\x1b[90m",
}

// Render writes toks to w, coloring them with DefaultPalette when color
// is set.
func Render(w io.Writer, toks []Token, color bool) error {
	if !color {
		return RenderWith(w, toks, nil)
	}
	return RenderWith(w, toks, DefaultPalette)
}

// RenderWith writes toks to w using the given palette. A nil palette
// writes plain text.
func RenderWith(w io.Writer, toks []Token, p Palette) error {
	bw := bufio.NewWriter(w)
	for _, t := range toks {
		esc, ok := p[t.Kind]
		if !ok || t.Kind == Newline || t.Kind == Indent {
			if _, err := bw.WriteString(t.Text); err != nil {
				return err
			}
			continue
		}
		bw.WriteString(esc)
		bw.WriteString(t.Text)
		if _, err := bw.WriteString(ansiReset); err != nil {
			return err
		}
	}
	return bw.Flush()
}
