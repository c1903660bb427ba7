// Package token defines the typed output stream produced by the
// translator. Tokens carry no color; a renderer decides how each kind
// looks.
package token

import "strings"

// Kind classifies a token so a renderer can style it.
type Kind int

const (
	Text Kind = iota
	Keyword
	Operator
	Literal
	String
	Symbol
	Label
	Variable
	Comment
	Address
	Section
	Bytes
	Newline
	Indent
)

var kindNames = [...]string{
	Text:     "text",
	Keyword:  "keyword",
	Operator: "operator",
	Literal:  "literal",
	String:   "string",
	Symbol:   "symbol",
	Label:    "label",
	Variable: "variable",
	Comment:  "comment",
	Address:  "address",
	Section:  "section",
	Bytes:    "bytes",
	Newline:  "newline",
	Indent:   "indent",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is one piece of output text.
type Token struct {
	Kind Kind
	Text string
}

// IndentUnit is the text of one indentation level.
const IndentUnit = "    "

// Writer accumulates tokens. The zero value is ready to use.
type Writer struct {
	toks []Token
}

// Add appends a token of the given kind. Empty text is dropped.
func (w *Writer) Add(kind Kind, text string) {
	if text == "" && kind != Newline {
		return
	}
	w.toks = append(w.toks, Token{Kind: kind, Text: text})
}

func (w *Writer) Text(s string) { w.Add(Text, s) }
func (w *Writer) Keyword(s string) { w.Add(Keyword, s) }
func (w *Writer) Operator(s string) { w.Add(Operator, s) }
func (w *Writer) Literal(s string) { w.Add(Literal, s) }
func (w *Writer) StringLit(s string) { w.Add(String, s) }
func (w *Writer) Symbol(s string) { w.Add(Symbol, s) }
func (w *Writer) Label(s string) { w.Add(Label, s) }
func (w *Writer) Variable(s string) { w.Add(Variable, s) }
func (w *Writer) Comment(s string) { w.Add(Comment, s) }
func (w *Writer) Address(s string) { w.Add(Address, s) }
func (w *Writer) Section(s string) { w.Add(Section, s) }
func (w *Writer) Bytes(s string) { w.Add(Bytes, s) }

// Newline ends the current line.
func (w *Writer) Newline() {
	w.toks = append(w.toks, Token{Kind: Newline, Text: "\n"})
}

// Indent writes depth indentation levels.
func (w *Writer) Indent(depth int) {
	if depth <= 0 {
		return
	}
	w.Add(Indent, strings.Repeat(IndentUnit, depth))
}

// Append copies all tokens of other into w.
func (w *Writer) Append(other *Writer) {
	w.toks = append(w.toks, other.toks...)
}

// Tokens returns the accumulated tokens.
func (w *Writer) Tokens() []Token {
	return w.toks
}

// Len returns the number of tokens written.
func (w *Writer) Len() int {
	return len(w.toks)
}

// Reset discards all tokens.
func (w *Writer) Reset() {
	w.toks = w.toks[:0]
}

// Plain returns the concatenated text of all tokens.
func (w *Writer) Plain() string {
	return Join(w.toks)
}

// Join concatenates the text of toks.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Lines splits toks at Newline tokens. The newline tokens themselves are
// dropped; a trailing partial line is kept.
func Lines(toks []Token) [][]Token {
	var lines [][]Token
	start := 0
	for i, t := range toks {
		if t.Kind == Newline {
			lines = append(lines, toks[start:i])
			start = i + 1
		}
	}
	if start < len(toks) {
		lines = append(lines, toks[start:])
	}
	return lines
}
