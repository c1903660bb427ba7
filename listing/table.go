package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/token"
)

// WriteTable writes insts as a table with one row per translated
// instruction. The translator should be built without addresses, since
// the table has its own address column.
func (l *Writer) WriteTable(out io.Writer, insts []instr.Inst) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Address", "Bytes", "Pseudo-C", "Asm"})

	for _, b := range l.Plan(insts) {
		if b.Folded {
			continue
		}

		var w token.Writer
		l.t.Translate(&w, l.env, b.Inst, b.Fused, 0)

		asm := b.Inst.String()
		if b.Fused != nil {
			asm = b.Fused.Prev().String() + "\n" + asm
		}

		t.AppendRow(table.Row{
			fmt.Sprintf("0x%x", b.Inst.Address),
			fmt.Sprintf("% x", b.Inst.Bytes),
			strings.TrimRight(w.Plain(), "\n"),
			asm,
		})
	}

	_, err := io.WriteString(out, t.Render()+"\n")
	return err
}
