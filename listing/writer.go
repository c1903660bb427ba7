// Package listing turns an instruction stream into a pseudo-C listing.
package listing

import (
	"context"
	"log/slog"

	"github.com/sarchlab/pseudoc/core"
	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/token"
	"golang.org/x/sync/errgroup"
)

// Writer translates instruction streams with one translator against one
// binary snapshot.
type Writer struct {
	t       *core.Translator
	env     core.Env
	fuse    bool
	workers int
}

// NewWriter creates a listing writer. Fusion is off and translation is
// serial until configured otherwise.
func NewWriter(t *core.Translator, env core.Env) *Writer {
	return &Writer{t: t, env: env, workers: 1}
}

// WithFusion folds a flag setter into the condition of the conditional
// jump that follows it. The flag setter then produces no line of its own.
func (l *Writer) WithFusion(fuse bool) *Writer {
	l.fuse = fuse
	return l
}

// WithWorkers sets how many goroutines Render uses.
func (l *Writer) WithWorkers(n int) *Writer {
	if n < 1 {
		n = 1
	}
	l.workers = n
	return l
}

// Block is one instruction of a listing together with its fusion.
type Block struct {
	Inst  instr.Inst
	Fused *core.Fusion
	// Folded is set for a flag setter consumed by the next block.
	Folded bool
}

// Plan pairs every conditional jump with its predecessor when fusion is
// enabled. A jump that is itself a branch target is never fused, since
// the flags may come from elsewhere.
func (l *Writer) Plan(insts []instr.Inst) []Block {
	blocks := make([]Block, len(insts))
	for i, inst := range insts {
		blocks[i].Inst = inst
	}

	if !l.fuse {
		return blocks
	}

	for i := 1; i < len(insts); i++ {
		if !insts[i].Op.IsCondJump() || blocks[i-1].Folded {
			continue
		}
		if _, ok := l.labelAt(insts[i].Address); ok {
			continue
		}

		f, err := core.NewFusion(insts[i-1], insts[i])
		if err != nil {
			core.Trace("NotFused", "Address", insts[i].Address, "Reason", err)
			continue
		}

		blocks[i].Fused = f
		blocks[i-1].Folded = true
	}

	return blocks
}

func (l *Writer) labelAt(addr uint64) (string, bool) {
	if l.env.Labels == nil {
		return "", false
	}
	return l.env.Labels.Label(addr)
}

func (l *Writer) symbolAt(addr uint64) (string, bool) {
	if l.env.Symbols == nil {
		return "", false
	}
	return l.env.Symbols.Symbol(addr)
}

// WriteBlock writes the symbol and label lines of b followed by its
// translation, unless b was folded into the next block.
func (l *Writer) WriteBlock(w *token.Writer, b Block, first bool) {
	if name, ok := l.symbolAt(b.Inst.Address); ok {
		if !first {
			w.Newline()
		}
		w.Symbol(name)
		w.Text(":")
		w.Newline()
	}

	if name, ok := l.labelAt(b.Inst.Address); ok {
		w.Label(name)
		w.Text(":")
		w.Newline()
	}

	if b.Folded {
		return
	}

	l.t.Translate(w, l.env, b.Inst, b.Fused, 1)
}

// Write translates insts in program order.
func (l *Writer) Write(w *token.Writer, insts []instr.Inst) {
	for i, b := range l.Plan(insts) {
		l.WriteBlock(w, b, i == 0)
	}
}

// Render translates insts with up to the configured number of workers.
// The result is identical to Write.
func (l *Writer) Render(ctx context.Context, insts []instr.Inst) (*token.Writer, error) {
	blocks := l.Plan(insts)
	parts := make([]token.Writer, len(blocks))

	chunk := (len(blocks) + l.workers - 1) / l.workers
	if chunk == 0 {
		chunk = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for start := 0; start < len(blocks); start += chunk {
		end := min(start+chunk, len(blocks))

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				l.WriteBlock(&parts[i], blocks[i], i == 0)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &token.Writer{}
	for i := range parts {
		out.Append(&parts[i])
	}

	slog.Debug("ListingRendered",
		"Instructions", len(insts), "Workers", l.workers, "Tokens", out.Len())

	return out, nil
}
