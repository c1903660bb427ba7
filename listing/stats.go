package listing

import (
	"sort"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/pseudoc/core"
	"github.com/sarchlab/pseudoc/instr"
)

// Stats summarizes a translation run.
type Stats struct {
	Total      int
	Modified   int
	Unresolved int
	ByOpcode   map[string]int
}

// StatsHook counts translated instructions. It is safe for concurrent
// use, so it can observe a parallel Render.
type StatsHook struct {
	lock  sync.Mutex
	stats Stats
}

// NewStatsHook creates an empty hook.
func NewStatsHook() *StatsHook {
	return &StatsHook{stats: Stats{ByOpcode: make(map[string]int)}}
}

// Func implements sim.Hook.
func (h *StatsHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != core.HookPosInstTranslated {
		return
	}

	inst, ok := ctx.Item.(instr.Inst)
	if !ok {
		return
	}
	res, _ := ctx.Detail.(core.Result)

	name := inst.Mnemonic
	if name == "" {
		name = inst.Op.String()
	}

	h.lock.Lock()
	defer h.lock.Unlock()

	h.stats.Total++
	h.stats.ByOpcode[name]++
	if res.Modified {
		h.stats.Modified++
	}
	if res.Unresolved {
		h.stats.Unresolved++
	}
}

// Stats returns a copy of the counters.
func (h *StatsHook) Stats() Stats {
	h.lock.Lock()
	defer h.lock.Unlock()

	s := h.stats
	s.ByOpcode = make(map[string]int, len(h.stats.ByOpcode))
	for k, v := range h.stats.ByOpcode {
		s.ByOpcode[k] = v
	}
	return s
}

const statsTitle = "Translation Statistics"

// Table renders the counters, most frequent mnemonics first.
func (s Stats) Table() string {
	t := table.NewWriter()
	t.SetTitle(statsTitle)
	t.AppendHeader(table.Row{"Mnemonic", "Count"})
	// go-pretty wraps a title wider than the rows.
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: len(statsTitle)},
	})

	names := make([]string, 0, len(s.ByOpcode))
	for name := range s.ByOpcode {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.ByOpcode[names[i]] != s.ByOpcode[names[j]] {
			return s.ByOpcode[names[i]] > s.ByOpcode[names[j]]
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		t.AppendRow(table.Row{name, s.ByOpcode[name]})
	}

	t.AppendFooter(table.Row{"Total", s.Total})
	t.AppendFooter(table.Row{"Rewritten", s.Modified})
	t.AppendFooter(table.Row{"Unresolved", s.Unresolved})

	return t.Render()
}
