package decode

import (
	"fmt"
	"sort"

	"github.com/sarchlab/pseudoc/instr"
)

// BranchTargets returns the sorted, distinct targets of direct jumps
// that land inside the decoded range.
func BranchTargets(insts []instr.Inst) []uint64 {
	if len(insts) == 0 {
		return nil
	}

	start := insts[0].Address
	end := insts[len(insts)-1].End()
	seen := make(map[uint64]bool)

	var targets []uint64
	for _, inst := range insts {
		if !inst.Op.IsJump() || len(inst.Operands) == 0 {
			continue
		}

		op := inst.Operands[0]
		if op.Kind != instr.KindImmediate {
			continue
		}

		addr := uint64(op.Imm)
		if addr < start || addr >= end || seen[addr] {
			continue
		}

		seen[addr] = true
		targets = append(targets, addr)
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	return targets
}

// LabelName is the name given to an unnamed branch target.
func LabelName(addr uint64) string {
	return fmt.Sprintf("loc_%x", addr)
}
