package core

import (
	"context"
	"log/slog"

	"github.com/sarchlab/pseudoc/instr"
)

const (
	// LevelTrace sits below Debug; per-operand decisions are logged at this
	// level.
	LevelTrace slog.Level = slog.LevelDebug - 4
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// LogInst records the instruction being translated.
func LogInst(inst instr.Inst, res Result) {
	slog.Debug("InstTranslated",
		"Address", inst.Address,
		"Mnemonic", inst.Mnemonic,
		"Op", inst.Op.String(),
		"Operands", len(inst.Operands),
		"Prefix", inst.Prefix.String(),
		"Modified", res.Modified,
		"Unresolved", res.Unresolved,
	)
}
