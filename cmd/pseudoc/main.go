// Command pseudoc prints x86 machine code as pseudo-C.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/pseudoc/config"
	"github.com/sarchlab/pseudoc/core"
	"github.com/sarchlab/pseudoc/decode"
	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/listing"
	"github.com/sarchlab/pseudoc/snapshot"
	"github.com/sarchlab/pseudoc/token"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string   { return fmt.Sprint(int(*v)) }
func (v *verbosity) IsBoolFlag() bool { return true }

func (v *verbosity) Set(s string) error {
	if s == "true" {
		*v++
	}
	return nil
}

func (v verbosity) level() slog.Level {
	switch {
	case v >= 2:
		return core.LevelTrace
	case v == 1:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

var (
	configPath   = flag.String("config", "", "YAML configuration file")
	snapshotPath = flag.String("snapshot", "", "YAML snapshot with sections, symbols, labels and variables")
	elfPath      = flag.String("elf", "", "ELF file whose .text is translated")
	rawPath      = flag.String("raw", "", "file of raw machine code")
	baseAddr     = flag.String("base", "0", "load address of the raw code")
	mode         = flag.Int("mode", 64, "processor mode for raw code: 16, 32 or 64")
	format       = flag.String("format", config.FormatText, "output format: text or table")
	comments     = flag.Bool("comments", true, "print the raw instruction after rewritten statements")
	sections     = flag.Bool("sections", false, "prefix addresses with their section name")
	rawBytes     = flag.Bool("bytes", false, "print instruction bytes")
	fuse         = flag.Bool("fuse", true, "fold compares into the following conditional jump")
	autoLabels   = flag.Bool("labels", true, "name branch targets that have no label")
	workers      = flag.Int("workers", 1, "number of translation goroutines")
	stats        = flag.Bool("stats", false, "print translation statistics to stderr")
	color        = flag.String("color", config.ColorAuto, "color output: auto, always or never")
)

var verbose verbosity

func main() {
	flag.Var(&verbose, "v", "log more; repeat for trace output")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr,
		&slog.HandlerOptions{Level: verbose.level()})))

	if err := run(); err != nil {
		slog.Error("pseudoc failed", "err", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg = cfg.ApplyEnv()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "format":
			cfg.Format = *format
		case "comments":
			cfg.Comments = *comments
		case "sections":
			cfg.SectionNames = *sections
		case "bytes":
			cfg.RawBytes = *rawBytes
		case "fuse":
			cfg.Fuse = *fuse
		case "labels":
			cfg.AutoLabels = *autoLabels
		case "workers":
			cfg.Workers = *workers
		case "color":
			cfg.Color = *color
		}
	})

	return cfg, cfg.Validate()
}

// load returns the snapshot and the code to translate.
func load(cfg config.Config) (*snapshot.Snapshot, snapshot.Code, error) {
	var (
		snap = snapshot.Empty()
		code snapshot.Code
		err  error
	)

	switch {
	case *elfPath != "":
		snap, code, err = snapshot.FromELF(*elfPath)
		if err != nil {
			return nil, snapshot.Code{}, err
		}
	case *rawPath != "":
		addr, err := snapshot.ParseAddress(*baseAddr)
		if err != nil {
			return nil, snapshot.Code{}, fmt.Errorf("-base: %w", err)
		}
		data, err := os.ReadFile(*rawPath)
		if err != nil {
			return nil, snapshot.Code{}, fmt.Errorf("read code: %w", err)
		}
		code = snapshot.Code{Name: *rawPath, Address: addr, Bytes: data, Mode: cfg.Mode}
	default:
		return nil, snapshot.Code{}, fmt.Errorf("one of -elf or -raw is required")
	}

	if *snapshotPath != "" {
		extra, err := snapshot.LoadYAMLFile(*snapshotPath)
		if err != nil {
			return nil, snapshot.Code{}, err
		}
		snap = snap.Builder().Merge(extra).Build()
	}

	return snap, code, nil
}

func withBranchLabels(snap *snapshot.Snapshot, insts []instr.Inst) *snapshot.Snapshot {
	b := snap.Builder()
	for _, addr := range decode.BranchTargets(insts) {
		if _, ok := snap.Label(addr); ok {
			continue
		}
		if _, ok := snap.Symbol(addr); ok {
			continue
		}
		b.WithLabel(addr, decode.LabelName(addr))
	}
	return b.Build()
}

func useColor(cfg config.Config) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, code, err := load(cfg)
	if err != nil {
		return err
	}

	dec, err := decode.New(code.Mode)
	if err != nil {
		return err
	}
	dec.WithSymbols(func(addr uint64) (string, uint64) {
		if name, ok := snap.Symbol(addr); ok {
			return name, addr
		}
		return "", 0
	})

	insts := dec.All(code.Bytes, code.Address)
	slog.Debug("Decoded", "Code", code.Name, "Instructions", len(insts))

	if cfg.AutoLabels {
		snap = withBranchLabels(snap, insts)
	}

	builder := cfg.TranslatorBuilder()
	hook := listing.NewStatsHook()
	if *stats {
		builder = builder.WithHook(hook)
	}

	lw := listing.NewWriter(builder.Build(), core.EnvFrom(snap)).
		WithFusion(cfg.Fuse).
		WithWorkers(cfg.Workers)

	out := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { out.Flush() })

	if cfg.Format == config.FormatTable {
		err = lw.WriteTable(out, insts)
	} else {
		var w *token.Writer
		w, err = lw.Render(context.Background(), insts)
		if err == nil {
			err = token.Render(out, w.Tokens(), useColor(cfg))
		}
	}
	if err != nil {
		return err
	}

	if *stats {
		fmt.Fprintln(os.Stderr, hook.Stats().Table())
	}

	return out.Flush()
}
