// Command sm83run loads a program image into a flat 64 KiB address
// space and executes it on the SM83 core until it halts.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/opcodes"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.New().Errorf("%v", err)
		os.Exit(2)
	}

	var logOpts []log.Opt
	if cfg.Debug {
		logOpts = append(logOpts, log.WithDebug())
	}
	logger := log.New(logOpts...)

	c, table, err := setup(cfg, logger)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("loaded %s, opcode table %016x", cfg.Program, table.Checksum())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	executed, r, runErr := run(ctx, c, cfg.Steps)
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	report(os.Stdout, c, executed, r, runErr, color)

	if cfg.Snapshot != "" {
		if err := writeSnapshot(cfg.Snapshot, c, table); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		logger.Infof("wrote snapshot to %s", cfg.Snapshot)
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// setup builds the bus and the CPU described by cfg.
func setup(cfg *Config, logger log.Logger) (*cpu.CPU, *opcodes.Table, error) {
	program, err := utils.LoadFile(cfg.Program)
	if err != nil {
		return nil, nil, err
	}

	table := opcodes.Default()
	if cfg.Table != "" {
		raw, err := utils.LoadFile(cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		if table, err = opcodes.Load(raw); err != nil {
			return nil, nil, err
		}
	}

	// programs at 0 that fit are mapped read-only, the way a cartridge is
	var bus *mmu.MMU
	if cfg.LoadAddress == 0 && len(program) <= int(types.ROMEnd) {
		bus, err = mmu.New(mmu.WithROM(program), mmu.WithLogger(logger))
	} else {
		bus, err = mmu.New(mmu.WithLogger(logger))
		if err == nil {
			err = bus.Load(cfg.LoadAddress, program)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	opts := []cpu.Opt{cpu.WithLogger(logger), cpu.WithTable(table)}
	if cfg.BootState {
		opts = append(opts, cpu.WithBootROMState())
	}
	if cfg.Debug {
		opts = append(opts, cpu.Debug())
	}
	if cfg.Restore != "" {
		state, err := readSnapshot(cfg.Restore, table)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, cpu.WithState(state))
	}

	c, err := cpu.New(bus, opts...)
	if err != nil {
		return nil, nil, err
	}
	if cfg.PC != nil {
		c.PC = *cfg.PC
	}
	return c, table, nil
}

func readSnapshot(filename string, table *opcodes.Table) (*types.State, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}
	state, checksum, err := types.DecodeSnapshot(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding snapshot %s", filename)
	}
	if checksum != table.Checksum() {
		return nil, errors.Errorf("snapshot %s was saved with opcode table %016x, have %016x", filename, checksum, table.Checksum())
	}
	return state, nil
}

func writeSnapshot(filename string, c *cpu.CPU, table *opcodes.Table) error {
	state := types.NewState()
	c.Save(state)
	b, err := types.EncodeSnapshot(state, table.Checksum())
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(filename, b, 0o644), "writing snapshot")
}
