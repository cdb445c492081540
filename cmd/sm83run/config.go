package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes a single run. It may be read from a YAML file,
// with any flag given on the command line taking precedence.
type Config struct {
	Program     string  `yaml:"program"`
	LoadAddress uint16  `yaml:"load_address"`
	PC          *uint16 `yaml:"pc"`
	Steps       uint64  `yaml:"steps"`
	BootState   bool    `yaml:"boot_state"`
	Debug       bool    `yaml:"debug"`
	Snapshot    string  `yaml:"snapshot"`
	Restore     string  `yaml:"restore"`
	Table       string  `yaml:"table"`
}

// word is a flag.Value accepting 16-bit numbers in any base
// understood by strconv, so both 256 and 0x100 work.
type word uint16

func (w *word) String() string {
	return fmt.Sprintf("0x%04X", uint16(*w))
}

func (w *word) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return err
	}
	*w = word(v)
	return nil
}

func readConfig(filename string) (*Config, error) {
	f, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(f, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", filename)
	}
	return cfg, nil
}

// parseConfig parses the command line. The program may also be given
// as the first positional argument.
func parseConfig(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("sm83run", flag.ContinueOnError)
	fs.SetOutput(output)

	configFile := fs.String("config", "", "YAML file to read the configuration from")
	program := fs.String("program", "", "The program image to load (raw, .gz, .xz, .zip or .7z)")
	var loadAddress, pc word
	fs.Var(&loadAddress, "load", "The address to load the program at")
	fs.Var(&pc, "pc", "The address to start executing from")
	steps := fs.Uint64("steps", 0, "Stop after this many instructions (0 runs until halted)")
	bootState := fs.Bool("boot", false, "Start with cleared registers instead of the post boot ROM values")
	debug := fs.Bool("debug", false, "Trace every instruction and stop on LD B, B")
	snapshot := fs.String("snapshot", "", "Write the final CPU state to this file")
	restore := fs.String("restore", "", "Restore the CPU state from this snapshot before running")
	table := fs.String("table", "", "Use this opcode table instead of the embedded one")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if *configFile != "" {
		var err error
		if cfg, err = readConfig(*configFile); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "program":
			cfg.Program = *program
		case "load":
			cfg.LoadAddress = uint16(loadAddress)
		case "pc":
			v := uint16(pc)
			cfg.PC = &v
		case "steps":
			cfg.Steps = *steps
		case "boot":
			cfg.BootState = *bootState
		case "debug":
			cfg.Debug = *debug
		case "snapshot":
			cfg.Snapshot = *snapshot
		case "restore":
			cfg.Restore = *restore
		case "table":
			cfg.Table = *table
		}
	})

	if cfg.Program == "" && fs.NArg() > 0 {
		cfg.Program = fs.Arg(0)
	}
	if cfg.Program == "" {
		return nil, errors.New("no program given")
	}

	return cfg, nil
}
