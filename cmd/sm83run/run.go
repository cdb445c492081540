package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mgutz/ansi"
	"github.com/thelolagemann/sm83/internal/cpu"
)

// reason describes why a run ended.
type reason int

const (
	reasonHalted reason = iota
	reasonStopped
	reasonBreakpoint
	reasonLimit
	reasonInterrupted
	reasonError
)

func (r reason) String() string {
	switch r {
	case reasonHalted:
		return "halted"
	case reasonStopped:
		return "stopped"
	case reasonBreakpoint:
		return "breakpoint"
	case reasonLimit:
		return "step limit reached"
	case reasonInterrupted:
		return "interrupted"
	case reasonError:
		return "error"
	}
	return "unknown"
}

// color returns the ansi style used to report r.
func (r reason) color() string {
	switch r {
	case reasonHalted, reasonStopped:
		return "green+b"
	case reasonBreakpoint, reasonLimit, reasonInterrupted:
		return "yellow+b"
	}
	return "red+b"
}

// run steps c until it halts or stops, hits a breakpoint, fails, has
// executed limit instructions (when limit is non-zero) or ctx is
// done. It returns the number of instructions executed.
func run(ctx context.Context, c *cpu.CPU, limit uint64) (uint64, reason, error) {
	var executed uint64
	for {
		switch c.Status() {
		case cpu.Halted:
			return executed, reasonHalted, nil
		case cpu.Stopped:
			return executed, reasonStopped, nil
		}
		if c.DebugBreakpoint {
			return executed, reasonBreakpoint, nil
		}
		if limit > 0 && executed >= limit {
			return executed, reasonLimit, nil
		}
		select {
		case <-ctx.Done():
			return executed, reasonInterrupted, nil
		default:
		}

		if err := c.Step(); err != nil {
			return executed, reasonError, err
		}
		executed++
	}
}

// report writes a summary of a finished run.
func report(w io.Writer, c *cpu.CPU, executed uint64, r reason, err error, color bool) {
	status := r.String()
	if err != nil {
		status = fmt.Sprintf("%s: %v", status, err)
	}
	if color {
		status = ansi.Color(status, r.color())
	}
	fmt.Fprintf(w, "%s after %d instructions (%d cycles)\n", status, executed, c.Ticks)
	fmt.Fprintln(w, c.Registers.String())
}
