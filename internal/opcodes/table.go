// Package opcodes loads the SM83 opcode table: the mnemonic, operand
// descriptors, size, timing and documented flag effects of every
// instruction, in both the unprefixed and the 0xCB prefixed spaces.
//
// The JSON layout is the one used by community tables such as
// gbdev/opcodes, so a table produced by those tools can be loaded
// directly with Load.
package opcodes

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// MaxOperands is the largest number of operand descriptors an entry
// may carry. Only LD HL,SP+e8 uses three.
const MaxOperands = 3

// Operand describes a single operand of an instruction.
type Operand struct {
	Name      Name
	Immediate bool // false for register-indirect and memory operands
	Increment bool // (HL+), and SP+ in LD HL,SP+e8
	Decrement bool // (HL-)
}

func (o Operand) String() string {
	s := o.Name.String()
	if o.Increment {
		s += "+"
	} else if o.Decrement {
		s += "-"
	}
	if !o.Immediate {
		s = "(" + s + ")"
	}
	return s
}

// Instruction is a single entry of the opcode table.
type Instruction struct {
	Opcode   uint8
	Prefixed bool
	Mnemonic Mnemonic
	Operands []Operand
	Bytes    uint8
	Cycles   []uint8
	Flags    Flags
}

// String returns the instruction in assembly notation, e.g.
// "LD (HL+), A" or "BIT 7, H".
func (i *Instruction) String() string {
	if len(i.Operands) == 0 {
		return i.Mnemonic.String()
	}
	var b strings.Builder
	b.WriteString(i.Mnemonic.String())
	b.WriteByte(' ')
	for n, o := range i.Operands {
		if n > 0 {
			// SP+e8 reads as a single operand
			prev := i.Operands[n-1]
			if !(prev.Increment && prev.Immediate) {
				b.WriteString(", ")
			}
		}
		b.WriteString(o.String())
	}
	return b.String()
}

// Table is an immutable opcode table indexed by opcode byte.
type Table struct {
	unprefixed [256]*Instruction
	cbprefixed [256]*Instruction
	checksum   uint64
}

// Lookup returns the instruction for the given opcode, or false if
// the opcode is not defined in the selected space.
func (t *Table) Lookup(opcode uint8, prefixed bool) (*Instruction, bool) {
	var i *Instruction
	if prefixed {
		i = t.cbprefixed[opcode]
	} else {
		i = t.unprefixed[opcode]
	}
	return i, i != nil
}

// Len returns the number of defined instructions in each space.
func (t *Table) Len() (unprefixed, cbprefixed int) {
	for i := 0; i < 256; i++ {
		if t.unprefixed[i] != nil {
			unprefixed++
		}
		if t.cbprefixed[i] != nil {
			cbprefixed++
		}
	}
	return
}

// Checksum returns the xxhash of the JSON the table was loaded from.
func (t *Table) Checksum() uint64 {
	return t.checksum
}

type rawOperand struct {
	Name      string `json:"name"`
	Bytes     uint8  `json:"bytes"`
	Immediate bool   `json:"immediate"`
	Increment bool   `json:"increment"`
	Decrement bool   `json:"decrement"`
}

type rawInstruction struct {
	Mnemonic string            `json:"mnemonic"`
	Bytes    uint8             `json:"bytes"`
	Cycles   []uint8           `json:"cycles"`
	Operands []rawOperand      `json:"operands"`
	Flags    map[string]string `json:"flags"`
}

type rawTable struct {
	Unprefixed map[string]rawInstruction `json:"unprefixed"`
	CBPrefixed map[string]rawInstruction `json:"cbprefixed"`
}

// Load parses and validates an opcode table. Every problem found is
// reported, combined into a single error.
func Load(data []byte) (*Table, error) {
	var raw rawTable
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "opcodes: decoding table")
	}

	t := &Table{checksum: xxhash.Sum64(data)}
	var result *multierror.Error
	if err := t.fill(&t.unprefixed, raw.Unprefixed, false); err != nil {
		result = multierror.Append(result, err)
	}
	if err := t.fill(&t.cbprefixed, raw.CBPrefixed, true); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "opcodes: invalid table")
	}
	return t, nil
}

func (t *Table) fill(dst *[256]*Instruction, entries map[string]rawInstruction, prefixed bool) error {
	var result *multierror.Error

	// sorted so that errors are reported in a stable order
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[uint8]string, len(entries))
	for _, key := range keys {
		opcode, err := parseKey(key)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if prev, ok := seen[opcode]; ok {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate of %s", key, prev))
			continue
		}
		seen[opcode] = key

		instr, err := parseInstruction(key, entries[key], opcode, prefixed)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		dst[opcode] = instr
	}

	return result.ErrorOrNil()
}

func parseKey(key string) (uint8, error) {
	if len(key) != 4 || !(strings.HasPrefix(key, "0x") || strings.HasPrefix(key, "0X")) {
		return 0, fmt.Errorf("%q: malformed opcode key", key)
	}
	v, err := strconv.ParseUint(key[2:], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%q: malformed opcode key", key)
	}
	return uint8(v), nil
}

// parseInstruction converts a raw entry. Entries marked ILLEGAL_ are
// valid but yield a nil instruction, leaving the opcode undefined.
func parseInstruction(key string, raw rawInstruction, opcode uint8, prefixed bool) (*Instruction, error) {
	if strings.HasPrefix(raw.Mnemonic, "ILLEGAL_") {
		return nil, nil
	}
	var result *multierror.Error

	mnemonic, ok := ParseMnemonic(raw.Mnemonic)
	if !ok {
		result = multierror.Append(result, &UnknownMnemonicError{Key: key, Mnemonic: raw.Mnemonic})
	}
	if len(raw.Operands) > MaxOperands {
		result = multierror.Append(result, fmt.Errorf("%s: %d operands, at most %d allowed", key, len(raw.Operands), MaxOperands))
	}

	instr := &Instruction{
		Opcode:   opcode,
		Prefixed: prefixed,
		Mnemonic: mnemonic,
		Operands: make([]Operand, 0, len(raw.Operands)),
		Cycles:   raw.Cycles,
	}

	length := 1
	if prefixed {
		length = 2
	}
	for _, o := range raw.Operands {
		name, ok := ParseName(o.Name)
		if !ok {
			result = multierror.Append(result, &UnknownOperandError{Key: key, Name: o.Name})
			continue
		}
		length += name.ImmediateBytes()
		instr.Operands = append(instr.Operands, Operand{
			Name:      name,
			Immediate: o.Immediate,
			Increment: o.Increment,
			Decrement: o.Decrement,
		})
	}

	// tables without sizes are accepted, the size is implied by the operands
	switch {
	case raw.Bytes == 0:
		instr.Bytes = uint8(length)
	case int(raw.Bytes) != length:
		result = multierror.Append(result, fmt.Errorf("%s: declares %d bytes, operands imply %d", key, raw.Bytes, length))
	default:
		instr.Bytes = raw.Bytes
	}

	for flag, dst := range map[string]*Effect{"Z": &instr.Flags.Z, "N": &instr.Flags.N, "H": &instr.Flags.H, "C": &instr.Flags.C} {
		e, ok := parseEffect(raw.Flags[flag])
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%s: invalid effect %q for flag %s", key, raw.Flags[flag], flag))
			continue
		}
		*dst = e
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return instr, nil
}
