package opcodes

// Effect describes what an instruction does to a single flag.
type Effect uint8

const (
	// Unaffected flags are left as they were ("-").
	Unaffected Effect = iota
	// Reset flags are always cleared ("0").
	Reset
	// Set flags are always set ("1").
	Set
	// Affected flags depend on the result.
	Affected
)

func parseEffect(s string) (Effect, bool) {
	switch s {
	case "", "-":
		return Unaffected, true
	case "0":
		return Reset, true
	case "1":
		return Set, true
	case "Z", "N", "H", "C":
		return Affected, true
	}
	return Unaffected, false
}

func (e Effect) String() string {
	switch e {
	case Reset:
		return "0"
	case Set:
		return "1"
	case Affected:
		return "*"
	}
	return "-"
}

// Flags holds the documented flag behaviour of an instruction.
type Flags struct {
	Z, N, H, C Effect
}

func (f Flags) String() string {
	return f.Z.String() + f.N.String() + f.H.String() + f.C.String()
}
