package opcodes

// Name is an operand name from the opcode table vocabulary. Names
// are resolved once when a table is loaded, so the decoder never has
// to inspect operand strings.
type Name uint8

const (
	InvalidName Name = iota

	// 8-bit registers
	A
	B
	C // also the carry condition, see IsCondition
	D
	E
	H
	L

	// 16-bit registers
	AF
	BC
	DE
	HL
	SP

	// conditions
	CondZ
	CondNZ
	CondNC

	// immediates
	N8  // unsigned 8-bit data
	N16 // unsigned 16-bit data
	A8  // 8-bit offset into the high page
	A16 // 16-bit address
	E8  // signed 8-bit displacement

	// bit indices of BIT, RES and SET
	Bit0
	Bit1
	Bit2
	Bit3
	Bit4
	Bit5
	Bit6
	Bit7

	// restart vectors of RST
	Vec00
	Vec08
	Vec10
	Vec18
	Vec20
	Vec28
	Vec30
	Vec38

	nameCount
)

var names = [nameCount]string{
	InvalidName: "?",
	A:           "A",
	B:           "B",
	C:           "C",
	D:           "D",
	E:           "E",
	H:           "H",
	L:           "L",
	AF:          "AF",
	BC:          "BC",
	DE:          "DE",
	HL:          "HL",
	SP:          "SP",
	CondZ:       "Z",
	CondNZ:      "NZ",
	CondNC:      "NC",
	N8:          "n8",
	N16:         "n16",
	A8:          "a8",
	A16:         "a16",
	E8:          "e8",
	Bit0:        "0",
	Bit1:        "1",
	Bit2:        "2",
	Bit3:        "3",
	Bit4:        "4",
	Bit5:        "5",
	Bit6:        "6",
	Bit7:        "7",
	Vec00:       "$00",
	Vec08:       "$08",
	Vec10:       "$10",
	Vec18:       "$18",
	Vec20:       "$20",
	Vec28:       "$28",
	Vec30:       "$30",
	Vec38:       "$38",
}

var nameLookup = func() map[string]Name {
	m := make(map[string]Name, nameCount)
	for i := A; i < nameCount; i++ {
		m[names[i]] = i
	}
	return m
}()

// ParseName returns the Name for the given operand string.
func ParseName(s string) (Name, bool) {
	n, ok := nameLookup[s]
	return n, ok
}

func (n Name) String() string {
	if n >= nameCount {
		return names[InvalidName]
	}
	return names[n]
}

// IsRegister returns true for A-L and the register pairs.
func (n Name) IsRegister() bool {
	return n >= A && n <= SP
}

// IsRegister16 returns true for AF, BC, DE, HL and SP.
func (n Name) IsRegister16() bool {
	return n >= AF && n <= SP
}

// IsCondition returns true for Z, NZ, NC and C. Whether C names the
// register or the carry condition depends on the mnemonic.
func (n Name) IsCondition() bool {
	return n == C || (n >= CondZ && n <= CondNC)
}

// ImmediateBytes returns the number of instruction bytes the operand
// consumes: 1 for n8/a8/e8, 2 for n16/a16, otherwise 0.
func (n Name) ImmediateBytes() int {
	switch n {
	case N8, A8, E8:
		return 1
	case N16, A16:
		return 2
	}
	return 0
}

// BitIndex returns the bit index named by a BIT, RES or SET operand.
func (n Name) BitIndex() (uint8, bool) {
	if n >= Bit0 && n <= Bit7 {
		return uint8(n - Bit0), true
	}
	return 0, false
}

// Vector returns the restart address named by an RST operand.
func (n Name) Vector() (uint16, bool) {
	if n >= Vec00 && n <= Vec38 {
		return uint16(n-Vec00) * 8, true
	}
	return 0, false
}
