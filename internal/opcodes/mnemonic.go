package opcodes

// Mnemonic identifies the operation an instruction performs.
type Mnemonic uint8

const (
	InvalidMnemonic Mnemonic = iota
	NOP
	LD
	LDH
	ADD
	ADC
	SUB
	SBC
	AND
	OR
	XOR
	CP
	INC
	DEC
	PUSH
	POP
	JP
	JR
	CALL
	RET
	RETI
	RST
	DI
	EI
	HALT
	STOP
	DAA
	CPL
	SCF
	CCF
	RLCA
	RRCA
	RLA
	RRA
	PREFIX

	// 0xCB prefixed
	RLC
	RRC
	RL
	RR
	SLA
	SRA
	SWAP
	SRL
	BIT
	RES
	SET

	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{
	InvalidMnemonic: "INVALID",
	NOP:             "NOP",
	LD:              "LD",
	LDH:             "LDH",
	ADD:             "ADD",
	ADC:             "ADC",
	SUB:             "SUB",
	SBC:             "SBC",
	AND:             "AND",
	OR:              "OR",
	XOR:             "XOR",
	CP:              "CP",
	INC:             "INC",
	DEC:             "DEC",
	PUSH:            "PUSH",
	POP:             "POP",
	JP:              "JP",
	JR:              "JR",
	CALL:            "CALL",
	RET:             "RET",
	RETI:            "RETI",
	RST:             "RST",
	DI:              "DI",
	EI:              "EI",
	HALT:            "HALT",
	STOP:            "STOP",
	DAA:             "DAA",
	CPL:             "CPL",
	SCF:             "SCF",
	CCF:             "CCF",
	RLCA:            "RLCA",
	RRCA:            "RRCA",
	RLA:             "RLA",
	RRA:             "RRA",
	PREFIX:          "PREFIX",
	RLC:             "RLC",
	RRC:             "RRC",
	RL:              "RL",
	RR:              "RR",
	SLA:             "SLA",
	SRA:             "SRA",
	SWAP:            "SWAP",
	SRL:             "SRL",
	BIT:             "BIT",
	RES:             "RES",
	SET:             "SET",
}

var mnemonicLookup = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, mnemonicCount)
	for i := NOP; i < mnemonicCount; i++ {
		m[mnemonicNames[i]] = i
	}
	return m
}()

// ParseMnemonic returns the Mnemonic with the given name.
func ParseMnemonic(s string) (Mnemonic, bool) {
	m, ok := mnemonicLookup[s]
	return m, ok
}

func (m Mnemonic) String() string {
	if m >= mnemonicCount {
		return mnemonicNames[InvalidMnemonic]
	}
	return mnemonicNames[m]
}

// IsBranch returns true for the mnemonics that may take a condition
// operand and transfer control.
func (m Mnemonic) IsBranch() bool {
	switch m {
	case JP, JR, CALL, RET:
		return true
	}
	return false
}
