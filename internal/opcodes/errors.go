package opcodes

import "fmt"

// UnknownMnemonicError is returned when a table entry names a
// mnemonic outside the supported instruction set.
type UnknownMnemonicError struct {
	Key      string
	Mnemonic string
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("%s: unknown mnemonic %q", e.Key, e.Mnemonic)
}

// UnknownOperandError is returned when a table entry uses an operand
// name outside the operand vocabulary.
type UnknownOperandError struct {
	Key  string
	Name string
}

func (e *UnknownOperandError) Error() string {
	return fmt.Sprintf("%s: unknown operand %q", e.Key, e.Name)
}
