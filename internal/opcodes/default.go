package opcodes

import (
	_ "embed"
	"sync"
)

//go:embed opcodes.json
var defaultJSON []byte

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded opcode table. It is loaded on first
// use and shared by every caller.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(defaultJSON)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}
