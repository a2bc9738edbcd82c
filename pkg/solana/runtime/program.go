package runtime

import (
	"crypto/ed25519"
)

// Program processes a single instruction against the accounts supplied by the
// host. Implementations run to completion, never block and must not retain
// references to accounts after returning.
type Program interface {
	Process(programID ed25519.PublicKey, accounts []*AccountInfo, data []byte) error
}

// ProgramFunc adapts an ordinary function to a Program
type ProgramFunc func(programID ed25519.PublicKey, accounts []*AccountInfo, data []byte) error

// Process implements Program.Process
func (f ProgramFunc) Process(programID ed25519.PublicKey, accounts []*AccountInfo, data []byte) error {
	return f(programID, accounts, data)
}
