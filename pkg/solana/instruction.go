package solana

import (
	"bytes"
	"crypto/ed25519"
	"errors"
)

// ErrIncorrectInstruction indicates instruction data encodes a different
// instruction than the one being decoded
var ErrIncorrectInstruction = errors.New("incorrect instruction")

// AccountMeta represents the account information required
// for building an instruction.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// Instruction represents a program instruction.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// UniqueAccounts returns the distinct accounts referenced by the instruction
// in order of first appearance. Signer and writable flags are merged across
// duplicate references.
func (i Instruction) UniqueAccounts() []AccountMeta {
	var res []AccountMeta
	for _, meta := range i.Accounts {
		var found bool
		for j := range res {
			if bytes.Equal(res[j].PublicKey, meta.PublicKey) {
				res[j].IsSigner = res[j].IsSigner || meta.IsSigner
				res[j].IsWritable = res[j].IsWritable || meta.IsWritable
				found = true
				break
			}
		}

		if !found {
			res = append(res, meta)
		}
	}
	return res
}
