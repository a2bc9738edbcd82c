package system

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/name-service/pkg/solana"
	solbinary "github.com/code-payments/name-service/pkg/solana/binary"
)

// ProgramKey is the address of the system program
//
// Current key: 11111111111111111111111111111111
var ProgramKey = make(ed25519.PublicKey, ed25519.PublicKeySize)

type Command uint32

const (
	CommandCreateAccount Command = iota
	CommandAssign
	CommandTransfer
)

const (
	createAccountDataSize = 4 + 8 + 8 + ed25519.PublicKeySize
	transferDataSize      = 4 + 8
)

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	data := make([]byte, createAccountDataSize)

	var offset int
	solbinary.PutUint32(data, uint32(CommandCreateAccount), &offset)
	solbinary.PutUint64(data, lamports, &offset)
	solbinary.PutUint64(data, size, &offset)
	solbinary.PutKey32(data, owner, &offset)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L86-L91
func Transfer(source, dest ed25519.PublicKey, lamports uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	data := make([]byte, transferDataSize)

	var offset int
	solbinary.PutUint32(data, uint32(CommandTransfer), &offset)
	solbinary.PutUint64(data, lamports, &offset)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(source, true),
		solana.NewAccountMeta(dest, false),
	)
}

type CreateAccountArgs struct {
	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

type TransferArgs struct {
	Lamports uint64
}

// GetCommand returns the command encoded in system instruction data
func GetCommand(data []byte) (Command, error) {
	if len(data) < 4 {
		return 0, solana.ErrIncorrectInstruction
	}
	var command uint32
	var offset int
	solbinary.GetUint32(data, &command, &offset)
	return Command(command), nil
}

func DecodeCreateAccountArgs(data []byte) (*CreateAccountArgs, error) {
	if len(data) != createAccountDataSize {
		return nil, errors.Errorf("invalid instruction data size: %d", len(data))
	}

	command, err := GetCommand(data)
	if err != nil {
		return nil, err
	} else if command != CommandCreateAccount {
		return nil, solana.ErrIncorrectInstruction
	}

	var args CreateAccountArgs
	offset := 4
	solbinary.GetUint64(data, &args.Lamports, &offset)
	solbinary.GetUint64(data, &args.Size, &offset)
	solbinary.GetKey32(data, &args.Owner, &offset)
	return &args, nil
}

func DecodeTransferArgs(data []byte) (*TransferArgs, error) {
	if len(data) != transferDataSize {
		return nil, errors.Errorf("invalid instruction data size: %d", len(data))
	}

	command, err := GetCommand(data)
	if err != nil {
		return nil, err
	} else if command != CommandTransfer {
		return nil, solana.ErrIncorrectInstruction
	}

	var args TransferArgs
	offset := 4
	solbinary.GetUint64(data, &args.Lamports, &offset)
	return &args, nil
}
