package system

import (
	"crypto/ed25519"
	"math"

	"github.com/code-payments/name-service/pkg/solana"
	"github.com/code-payments/name-service/pkg/solana/runtime"
)

// MaxAccountSize bounds the space a single CreateAccount may allocate
const MaxAccountSize = 10 * 1024 * 1024

var (
	ErrInvalidInstructionData  = solana.NewInstructionError(solana.InstructionErrorInvalidInstructionData, "invalid system instruction")
	ErrMissingSignature        = solana.NewInstructionError(solana.InstructionErrorMissingRequiredSignature, "system instruction requires signature")
	ErrAccountAlreadyInUse     = solana.NewInstructionError(solana.InstructionErrorAccountAlreadyInUse, "account already in use")
	ErrInsufficientFunds       = solana.NewInstructionError(solana.InstructionErrorInsufficientFunds, "insufficient funds")
	ErrInvalidAccountSize      = solana.NewInstructionError(solana.InstructionErrorInvalidArgument, "invalid account size")
	ErrTransferFromDataAccount = solana.NewInstructionError(solana.InstructionErrorInvalidArgument, "transfer source must not carry data")
	ErrArithmeticOverflow      = solana.NewInstructionError(solana.InstructionErrorArithmeticOverflow, "lamport overflow")
)

// Processor is the built-in system program used by the host to allocate,
// assign and fund accounts.
type Processor struct{}

func NewProcessor() runtime.Program {
	return &Processor{}
}

// Process implements runtime.Program.Process
func (p *Processor) Process(_ ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	command, err := GetCommand(data)
	if err != nil {
		return ErrInvalidInstructionData
	}

	switch command {
	case CommandCreateAccount:
		args, err := DecodeCreateAccountArgs(data)
		if err != nil {
			return ErrInvalidInstructionData
		}
		return p.createAccount(accounts, args)
	case CommandTransfer:
		args, err := DecodeTransferArgs(data)
		if err != nil {
			return ErrInvalidInstructionData
		}
		return p.transfer(accounts, args)
	default:
		return ErrInvalidInstructionData
	}
}

func (p *Processor) createAccount(accounts []*runtime.AccountInfo, args *CreateAccountArgs) error {
	it := runtime.NewAccountIterator(accounts)
	funder, err := it.Next()
	if err != nil {
		return err
	}
	account, err := it.Next()
	if err != nil {
		return err
	}

	if !funder.IsSigner || !account.IsSigner {
		return ErrMissingSignature
	}

	if account.Lamports > 0 || len(account.Data) > 0 || !account.IsOwnedBy(ProgramKey) {
		return ErrAccountAlreadyInUse
	}

	if args.Size > MaxAccountSize {
		return ErrInvalidAccountSize
	}

	if err := move(funder, account, args.Lamports); err != nil {
		return err
	}

	account.Data = make([]byte, args.Size)
	account.Owner = args.Owner
	return nil
}

func (p *Processor) transfer(accounts []*runtime.AccountInfo, args *TransferArgs) error {
	it := runtime.NewAccountIterator(accounts)
	source, err := it.Next()
	if err != nil {
		return err
	}
	dest, err := it.Next()
	if err != nil {
		return err
	}

	if !source.IsSigner {
		return ErrMissingSignature
	}

	if len(source.Data) > 0 {
		return ErrTransferFromDataAccount
	}

	return move(source, dest, args.Lamports)
}

func move(source, dest *runtime.AccountInfo, lamports uint64) error {
	if source.Lamports < lamports {
		return ErrInsufficientFunds
	}
	if source != dest && dest.Lamports > math.MaxUint64-lamports {
		return ErrArithmeticOverflow
	}

	source.Lamports -= lamports
	dest.Lamports += lamports
	return nil
}
