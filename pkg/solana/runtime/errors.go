package runtime

import (
	"github.com/code-payments/name-service/pkg/solana"
)

var (
	ErrNotEnoughAccountKeys        = solana.NewInstructionError(solana.InstructionErrorNotEnoughAccountKeys, "not enough account keys")
	ErrAccountDataSizeChanged      = solana.NewInstructionError(solana.InstructionErrorAccountDataSizeChanged, "account data size changed")
	ErrReadonlyDataModified        = solana.NewInstructionError(solana.InstructionErrorReadonlyDataModified, "readonly account data modified")
	ErrReadonlyLamportChange       = solana.NewInstructionError(solana.InstructionErrorReadonlyLamportChange, "readonly account lamports changed")
	ErrExternalAccountDataModified = solana.NewInstructionError(solana.InstructionErrorExternalAccountDataModified, "data modified on account not owned by program")
	ErrExternalAccountLamportSpend = solana.NewInstructionError(solana.InstructionErrorExternalAccountLamportSpend, "lamports debited from account not owned by program")
	ErrModifiedProgramID           = solana.NewInstructionError(solana.InstructionErrorModifiedProgramID, "account owner changed without authority")
	ErrUnbalancedInstruction       = solana.NewInstructionError(solana.InstructionErrorUnbalancedInstruction, "sum of account balances changed")
)
