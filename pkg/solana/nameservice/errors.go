package nameservice

import (
	"errors"

	"github.com/code-payments/name-service/pkg/solana"
)

// ErrorClass groups program failures by what went wrong
type ErrorClass uint8

const (
	ErrorClassUnknown ErrorClass = iota
	ErrorClassIdentity
	ErrorClassStatePrecondition
	ErrorClassDecode
	ErrorClassResource
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassIdentity:
		return "identity"
	case ErrorClassStatePrecondition:
		return "state_precondition"
	case ErrorClassDecode:
		return "decode"
	case ErrorClassResource:
		return "resource"
	}
	return "unknown"
}

// ProgramError is a named failure raised by one of the registry programs. The
// Key is what the runtime reports to the caller.
type ProgramError struct {
	Key    solana.InstructionErrorKey
	Class  ErrorClass
	Reason string
}

func newProgramError(key solana.InstructionErrorKey, class ErrorClass, reason string) *ProgramError {
	return &ProgramError{
		Key:    key,
		Class:  class,
		Reason: reason,
	}
}

func (e *ProgramError) Error() string {
	return string(e.Key) + ": " + e.Reason
}

// ErrorKey implements solana.KeyedError.ErrorKey
func (e *ProgramError) ErrorKey() solana.InstructionErrorKey {
	return e.Key
}

// ClassOf returns the ErrorClass of err, or ErrorClassUnknown if err is not a
// ProgramError.
func ClassOf(err error) ErrorClass {
	var programErr *ProgramError
	if errors.As(err, &programErr) {
		return programErr.Class
	}
	return ErrorClassUnknown
}

// Identity and authorization failures
var (
	ErrInvalidPaymentAccount = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "invalid payment account")
	ErrInvalidCounterPointer = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "invalid counter pointer")
	ErrInvalidCounterAccount = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "invalid counter address")
	ErrInvalidOwner          = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "account must be owned by program")
	ErrInvalidTokenAccount   = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "token account must be owned by the token program")
	ErrMinterMismatch        = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "signer is not the minter of the token")
	ErrMissingSigner         = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "transaction must be signed by the minter")
	ErrDuplicateAccount      = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassIdentity, "account supplied for more than one role")
)

// State precondition failures
var (
	ErrSlotNotEmpty          = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassStatePrecondition, "account data is not empty")
	ErrAccountDataTooSmall   = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassStatePrecondition, "account data field is insufficient")
	ErrPointerNotInitialized = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassStatePrecondition, "pointer is not initialized")
)

// Decode failures
var (
	ErrInvalidFlag              = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassDecode, "invalid initialization flag")
	ErrInvalidLabel             = newProgramError(solana.InstructionErrorInvalidInstructionData, ErrorClassDecode, "label is not valid utf-8")
	ErrLabelTooLong             = newProgramError(solana.InstructionErrorInvalidAccountData, ErrorClassDecode, "label exceeds 32 bytes")
	ErrInvalidInstructionLength = newProgramError(solana.InstructionErrorInvalidInstructionData, ErrorClassDecode, "invalid instruction data length")
	ErrNotEnoughAccounts        = newProgramError(solana.InstructionErrorNotEnoughAccountKeys, ErrorClassDecode, "not enough accounts")
	ErrUnexpectedAccounts       = newProgramError(solana.InstructionErrorInvalidArgument, ErrorClassDecode, "unexpected extra accounts")
)

// Resource failures
var (
	ErrInsufficientFunds = newProgramError(solana.InstructionErrorInsufficientFunds, ErrorClassResource, "insufficient funds in storage account")
	ErrBalanceOverflow   = newProgramError(solana.InstructionErrorArithmeticOverflow, ErrorClassResource, "payment account balance overflow")
	ErrCounterOverflow   = newProgramError(solana.InstructionErrorArithmeticOverflow, ErrorClassResource, "counter index overflow")
)
