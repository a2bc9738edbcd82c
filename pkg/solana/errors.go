package solana

import "errors"

// InstructionErrorKey is the string key of an error returned while processing
// an instruction.
//
// Source: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
type InstructionErrorKey string

const (
	InstructionErrorGenericError                InstructionErrorKey = "GenericError"
	InstructionErrorInvalidArgument             InstructionErrorKey = "InvalidArgument"
	InstructionErrorInvalidInstructionData      InstructionErrorKey = "InvalidInstructionData"
	InstructionErrorInvalidAccountData          InstructionErrorKey = "InvalidAccountData"
	InstructionErrorAccountDataTooSmall         InstructionErrorKey = "AccountDataTooSmall"
	InstructionErrorInsufficientFunds           InstructionErrorKey = "InsufficientFunds"
	InstructionErrorIncorrectProgramID          InstructionErrorKey = "IncorrectProgramId"
	InstructionErrorMissingRequiredSignature    InstructionErrorKey = "MissingRequiredSignature"
	InstructionErrorAccountAlreadyInitialized   InstructionErrorKey = "AccountAlreadyInitialized"
	InstructionErrorUninitializedAccount        InstructionErrorKey = "UninitializedAccount"
	InstructionErrorUnbalancedInstruction       InstructionErrorKey = "UnbalancedInstruction"
	InstructionErrorExternalAccountLamportSpend InstructionErrorKey = "ExternalAccountLamportSpend"
	InstructionErrorExternalAccountDataModified InstructionErrorKey = "ExternalAccountDataModified"
	InstructionErrorReadonlyLamportChange       InstructionErrorKey = "ReadonlyLamportChange"
	InstructionErrorReadonlyDataModified        InstructionErrorKey = "ReadonlyDataModified"
	InstructionErrorNotEnoughAccountKeys        InstructionErrorKey = "NotEnoughAccountKeys"
	InstructionErrorAccountDataSizeChanged      InstructionErrorKey = "AccountDataSizeChanged"
	InstructionErrorArithmeticOverflow          InstructionErrorKey = "ArithmeticOverflow"
	InstructionErrorUnsupportedProgramID        InstructionErrorKey = "UnsupportedProgramId"
	InstructionErrorModifiedProgramID           InstructionErrorKey = "ModifiedProgramId"
	InstructionErrorAccountAlreadyInUse         InstructionErrorKey = "AccountAlreadyInUse"
)

// KeyedError is implemented by errors that map onto an InstructionErrorKey.
type KeyedError interface {
	error
	ErrorKey() InstructionErrorKey
}

// InstructionError indicates an instruction failed with a well known key.
type InstructionError struct {
	Key    InstructionErrorKey
	Reason string
}

// NewInstructionError returns a new InstructionError for the provided key.
func NewInstructionError(key InstructionErrorKey, reason string) *InstructionError {
	return &InstructionError{
		Key:    key,
		Reason: reason,
	}
}

func (e *InstructionError) Error() string {
	if len(e.Reason) == 0 {
		return string(e.Key)
	}
	return string(e.Key) + ": " + e.Reason
}

// ErrorKey implements KeyedError.ErrorKey
func (e *InstructionError) ErrorKey() InstructionErrorKey {
	return e.Key
}

// ErrorKeyOf returns the InstructionErrorKey carried by err, or
// InstructionErrorGenericError if err doesn't carry one.
func ErrorKeyOf(err error) InstructionErrorKey {
	if err == nil {
		return ""
	}

	var keyed KeyedError
	if errors.As(err, &keyed) {
		return keyed.ErrorKey()
	}
	return InstructionErrorGenericError
}
