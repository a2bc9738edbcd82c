package solana

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorKeyOf(t *testing.T) {
	assert.EqualValues(t, "", ErrorKeyOf(nil))
	assert.Equal(t, InstructionErrorGenericError, ErrorKeyOf(errors.New("unknown")))

	err := NewInstructionError(InstructionErrorInsufficientFunds, "not enough lamports")
	assert.Equal(t, "InsufficientFunds: not enough lamports", err.Error())
	assert.Equal(t, InstructionErrorInsufficientFunds, ErrorKeyOf(err))
	assert.Equal(t, InstructionErrorInsufficientFunds, ErrorKeyOf(pkgerrors.Wrap(err, "failed to pay fee")))

	assert.Equal(t, "InvalidArgument", NewInstructionError(InstructionErrorInvalidArgument, "").Error())
}
