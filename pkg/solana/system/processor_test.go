package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/solana"
	"github.com/code-payments/name-service/pkg/solana/runtime"
)

func TestProcessor_CreateAccount(t *testing.T) {
	keys := generateKeys(t, 3)

	funder := &runtime.AccountInfo{Key: keys[0], Owner: ProgramKey, IsSigner: true, IsWritable: true, Lamports: 100}
	account := &runtime.AccountInfo{Key: keys[1], Owner: ProgramKey, IsSigner: true, IsWritable: true}

	ix := CreateAccount(keys[0], keys[1], keys[2], 10, 73)
	require.NoError(t, runtime.Invoke(NewProcessor(), ProgramKey, []*runtime.AccountInfo{funder, account}, ix.Data))

	assert.EqualValues(t, 90, funder.Lamports)
	assert.EqualValues(t, 10, account.Lamports)
	assert.Equal(t, make([]byte, 73), account.Data)
	assert.Equal(t, keys[2], account.Owner)

	// Creating over an account that's already in use fails and changes nothing
	ix = CreateAccount(keys[0], keys[1], keys[2], 10, 73)
	account.Owner = ProgramKey
	err := runtime.Invoke(NewProcessor(), ProgramKey, []*runtime.AccountInfo{funder, account}, ix.Data)
	assert.Equal(t, solana.InstructionErrorAccountAlreadyInUse, solana.ErrorKeyOf(err))
	assert.EqualValues(t, 90, funder.Lamports)
}

func TestProcessor_CreateAccount_Invalid(t *testing.T) {
	keys := generateKeys(t, 3)

	for _, tc := range []struct {
		name     string
		signer   bool
		balance  uint64
		lamports uint64
		size     uint64
		expected solana.InstructionErrorKey
	}{
		{"missing signature", false, 100, 10, 8, solana.InstructionErrorMissingRequiredSignature},
		{"insufficient funds", true, 9, 10, 8, solana.InstructionErrorInsufficientFunds},
		{"too large", true, 100, 10, MaxAccountSize + 1, solana.InstructionErrorInvalidArgument},
	} {
		t.Run(tc.name, func(t *testing.T) {
			funder := &runtime.AccountInfo{Key: keys[0], Owner: ProgramKey, IsSigner: true, IsWritable: true, Lamports: tc.balance}
			account := &runtime.AccountInfo{Key: keys[1], Owner: ProgramKey, IsSigner: tc.signer, IsWritable: true}

			ix := CreateAccount(keys[0], keys[1], keys[2], tc.lamports, tc.size)
			err := runtime.Invoke(NewProcessor(), ProgramKey, []*runtime.AccountInfo{funder, account}, ix.Data)
			assert.Equal(t, tc.expected, solana.ErrorKeyOf(err))
			assert.Equal(t, tc.balance, funder.Lamports)
			assert.Empty(t, account.Data)
			assert.Equal(t, ProgramKey, account.Owner)
		})
	}
}

func TestProcessor_Transfer(t *testing.T) {
	keys := generateKeys(t, 3)

	from := &runtime.AccountInfo{Key: keys[0], Owner: ProgramKey, IsSigner: true, IsWritable: true, Lamports: 100}
	to := &runtime.AccountInfo{Key: keys[1], Owner: keys[2], IsWritable: true, Lamports: 1, Data: []byte{1}}

	ix := Transfer(keys[0], keys[1], 60)
	require.NoError(t, runtime.Invoke(NewProcessor(), ProgramKey, []*runtime.AccountInfo{from, to}, ix.Data))
	assert.EqualValues(t, 40, from.Lamports)
	assert.EqualValues(t, 61, to.Lamports)

	ix = Transfer(keys[0], keys[1], 41)
	err := runtime.Invoke(NewProcessor(), ProgramKey, []*runtime.AccountInfo{from, to}, ix.Data)
	assert.Equal(t, solana.InstructionErrorInsufficientFunds, solana.ErrorKeyOf(err))

	from.IsSigner = false
	ix = Transfer(keys[0], keys[1], 1)
	err = runtime.Invoke(NewProcessor(), ProgramKey, []*runtime.AccountInfo{from, to}, ix.Data)
	assert.Equal(t, solana.InstructionErrorMissingRequiredSignature, solana.ErrorKeyOf(err))

	from.IsSigner = true
	to.Lamports = math.MaxUint64
	err = runtime.Invoke(NewProcessor(), ProgramKey, []*runtime.AccountInfo{from, to}, ix.Data)
	assert.Equal(t, solana.InstructionErrorArithmeticOverflow, solana.ErrorKeyOf(err))
	assert.EqualValues(t, 40, from.Lamports)
}

func TestProcessor_UnknownCommand(t *testing.T) {
	err := NewProcessor().Process(ProgramKey, nil, []byte{9, 0, 0, 0})
	assert.Equal(t, solana.InstructionErrorInvalidInstructionData, solana.ErrorKeyOf(err))
}
