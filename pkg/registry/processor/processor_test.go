package processor

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
	"github.com/code-payments/name-service/pkg/solana/system"
	"github.com/code-payments/name-service/pkg/testutil"
)

// snapshotAccounts deep copies accounts so a failed invocation can be
// compared against the original state
func snapshotAccounts(accounts []*runtime.AccountInfo) []runtime.AccountInfo {
	res := make([]runtime.AccountInfo, len(accounts))
	for i, account := range accounts {
		res[i] = *account
		res[i].Owner = append(ed25519.PublicKey{}, account.Owner...)
		res[i].Data = append([]byte{}, account.Data...)
	}
	return res
}

func assertUnchanged(t *testing.T, expected []runtime.AccountInfo, actual []*runtime.AccountInfo) {
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].Lamports, actual[i].Lamports)
		assert.Equal(t, expected[i].Owner, actual[i].Owner)
		assert.True(t, bytes.Equal(expected[i].Data, actual[i].Data))
	}
}

func newSystemAccount(key ed25519.PublicKey, lamports uint64) *runtime.AccountInfo {
	return &runtime.AccountInfo{
		Key:        key,
		Owner:      system.ProgramKey,
		IsWritable: true,
		Lamports:   lamports,
	}
}

func TestFeeTransfer(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	source := newSystemAccount(keys[0], 10)
	destination := newSystemAccount(keys[1], 5)

	require.NoError(t, transferFee(source, destination, 10))
	assert.EqualValues(t, 0, source.Lamports)
	assert.EqualValues(t, 15, destination.Lamports)

	assert.Equal(t, nameservice.ErrInsufficientFunds, transferFee(source, destination, 1))
	assert.EqualValues(t, 0, source.Lamports)
	assert.EqualValues(t, 15, destination.Lamports)

	source.Lamports = 10
	destination.Lamports = ^uint64(0) - 9
	assert.Equal(t, nameservice.ErrBalanceOverflow, transferFee(source, destination, 10))
	assert.EqualValues(t, 10, source.Lamports)

	require.NoError(t, transferFee(source, destination, 0))
}

func TestNextAccounts(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)
	accounts := []*runtime.AccountInfo{
		newSystemAccount(keys[0], 0),
		newSystemAccount(keys[1], 0),
		newSystemAccount(keys[2], 0),
	}

	roles, err := nextAccounts(accounts, 3)
	require.NoError(t, err)
	assert.Equal(t, accounts, roles)

	_, err = nextAccounts(accounts, 4)
	assert.Equal(t, nameservice.ErrNotEnoughAccounts, err)

	_, err = nextAccounts(accounts, 2)
	assert.Equal(t, nameservice.ErrUnexpectedAccounts, err)

	assert.NoError(t, validateDistinct(accounts...))
	assert.Equal(t, nameservice.ErrDuplicateAccount, validateDistinct(accounts[0], accounts[1], accounts[0]))
}
