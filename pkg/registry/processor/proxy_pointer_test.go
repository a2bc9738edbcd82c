package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
	"github.com/code-payments/name-service/pkg/testutil"
)

func TestProxyPointer_HappyPath(t *testing.T) {
	programID := testutil.GenerateSolanaKey(t)
	target := testutil.GenerateSolanaKey(t)
	storage := newProgramAccount(t, programID, 0, nameservice.PointerSize)

	program := NewProxyPointerProgram()
	require.NoError(t, runtime.Invoke(program, programID, []*runtime.AccountInfo{storage}, target))

	var pointer nameservice.Pointer
	require.NoError(t, pointer.Unmarshal(storage.Data))
	assert.Equal(t, target, pointer.Target)
	assert.True(t, pointer.IsInitialized)

	// Pointers are write-once
	err := runtime.Invoke(program, programID, []*runtime.AccountInfo{storage}, testutil.GenerateSolanaKey(t))
	assert.Equal(t, nameservice.ErrSlotNotEmpty, err)

	require.NoError(t, pointer.Unmarshal(storage.Data))
	assert.Equal(t, target, pointer.Target)
}

func TestProxyPointer_ZeroFirstByteTarget(t *testing.T) {
	programID := testutil.GenerateSolanaKey(t)
	storage := newProgramAccount(t, programID, 0, nameservice.PointerSize)

	// A target starting with a zero byte still marks the slot used
	target := testutil.GenerateSolanaKey(t)
	target[0] = 0

	program := NewProxyPointerProgram()
	require.NoError(t, runtime.Invoke(program, programID, []*runtime.AccountInfo{storage}, target))
	assert.Equal(t, nameservice.ErrSlotNotEmpty, runtime.Invoke(program, programID, []*runtime.AccountInfo{storage}, target))
}

func TestProxyPointer_Rejections(t *testing.T) {
	programID := testutil.GenerateSolanaKey(t)

	for _, tc := range []struct {
		name     string
		storage  func(t *testing.T) *runtime.AccountInfo
		data     []byte
		extra    bool
		expected error
	}{
		{
			name:     "short payload",
			data:     make([]byte, 31),
			expected: nameservice.ErrInvalidInstructionLength,
		},
		{
			name:     "long payload",
			data:     make([]byte, 33),
			expected: nameservice.ErrInvalidInstructionLength,
		},
		{
			name: "storage not owned by program",
			storage: func(t *testing.T) *runtime.AccountInfo {
				return newProgramAccount(t, testutil.GenerateSolanaKey(t), 0, nameservice.PointerSize)
			},
			expected: nameservice.ErrInvalidOwner,
		},
		{
			name: "storage one byte short",
			storage: func(t *testing.T) *runtime.AccountInfo {
				return newProgramAccount(t, programID, 0, nameservice.PointerSize-1)
			},
			expected: nameservice.ErrAccountDataTooSmall,
		},
		{
			name: "storage flag malformed",
			storage: func(t *testing.T) *runtime.AccountInfo {
				account := newProgramAccount(t, programID, 0, nameservice.PointerSize)
				account.Data[nameservice.PointerFlagOffset] = 9
				return account
			},
			expected: nameservice.ErrInvalidFlag,
		},
		{
			name:     "unexpected accounts",
			extra:    true,
			expected: nameservice.ErrUnexpectedAccounts,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			storage := newProgramAccount(t, programID, 0, nameservice.PointerSize)
			if tc.storage != nil {
				storage = tc.storage(t)
			}

			accounts := []*runtime.AccountInfo{storage}
			if tc.extra {
				accounts = append(accounts, newProgramAccount(t, programID, 0, nameservice.PointerSize))
			}

			data := []byte(testutil.GenerateSolanaKey(t))
			if tc.data != nil {
				data = tc.data
			}

			before := snapshotAccounts(accounts)

			err := runtime.Invoke(NewProxyPointerProgram(), programID, accounts, data)
			assert.Equal(t, tc.expected, err)
			assertUnchanged(t, before, accounts)
		})
	}

	err := runtime.Invoke(NewProxyPointerProgram(), programID, nil, make([]byte, 32))
	assert.Equal(t, nameservice.ErrNotEnoughAccounts, err)
}
