package processor

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
	"github.com/code-payments/name-service/pkg/solana/token"
	"github.com/code-payments/name-service/pkg/testutil"
)

type tokenNameEnv struct {
	program   runtime.Program
	programID ed25519.PublicKey

	payment *runtime.AccountInfo
	token   *runtime.AccountInfo
	minter  *runtime.AccountInfo
	storage *runtime.AccountInfo
}

func setupTokenNameEnv(t *testing.T) *tokenNameEnv {
	programID := testutil.GenerateSolanaKey(t)

	minter, err := base58.Decode("4NGtJoZ8wy7mwtzWi8JByPMWbTAQHicHKAfcCbsx1yra")
	require.NoError(t, err)
	tokenAddress, err := base58.Decode("FJNj5YDJVT3pbtiZsMMeRPJumM35iF71rUzDQWC7CXqq")
	require.NoError(t, err)

	mint := &token.Mint{
		MintAuthority:   minter,
		Decimals:        9,
		IsInitialized:   true,
		FreezeAuthority: minter,
	}

	return &tokenNameEnv{
		program:   NewTokenNameProgram(WithConfig(Config{})),
		programID: programID,

		payment: newSystemAccount(nameservice.DefaultPaymentAddress, 0),
		token: &runtime.AccountInfo{
			Key:   tokenAddress,
			Owner: token.ProgramKey,
			Data:  mint.Marshal(),
		},
		minter: &runtime.AccountInfo{
			Key:      minter,
			Owner:    testutil.GenerateSolanaKey(t),
			IsSigner: true,
		},
		storage: newProgramAccount(t, programID, testFee+1, nameservice.RegisterSize),
	}
}

func (e *tokenNameEnv) accounts() []*runtime.AccountInfo {
	return []*runtime.AccountInfo{e.payment, e.token, e.minter, e.storage}
}

func TestTokenName_HappyPath(t *testing.T) {
	env := setupTokenNameEnv(t)

	label := []byte("some super random token name xxx")
	require.NoError(t, runtime.Invoke(env.program, env.programID, env.accounts(), label))

	assert.EqualValues(t, testFee, env.payment.Lamports)
	assert.EqualValues(t, 1, env.storage.Lamports)

	var register nameservice.Register
	require.NoError(t, register.Unmarshal(env.storage.Data))
	assert.Equal(t, env.token.Key, register.Token)
	assert.Equal(t, "some super random token name xxx", register.Label.String())

	// A second registration into the same slot fails without effect
	env.storage.Lamports += testFee
	before := snapshotAccounts(env.accounts())
	err := runtime.Invoke(env.program, env.programID, env.accounts(), []byte("another random token name xxxxxx"))
	assert.Equal(t, nameservice.ErrSlotNotEmpty, err)
	assertUnchanged(t, before, env.accounts())
}

func TestTokenName_Rejections(t *testing.T) {
	validLabel := []byte("some super random token name xxx")

	invalidUTF8 := append([]byte{}, validLabel...)
	invalidUTF8[0] = 0xff

	for _, tc := range []struct {
		name     string
		setup    func(t *testing.T, env *tokenNameEnv)
		data     []byte
		expected error
	}{
		{
			name: "wrong payment account",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.payment = newSystemAccount(testutil.GenerateSolanaKey(t), 0)
			},
			expected: nameservice.ErrInvalidPaymentAccount,
		},
		{
			name: "token not owned by token program",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.token.Owner = testutil.GenerateSolanaKey(t)
			},
			expected: nameservice.ErrInvalidTokenAccount,
		},
		{
			name: "token data too small",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.token.Data = env.token.Data[:token.MintAuthorityOffset+ed25519.PublicKeySize-1]
			},
			expected: nameservice.ErrAccountDataTooSmall,
		},
		{
			name: "signer is not the minter",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.minter.Key = testutil.GenerateSolanaKey(t)
			},
			expected: nameservice.ErrMinterMismatch,
		},
		{
			name: "minter did not sign",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.minter.IsSigner = false
			},
			expected: nameservice.ErrMissingSigner,
		},
		{
			name: "storage aliases payment",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.storage.Key = env.payment.Key
			},
			expected: nameservice.ErrDuplicateAccount,
		},
		{
			name:     "label not utf-8",
			data:     invalidUTF8,
			expected: nameservice.ErrInvalidLabel,
		},
		{
			name:     "label too long",
			data:     append(append([]byte{}, validLabel...), 'x'),
			expected: nameservice.ErrLabelTooLong,
		},
		{
			name:     "label too short",
			data:     []byte("short"),
			expected: nameservice.ErrInvalidInstructionLength,
		},
		{
			name: "storage not owned by program",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.storage.Owner = testutil.GenerateSolanaKey(t)
			},
			expected: nameservice.ErrInvalidOwner,
		},
		{
			name: "storage one byte short",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.storage.Data = make([]byte, nameservice.RegisterSize-1)
			},
			expected: nameservice.ErrAccountDataTooSmall,
		},
		{
			name: "storage not empty",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.storage.Data[nameservice.RegisterSize-1] = 1
			},
			expected: nameservice.ErrSlotNotEmpty,
		},
		{
			name: "insufficient funds",
			setup: func(t *testing.T, env *tokenNameEnv) {
				env.storage.Lamports = testFee - 1
			},
			expected: nameservice.ErrInsufficientFunds,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTokenNameEnv(t)
			if tc.setup != nil {
				tc.setup(t, env)
			}

			data := validLabel
			if tc.data != nil {
				data = tc.data
			}

			before := snapshotAccounts(env.accounts())

			err := runtime.Invoke(env.program, env.programID, env.accounts(), data)
			assert.Equal(t, tc.expected, err)
			assertUnchanged(t, before, env.accounts())
		})
	}
}
