package processor

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
	"github.com/code-payments/name-service/pkg/solana/token"
)

// nextAccounts splits the account list into exactly n role accounts
func nextAccounts(accounts []*runtime.AccountInfo, n int) ([]*runtime.AccountInfo, error) {
	it := runtime.NewAccountIterator(accounts)

	roles := make([]*runtime.AccountInfo, n)
	for i := range roles {
		account, err := it.Next()
		if err != nil {
			return nil, nameservice.ErrNotEnoughAccounts
		}
		roles[i] = account
	}

	if it.Remaining() > 0 {
		return nil, nameservice.ErrUnexpectedAccounts
	}
	return roles, nil
}

func validateDistinct(accounts ...*runtime.AccountInfo) error {
	for i := range accounts {
		for j := i + 1; j < len(accounts); j++ {
			if bytes.Equal(accounts[i].Key, accounts[j].Key) {
				return nameservice.ErrDuplicateAccount
			}
		}
	}
	return nil
}

func validatePaymentAccount(account *runtime.AccountInfo, cfg Config) error {
	if !account.HasKey(cfg.PaymentAddress) {
		return nameservice.ErrInvalidPaymentAccount
	}
	return nil
}

func validateOwnedBy(account *runtime.AccountInfo, program ed25519.PublicKey) error {
	if !account.IsOwnedBy(program) {
		return nameservice.ErrInvalidOwner
	}
	return nil
}

func validateDataSize(account *runtime.AccountInfo, size int) error {
	if len(account.Data) < size {
		return nameservice.ErrAccountDataTooSmall
	}
	return nil
}

// validateMinter checks the mint authority embedded in the token account
// against the supplied minter, which must also have signed
func validateMinter(tokenAccount, minter *runtime.AccountInfo, cfg Config) error {
	if !tokenAccount.IsOwnedBy(cfg.TokenProgramAddress) {
		return nameservice.ErrInvalidTokenAccount
	}

	authority, err := token.GetMintAuthorityBytes(tokenAccount.Data)
	if err != nil {
		return nameservice.ErrAccountDataTooSmall
	}

	if !bytes.Equal(authority, minter.Key) {
		return nameservice.ErrMinterMismatch
	}

	if !minter.IsSigner {
		return nameservice.ErrMissingSigner
	}
	return nil
}

// validateEmptyFlag requires the initialization flag at offset to be unset
func validateEmptyFlag(account *runtime.AccountInfo, offset int) error {
	switch account.Data[offset] {
	case 0:
		return nil
	case 1:
		return nameservice.ErrSlotNotEmpty
	default:
		return nameservice.ErrInvalidFlag
	}
}

// validateEmptySpan requires data[0:size] to be zeroed, for layouts without a
// flag byte
func validateEmptySpan(account *runtime.AccountInfo, size int) error {
	if !nameservice.IsZeroed(account.Data[:size]) {
		return nameservice.ErrSlotNotEmpty
	}
	return nil
}
