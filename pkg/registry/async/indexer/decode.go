package indexer

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/code-payments/name-service/pkg/registry/data/account"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
	"github.com/code-payments/name-service/pkg/solana/nameservice"
)

// decodeAccountName returns the registration held by an account-name storage
// account, or nil if the account holds none. The counter and uncommitted
// storage accounts share the owner and are skipped.
func decodeAccountName(program ed25519.PublicKey, record *account.Record) (*registration.Record, error) {
	if len(record.Data) < nameservice.AccountRecordSize {
		return nil, nil
	}

	var state nameservice.AccountRecord
	if err := state.Unmarshal(record.Data); err != nil {
		return nil, err
	}

	if !state.IsInitialized {
		return nil, nil
	}

	return &registration.Record{
		StorageAccount: record.Address,
		Program:        base58.Encode(program),
		Kind:           registration.KindAccount,

		Target: base58.Encode(state.Target),
		Label:  state.Label.String(),

		Index: state.Index,
	}, nil
}

// decodeTokenName returns the registration held by a token-name storage
// account, or nil if the slot is still empty
func decodeTokenName(program ed25519.PublicKey, record *account.Record) (*registration.Record, error) {
	if len(record.Data) < nameservice.RegisterSize {
		return nil, nil
	}

	if nameservice.IsZeroed(record.Data[:nameservice.RegisterSize]) {
		return nil, nil
	}

	var state nameservice.Register
	if err := state.Unmarshal(record.Data); err != nil {
		return nil, err
	}

	return &registration.Record{
		StorageAccount: record.Address,
		Program:        base58.Encode(program),
		Kind:           registration.KindToken,

		Target: base58.Encode(state.Token),
		Label:  state.Label.String(),
	}, nil
}
