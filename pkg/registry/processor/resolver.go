package processor

import (
	"crypto/ed25519"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
)

// resolveCounter follows the configured counter pointer to the counter
// account, which must be the account supplied for that role. It's the only
// source of authority over which account is the counter.
func resolveCounter(programID ed25519.PublicKey, pointer, counter *runtime.AccountInfo, cfg Config) (*nameservice.Counter, error) {
	if !pointer.HasKey(cfg.CounterPointerAddress) {
		return nil, nameservice.ErrInvalidCounterPointer
	}

	var decoded nameservice.Pointer
	if err := decoded.Unmarshal(pointer.Data); err != nil {
		return nil, err
	}
	if !decoded.IsInitialized {
		return nil, nameservice.ErrPointerNotInitialized
	}

	if !counter.HasKey(decoded.Target) {
		return nil, nameservice.ErrInvalidCounterAccount
	}

	if err := validateOwnedBy(counter, programID); err != nil {
		return nil, err
	}

	var state nameservice.Counter
	if err := state.Unmarshal(counter.Data); err != nil {
		return nil, err
	}
	return &state, nil
}
