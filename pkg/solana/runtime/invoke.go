package runtime

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"math/bits"

	"github.com/code-payments/name-service/pkg/solana"
)

// Invoke runs a program over the provided accounts as a single all-or-nothing
// step. If the program fails, panics or breaks a runtime rule, every account
// is restored to its state before the call and the error is returned.
//
// Duplicate references to the same account must share the same *AccountInfo.
func Invoke(program Program, programID ed25519.PublicKey, accounts []*AccountInfo, data []byte) (err error) {
	unique := uniqueAccounts(accounts)

	snapshots := make([]snapshot, len(unique))
	for i, account := range unique {
		snapshots[i] = account.snapshot()
	}

	defer func() {
		if pc := recover(); pc != nil {
			err = solana.NewInstructionError(solana.InstructionErrorGenericError, fmt.Sprintf("program panicked: %v", pc))
		}

		if err != nil {
			for i, account := range unique {
				account.restore(snapshots[i])
			}
		}
	}()

	if err := program.Process(programID, accounts, data); err != nil {
		return err
	}

	return verify(programID, unique, snapshots)
}

func verify(programID ed25519.PublicKey, accounts []*AccountInfo, before []snapshot) error {
	var beforeHi, beforeLo, afterHi, afterLo, carry uint64

	for i, account := range accounts {
		prev := before[i]
		wasOwned := bytes.Equal(prev.owner, programID)

		// Only the owning program may reassign an account, and only while it
		// holds no data.
		if !bytes.Equal(account.Owner, prev.owner) {
			if !account.IsWritable || !wasOwned || !isZeroed(account.Data) {
				return ErrModifiedProgramID
			}
		}

		// Sizes are fixed, except for the owner allocating a fresh account.
		if len(account.Data) != len(prev.data) {
			if !account.IsWritable || !wasOwned || len(prev.data) != 0 {
				return ErrAccountDataSizeChanged
			}
		} else if !bytes.Equal(account.Data, prev.data) {
			if !account.IsWritable {
				return ErrReadonlyDataModified
			}
			if !wasOwned {
				return ErrExternalAccountDataModified
			}
		}

		if account.Lamports != prev.lamports {
			if !account.IsWritable {
				return ErrReadonlyLamportChange
			}
			if account.Lamports < prev.lamports && !wasOwned {
				return ErrExternalAccountLamportSpend
			}
		}

		beforeLo, carry = bits.Add64(beforeLo, prev.lamports, 0)
		beforeHi += carry
		afterLo, carry = bits.Add64(afterLo, account.Lamports, 0)
		afterHi += carry
	}

	if beforeHi != afterHi || beforeLo != afterLo {
		return ErrUnbalancedInstruction
	}
	return nil
}

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

func uniqueAccounts(accounts []*AccountInfo) []*AccountInfo {
	res := make([]*AccountInfo, 0, len(accounts))
	seen := make(map[*AccountInfo]struct{}, len(accounts))
	for _, account := range accounts {
		if _, ok := seen[account]; ok {
			continue
		}
		seen[account] = struct{}{}
		res = append(res, account)
	}
	return res
}
