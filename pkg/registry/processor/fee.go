package processor

import (
	"math"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
)

// transferFee moves exactly amount lamports from source to destination, or
// nothing at all
func transferFee(source, destination *runtime.AccountInfo, amount uint64) error {
	if source.Lamports < amount {
		return nameservice.ErrInsufficientFunds
	}
	if destination.Lamports > math.MaxUint64-amount {
		return nameservice.ErrBalanceOverflow
	}

	source.Lamports -= amount
	destination.Lamports += amount
	return nil
}
