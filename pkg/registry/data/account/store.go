package account

import (
	"context"
	"errors"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrStaleVersion    = errors.New("account version is stale")
	ErrDuplicateRecord = errors.New("account saved more than once in a single call")
)

type Store interface {
	// Save creates or updates every provided record as a single atomic step.
	//
	// A record with a zero Version is created, and ErrAccountExists is returned
	// if its address is taken. Any other record is updated only if its Version
	// matches the stored one, otherwise ErrStaleVersion is returned. An address
	// may appear at most once per call. On success
	// every record's Version is incremented and its timestamps are refreshed.
	// On failure nothing is written.
	Save(ctx context.Context, records ...*Record) error

	// Get gets an account by its address
	//
	// ErrAccountNotFound is returned if no account exists
	Get(ctx context.Context, address string) (*Record, error)

	// GetAllByOwner gets up to limit accounts owned by owner whose Id is
	// strictly greater than cursor, ordered by Id ascending.
	//
	// ErrAccountNotFound is returned if no accounts are found
	GetAllByOwner(ctx context.Context, owner string, cursor uint64, limit uint64) ([]*Record, error)

	// CountByOwner counts the accounts owned by owner
	CountByOwner(ctx context.Context, owner string) (uint64, error)
}
