package registration

import (
	"context"
	"errors"

	"github.com/code-payments/name-service/pkg/database/query"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationExists   = errors.New("registration already exists")
)

type Store interface {
	// Put saves a new registration. Storage accounts are write-once, so
	// ErrRegistrationExists is returned for a storage account that is already
	// indexed, or for an account registration reusing a program's index.
	Put(ctx context.Context, record *Record) error

	// GetByStorageAccount gets the registration held by a storage account
	//
	// ErrRegistrationNotFound is returned if none exists
	GetByStorageAccount(ctx context.Context, storageAccount string) (*Record, error)

	// GetByIndex gets the account registration a program issued at index
	//
	// ErrRegistrationNotFound is returned if none exists
	GetByIndex(ctx context.Context, program string, index uint64) (*Record, error)

	// GetAllByLabel gets a page of registrations with the provided label,
	// ordered by Id. Paging defaults to query.DefaultPaginationHandler.
	//
	// ErrRegistrationNotFound is returned if the page is empty
	GetAllByLabel(ctx context.Context, label string, opts ...query.Option) ([]*Record, error)

	// GetAllByTarget gets a page of registrations naming target, ordered by Id
	//
	// ErrRegistrationNotFound is returned if the page is empty
	GetAllByTarget(ctx context.Context, target string, opts ...query.Option) ([]*Record, error)

	// Count counts registrations of the provided kind
	Count(ctx context.Context, kind Kind) (uint64, error)
}
