package registration

import (
	"time"

	"github.com/pkg/errors"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindAccount      // Labelled address with a sequential index
	KindToken        // Labelled token mint
)

// Record is a decoded, committed registration found in a program owned
// storage account
type Record struct {
	Id uint64

	StorageAccount string
	Program        string
	Kind           Kind

	Target string
	Label  string

	// Index is the sequential index of an account registration. Token
	// registrations have none.
	Index uint64

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.StorageAccount) == 0 {
		return errors.New("storage account is required")
	}

	if len(r.Program) == 0 {
		return errors.New("program is required")
	}

	if len(r.Target) == 0 {
		return errors.New("target is required")
	}

	switch r.Kind {
	case KindAccount:
		if r.Index == 0 {
			return errors.New("index is required")
		}
	case KindToken:
		if r.Index != 0 {
			return errors.New("index cannot be set")
		}
	default:
		return errors.New("kind is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		StorageAccount: r.StorageAccount,
		Program:        r.Program,
		Kind:           r.Kind,

		Target: r.Target,
		Label:  r.Label,

		Index: r.Index,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.StorageAccount = r.StorageAccount
	dst.Program = r.Program
	dst.Kind = r.Kind

	dst.Target = r.Target
	dst.Label = r.Label

	dst.Index = r.Index

	dst.CreatedAt = r.CreatedAt
}

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindToken:
		return "token"
	}
	return "unknown"
}
