package account

import (
	"bytes"
	"math"
	"time"

	"github.com/pkg/errors"
)

// Record is the persisted state of a single account
type Record struct {
	Id uint64

	Address string
	Owner   string

	Lamports uint64
	Data     []byte

	// Version is bumped on every successful save. Zero means the record has
	// never been saved.
	Version uint64

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("address is required")
	}

	if len(r.Owner) == 0 {
		return errors.New("owner is required")
	}

	if r.Lamports > math.MaxInt64 {
		return errors.New("lamports exceed storable range")
	}

	return nil
}

// IsEquivalent returns whether other holds the same account state, ignoring
// bookkeeping fields
func (r *Record) IsEquivalent(other *Record) bool {
	return r.Address == other.Address &&
		r.Owner == other.Owner &&
		r.Lamports == other.Lamports &&
		bytes.Equal(r.Data, other.Data)
}

func (r *Record) Clone() Record {
	data := make([]byte, len(r.Data))
	copy(data, r.Data)

	return Record{
		Id: r.Id,

		Address: r.Address,
		Owner:   r.Owner,

		Lamports: r.Lamports,
		Data:     data,

		Version: r.Version,

		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Owner = r.Owner

	dst.Lamports = r.Lamports
	dst.Data = make([]byte, len(r.Data))
	copy(dst.Data, r.Data)

	dst.Version = r.Version

	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
