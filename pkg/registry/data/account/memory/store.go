package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/code-payments/name-service/pkg/registry/data/account"
)

type store struct {
	mu        sync.Mutex
	last      uint64
	records   []*account.Record
	byAddress map[string]*account.Record
}

// New returns a new in memory account.Store
func New() account.Store {
	return &store{
		byAddress: make(map[string]*account.Record),
	}
}

// Save implements account.Store.Save
func (s *store) Save(_ context.Context, records ...*account.Record) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if _, ok := seen[record.Address]; ok {
			return account.ErrDuplicateRecord
		}
		seen[record.Address] = struct{}{}

		item, ok := s.byAddress[record.Address]
		switch {
		case record.Version == 0 && ok:
			return account.ErrAccountExists
		case record.Version == 0:
		case !ok || item.Version != record.Version:
			return account.ErrStaleVersion
		}
	}

	now := time.Now()
	for _, record := range records {
		item, ok := s.byAddress[record.Address]
		if !ok {
			s.last++
			cloned := record.Clone()
			cloned.Id = s.last
			cloned.CreatedAt = now

			item = &cloned
			s.records = append(s.records, item)
			s.byAddress[item.Address] = item
		}

		item.Owner = record.Owner
		item.Lamports = record.Lamports
		item.Data = make([]byte, len(record.Data))
		copy(item.Data, record.Data)
		item.Version++
		item.LastUpdatedAt = now

		item.CopyTo(record)
	}

	return nil
}

// Get implements account.Store.Get
func (s *store) Get(_ context.Context, address string) (*account.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byAddress[address]
	if !ok {
		return nil, account.ErrAccountNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// GetAllByOwner implements account.Store.GetAllByOwner
func (s *store) GetAllByOwner(_ context.Context, owner string, cursor uint64, limit uint64) ([]*account.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.findByOwner(owner)
	items = filterAfterCursor(items, cursor)

	if uint64(len(items)) > limit {
		items = items[:limit]
	}

	if len(items) == 0 {
		return nil, account.ErrAccountNotFound
	}
	return cloneSlice(items), nil
}

// CountByOwner implements account.Store.CountByOwner
func (s *store) CountByOwner(_ context.Context, owner string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.findByOwner(owner))), nil
}

func (s *store) findByOwner(owner string) []*account.Record {
	var res []*account.Record

	for _, item := range s.records {
		if item.Owner == owner {
			res = append(res, item)
		}
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Id < res[j].Id
	})
	return res
}

func filterAfterCursor(items []*account.Record, cursor uint64) []*account.Record {
	var res []*account.Record

	for _, item := range items {
		if item.Id > cursor {
			res = append(res, item)
		}
	}

	return res
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = 0
	s.records = nil
	s.byAddress = make(map[string]*account.Record)
}

func cloneSlice(items []*account.Record) []*account.Record {
	var res []*account.Record
	for _, item := range items {
		cloned := item.Clone()
		res = append(res, &cloned)
	}
	return res
}
