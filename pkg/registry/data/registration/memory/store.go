package memory

import (
	"context"
	"sync"
	"time"

	"github.com/code-payments/name-service/pkg/database/query"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
)

type store struct {
	mu      sync.Mutex
	last    uint64
	records []*registration.Record
}

// New returns a new in memory registration.Store
func New() registration.Store {
	return &store{}
}

// Put implements registration.Store.Put
func (s *store) Put(_ context.Context, data *registration.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(data); item != nil {
		return registration.ErrRegistrationExists
	}

	s.last++
	data.Id = s.last
	data.CreatedAt = time.Now()

	cloned := data.Clone()
	s.records = append(s.records, &cloned)

	return nil
}

// GetByStorageAccount implements registration.Store.GetByStorageAccount
func (s *store) GetByStorageAccount(_ context.Context, storageAccount string) (*registration.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.records {
		if item.StorageAccount == storageAccount {
			cloned := item.Clone()
			return &cloned, nil
		}
	}
	return nil, registration.ErrRegistrationNotFound
}

// GetByIndex implements registration.Store.GetByIndex
func (s *store) GetByIndex(_ context.Context, program string, index uint64) (*registration.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByIndex(program, index)
	if item == nil {
		return nil, registration.ErrRegistrationNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// GetAllByLabel implements registration.Store.GetAllByLabel
func (s *store) GetAllByLabel(_ context.Context, label string, opts ...query.Option) ([]*registration.Record, error) {
	req, err := query.DefaultPaginationHandler(opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.page(req, func(item *registration.Record) bool {
		return item.Label == label
	})
}

// GetAllByTarget implements registration.Store.GetAllByTarget
func (s *store) GetAllByTarget(_ context.Context, target string, opts ...query.Option) ([]*registration.Record, error) {
	req, err := query.DefaultPaginationHandler(opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.page(req, func(item *registration.Record) bool {
		return item.Target == target
	})
}

// Count implements registration.Store.Count
func (s *store) Count(_ context.Context, kind registration.Kind) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count uint64
	for _, item := range s.records {
		if item.Kind == kind {
			count++
		}
	}
	return count, nil
}

func (s *store) find(data *registration.Record) *registration.Record {
	for _, item := range s.records {
		if item.StorageAccount == data.StorageAccount {
			return item
		}
	}

	if data.Kind == registration.KindAccount {
		return s.findByIndex(data.Program, data.Index)
	}
	return nil
}

func (s *store) findByIndex(program string, index uint64) *registration.Record {
	for _, item := range s.records {
		if item.Kind == registration.KindAccount && item.Program == program && item.Index == index {
			return item
		}
	}
	return nil
}

// page walks records in Id order honouring the cursor, direction and limit
func (s *store) page(req *query.QueryOptions, match func(*registration.Record) bool) ([]*registration.Record, error) {
	var cursor uint64
	if len(req.Cursor) > 0 {
		cursor = req.Cursor.ToUint64()
	}

	var items []*registration.Record
	for i := range s.records {
		item := s.records[i]
		if req.SortBy == query.Descending {
			item = s.records[len(s.records)-1-i]
		}

		if !match(item) {
			continue
		}

		if len(req.Cursor) > 0 {
			if req.SortBy == query.Ascending && item.Id <= cursor {
				continue
			}
			if req.SortBy == query.Descending && item.Id >= cursor {
				continue
			}
		}

		items = append(items, item)
		if uint64(len(items)) >= req.Limit {
			break
		}
	}

	if len(items) == 0 {
		return nil, registration.ErrRegistrationNotFound
	}
	return cloneSlice(items), nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = 0
	s.records = nil
}

func cloneSlice(items []*registration.Record) []*registration.Record {
	var res []*registration.Record
	for _, item := range items {
		cloned := item.Clone()
		res = append(res, &cloned)
	}
	return res
}
