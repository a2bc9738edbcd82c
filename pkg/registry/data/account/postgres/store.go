package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/name-service/pkg/registry/data/account"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed account.Store
func New(db *sql.DB) account.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Save implements account.Store.Save
func (s *store) Save(ctx context.Context, records ...*account.Record) error {
	seen := make(map[string]struct{}, len(records))
	models := make([]*model, len(records))
	for i, record := range records {
		if _, ok := seen[record.Address]; ok {
			return account.ErrDuplicateRecord
		}
		seen[record.Address] = struct{}{}

		obj, err := toModel(record)
		if err != nil {
			return err
		}
		models[i] = obj
	}

	if err := dbSave(ctx, s.db, models); err != nil {
		return err
	}

	for i, obj := range models {
		fromModel(obj).CopyTo(records[i])
	}
	return nil
}

// Get implements account.Store.Get
func (s *store) Get(ctx context.Context, address string) (*account.Record, error) {
	model, err := dbGetByAddress(ctx, s.db, address)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetAllByOwner implements account.Store.GetAllByOwner
func (s *store) GetAllByOwner(ctx context.Context, owner string, cursor uint64, limit uint64) ([]*account.Record, error) {
	models, err := dbGetAllByOwner(ctx, s.db, owner, cursor, limit)
	if err != nil {
		return nil, err
	}

	var res []*account.Record
	for _, model := range models {
		res = append(res, fromModel(model))
	}
	return res, nil
}

// CountByOwner implements account.Store.CountByOwner
func (s *store) CountByOwner(ctx context.Context, owner string) (uint64, error) {
	return dbCountByOwner(ctx, s.db, owner)
}
