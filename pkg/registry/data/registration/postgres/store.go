package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/name-service/pkg/database/query"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed registration.Store
func New(db *sql.DB) registration.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements registration.Store.Put
func (s *store) Put(ctx context.Context, record *registration.Record) error {
	obj, err := toModel(record)
	if err != nil {
		return err
	}

	err = obj.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	res := fromModel(obj)
	res.CopyTo(record)

	return nil
}

// GetByStorageAccount implements registration.Store.GetByStorageAccount
func (s *store) GetByStorageAccount(ctx context.Context, storageAccount string) (*registration.Record, error) {
	model, err := dbGetByStorageAccount(ctx, s.db, storageAccount)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetByIndex implements registration.Store.GetByIndex
func (s *store) GetByIndex(ctx context.Context, program string, index uint64) (*registration.Record, error) {
	model, err := dbGetByIndex(ctx, s.db, program, index)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetAllByLabel implements registration.Store.GetAllByLabel
func (s *store) GetAllByLabel(ctx context.Context, label string, opts ...query.Option) ([]*registration.Record, error) {
	req, err := query.DefaultPaginationHandler(opts...)
	if err != nil {
		return nil, err
	}

	models, err := dbGetAllByLabel(ctx, s.db, label, req.Cursor, req.Limit, req.SortBy)
	if err != nil {
		return nil, err
	}

	return fromModels(models), nil
}

// GetAllByTarget implements registration.Store.GetAllByTarget
func (s *store) GetAllByTarget(ctx context.Context, target string, opts ...query.Option) ([]*registration.Record, error) {
	req, err := query.DefaultPaginationHandler(opts...)
	if err != nil {
		return nil, err
	}

	models, err := dbGetAllByTarget(ctx, s.db, target, req.Cursor, req.Limit, req.SortBy)
	if err != nil {
		return nil, err
	}

	return fromModels(models), nil
}

// Count implements registration.Store.Count
func (s *store) Count(ctx context.Context, kind registration.Kind) (uint64, error) {
	return dbCount(ctx, s.db, kind)
}

func fromModels(models []*model) []*registration.Record {
	var res []*registration.Record
	for _, model := range models {
		res = append(res, fromModel(model))
	}
	return res
}
