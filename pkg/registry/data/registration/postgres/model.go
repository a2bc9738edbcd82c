package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/code-payments/name-service/pkg/database/postgres"
	q "github.com/code-payments/name-service/pkg/database/query"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
)

const (
	tableName = "nameservice__core_registration"

	allColumns = `id, storage_account, program, kind, target, label, index, created_at`
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	StorageAccount string `db:"storage_account"`
	Program        string `db:"program"`
	Kind           uint8  `db:"kind"`

	Target string `db:"target"`

	// Labels are raw bytes, and aren't guaranteed to be valid UTF-8
	Label []byte `db:"label"`

	Index sql.NullInt64 `db:"index"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *registration.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		StorageAccount: obj.StorageAccount,
		Program:        obj.Program,
		Kind:           uint8(obj.Kind),

		Target: obj.Target,
		Label:  []byte(obj.Label),

		Index: sql.NullInt64{
			Valid: obj.Kind == registration.KindAccount,
			Int64: int64(obj.Index),
		},

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *registration.Record {
	return &registration.Record{
		Id: uint64(obj.Id.Int64),

		StorageAccount: obj.StorageAccount,
		Program:        obj.Program,
		Kind:           registration.Kind(obj.Kind),

		Target: obj.Target,
		Label:  string(obj.Label),

		Index: uint64(obj.Index.Int64),

		CreatedAt: obj.CreatedAt.UTC(),
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(storage_account, program, kind, target, label, index, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING ` + allColumns

		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}

		return tx.QueryRowxContext(
			ctx,
			query,
			m.StorageAccount,
			m.Program,
			m.Kind,
			m.Target,
			m.Label,
			m.Index,
			m.CreatedAt,
		).StructScan(m)
	})
	return pgutil.CheckUniqueViolation(err, registration.ErrRegistrationExists)
}

func dbGetByStorageAccount(ctx context.Context, db *sqlx.DB, storageAccount string) (*model, error) {
	var res model
	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE storage_account = $1
	`

	err := db.GetContext(ctx, &res, query, storageAccount)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registration.ErrRegistrationNotFound)
	}
	return &res, nil
}

func dbGetByIndex(ctx context.Context, db *sqlx.DB, program string, index uint64) (*model, error) {
	var res model
	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE program = $1 AND kind = $2 AND index = $3
	`

	err := db.GetContext(ctx, &res, query, program, registration.KindAccount, index)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registration.ErrRegistrationNotFound)
	}
	return &res, nil
}

func dbGetAllByLabel(ctx context.Context, db *sqlx.DB, label string, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE (label = $1)
	`
	return dbPage(ctx, db, query, []interface{}{[]byte(label)}, cursor, limit, direction)
}

func dbGetAllByTarget(ctx context.Context, db *sqlx.DB, target string, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE (target = $1)
	`
	return dbPage(ctx, db, query, []interface{}{target}, cursor, limit, direction)
}

func dbPage(ctx context.Context, db *sqlx.DB, query string, opts []interface{}, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	res := []*model{}

	query, opts = q.PaginateQuery(query, opts, cursor, limit, direction)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, registration.ErrRegistrationNotFound)
	} else if len(res) == 0 {
		return nil, registration.ErrRegistrationNotFound
	}
	return res, nil
}

func dbCount(ctx context.Context, db *sqlx.DB, kind registration.Kind) (uint64, error) {
	var res uint64
	query := `SELECT COUNT(*) FROM ` + tableName + `
		WHERE kind = $1
	`

	err := db.GetContext(ctx, &res, query, kind)
	if err != nil {
		return 0, err
	}
	return res, nil
}
