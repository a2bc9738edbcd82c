package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/code-payments/name-service/pkg/database/postgres"
	"github.com/code-payments/name-service/pkg/registry/data/account"
)

const (
	tableName = "nameservice__core_account"

	allColumns = `id, address, owner, lamports, data, version, created_at, last_updated_at`
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Owner   string `db:"owner"`

	Lamports int64  `db:"lamports"`
	Data     []byte `db:"data"`

	Version int64 `db:"version"`

	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *account.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	data := obj.Data
	if data == nil {
		data = []byte{}
	}

	return &model{
		Address: obj.Address,
		Owner:   obj.Owner,

		Lamports: int64(obj.Lamports),
		Data:     data,

		Version: int64(obj.Version),

		CreatedAt:     obj.CreatedAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *account.Record {
	return &account.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Owner:   obj.Owner,

		Lamports: uint64(obj.Lamports),
		Data:     obj.Data,

		Version: uint64(obj.Version),

		CreatedAt:     obj.CreatedAt.UTC(),
		LastUpdatedAt: obj.LastUpdatedAt.UTC(),
	}
}

// dbSave inserts or conditionally updates every model within one transaction.
// A transaction that loses a race on any row fails as a stale version.
func dbSave(ctx context.Context, db *sqlx.DB, models []*model) error {
	err := pgutil.ExecuteInTx(ctx, db, sql.LevelRepeatableRead, func(tx *sqlx.Tx) error {
		now := time.Now()
		for _, m := range models {
			var err error
			if m.Version == 0 {
				err = m.txInsert(ctx, tx, now)
			} else {
				err = m.txUpdate(ctx, tx, now)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if pgutil.IsSerializationFailure(err) {
		return account.ErrStaleVersion
	}
	return err
}

func (m *model) txInsert(ctx context.Context, tx *sqlx.Tx, now time.Time) error {
	query := `INSERT INTO ` + tableName + `
		(address, owner, lamports, data, version, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, 1, $5, $5)
		RETURNING ` + allColumns

	err := tx.QueryRowxContext(
		ctx,
		query,
		m.Address,
		m.Owner,
		m.Lamports,
		m.Data,
		now,
	).StructScan(m)
	return pgutil.CheckUniqueViolation(err, account.ErrAccountExists)
}

func (m *model) txUpdate(ctx context.Context, tx *sqlx.Tx, now time.Time) error {
	query := `UPDATE ` + tableName + `
		SET owner = $3, lamports = $4, data = $5, version = version + 1, last_updated_at = $6
		WHERE address = $1 AND version = $2
		RETURNING ` + allColumns

	err := tx.QueryRowxContext(
		ctx,
		query,
		m.Address,
		m.Version,
		m.Owner,
		m.Lamports,
		m.Data,
		now,
	).StructScan(m)
	return pgutil.CheckNoRows(err, account.ErrStaleVersion)
}

func dbGetByAddress(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	var res model
	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE address = $1
	`

	err := db.GetContext(ctx, &res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, account.ErrAccountNotFound)
	}
	return &res, nil
}

func dbGetAllByOwner(ctx context.Context, db *sqlx.DB, owner string, cursor, limit uint64) ([]*model, error) {
	res := []*model{}

	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE owner = $1 AND id > $2
		ORDER BY id ASC
		LIMIT $3
	`

	err := db.SelectContext(ctx, &res, query, owner, cursor, limit)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, account.ErrAccountNotFound)
	} else if len(res) == 0 {
		return nil, account.ErrAccountNotFound
	}
	return res, nil
}

func dbCountByOwner(ctx context.Context, db *sqlx.DB, owner string) (uint64, error) {
	var res uint64
	query := `SELECT COUNT(*) FROM ` + tableName + `
		WHERE owner = $1
	`

	err := db.GetContext(ctx, &res, query, owner)
	if err != nil {
		return 0, err
	}
	return res, nil
}
