package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

type Store struct {
	ID        uuid.UUID
	Name      string
	Type      string
	Latitude  float64
	Longitude float64
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

const findStores = `
SELECT id, name, type, latitude, longitude, created_at, updated_at
FROM stores
ORDER BY created_at
`

func (q *Queries) FindStores(c context.Context) ([]Store, error) {
	rows, err := q.db.Query(c, findStores)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Store{}
	for rows.Next() {
		var s Store
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Type,
			&s.Latitude,
			&s.Longitude,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findStoreById = `
SELECT id, name, type, latitude, longitude, created_at, updated_at
FROM stores
WHERE id = $1
`

func (q *Queries) FindStoreById(c context.Context, id uuid.UUID) (Store, error) {
	row := q.db.QueryRow(c, findStoreById, id)
	var s Store
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Type,
		&s.Latitude,
		&s.Longitude,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

const insertStore = `
INSERT INTO stores (id, name, type, latitude, longitude)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, type, latitude, longitude, created_at, updated_at
`

type InsertStoreParams struct {
	ID        uuid.UUID
	Name      string
	Type      string
	Latitude  float64
	Longitude float64
}

func (q *Queries) InsertStore(c context.Context, arg InsertStoreParams) (Store, error) {
	row := q.db.QueryRow(
		c,
		insertStore,
		arg.ID,
		arg.Name,
		arg.Type,
		arg.Latitude,
		arg.Longitude,
	)
	var s Store
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Type,
		&s.Latitude,
		&s.Longitude,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
