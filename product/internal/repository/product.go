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

type Product struct {
	ID                   uuid.UUID
	Name                 string
	MainPrice            pgtype.Numeric
	MinimumOrderQuantity int32
	DisplayStock         pgtype.Int4
	StoreID              pgtype.UUID
	MiniAppType          string
	ImageUrl             pgtype.Text
	CreatedAt            pgtype.Timestamptz
	UpdatedAt            pgtype.Timestamptz
}

const productColumns = `id, name, main_price, minimum_order_quantity, display_stock, store_id, mini_app_type, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.MainPrice,
		&p.MinimumOrderQuantity,
		&p.DisplayStock,
		&p.StoreID,
		&p.MiniAppType,
		&p.ImageUrl,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const findProducts = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at
`

func (q *Queries) FindProducts(c context.Context) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductById = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRow(c, findProductById, id))
}

const insertProduct = `
INSERT INTO products (id, name, main_price, minimum_order_quantity, display_stock, store_id, mini_app_type, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + productColumns + `
`

type InsertProductParams struct {
	ID                   uuid.UUID
	Name                 string
	MainPrice            pgtype.Numeric
	MinimumOrderQuantity int32
	DisplayStock         pgtype.Int4
	StoreID              pgtype.UUID
	MiniAppType          string
	ImageUrl             pgtype.Text
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	return scanProduct(q.db.QueryRow(
		c,
		insertProduct,
		arg.ID,
		arg.Name,
		arg.MainPrice,
		arg.MinimumOrderQuantity,
		arg.DisplayStock,
		arg.StoreID,
		arg.MiniAppType,
		arg.ImageUrl,
	))
}
