package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGStore persists orders and their line items in Postgres.
type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) Insert(ctx context.Context, o *Order) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, user_id, total, placed_at)
    VALUES ($1,$2,$3,$4)
  `, o.ID, o.UserID, o.Total.String(), o.PlacedAt); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, uuid.NewString(), o.ID, it.ProductID, it.ProductName, it.UnitPrice.String(), it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *PGStore) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	var total string
	if err := s.db.QueryRow(ctx, `
    SELECT id, user_id, total::text, placed_at
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.UserID, &total, &o.PlacedAt); err != nil {
		return nil, ErrNotFound
	}
	var err error
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	if o.Items, err = s.itemsFor(ctx, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PGStore) ListAll(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
    SELECT id, user_id, total::text, placed_at
    FROM orders
    ORDER BY placed_at DESC, id DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var total string
		if err := rows.Scan(&o.ID, &o.UserID, &total, &o.PlacedAt); err != nil {
			return nil, err
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Items, err = s.itemsFor(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PGStore) itemsFor(ctx context.Context, orderID string) ([]LineItem, error) {
	rows, err := s.db.Query(ctx, `
    SELECT product_id, product_name, unit_price::text, quantity
    FROM order_items WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var it LineItem
		var price string
		if err := rows.Scan(&it.ProductID, &it.ProductName, &price, &it.Quantity); err != nil {
			return nil, err
		}
		if it.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ Store = (*PGStore)(nil)
