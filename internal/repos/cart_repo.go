package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `id, user_id, product_id, quantity`

func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT `+cartCols+`
	  FROM cart_items
	  WHERE user_id = ?
	  ORDER BY created_at, id
	`), userID)
	return out, err
}

// ErrQuantityLimit is returned when merging would push a row past domain.MaxQuantity.
// The row is left unchanged.
var ErrQuantityLimit = errors.New("cart quantity limit exceeded")

// AddOrIncrement inserts a row for (user, product) with qty, or adds qty to the
// existing row, in one statement. A new row is only created when the product
// exists; otherwise sql.ErrNoRows is returned.
func (r *CartRepo) AddOrIncrement(ctx context.Context, id, userID, productID string, qty int) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.GetContext(ctx, &it, r.db.Rebind(`
	  INSERT INTO cart_items(id, user_id, product_id, quantity, created_at)
	  SELECT ?, ?, ?, CAST(? AS INTEGER), CURRENT_TIMESTAMP
	  WHERE EXISTS (SELECT 1 FROM products WHERE id = ?)
	     OR EXISTS (SELECT 1 FROM cart_items WHERE user_id = ? AND product_id = ?)
	  ON CONFLICT(user_id, product_id) DO UPDATE
	  SET quantity = cart_items.quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP
	  WHERE cart_items.quantity <= CAST(? AS INTEGER) - excluded.quantity
	  RETURNING `+cartCols+`
	`), id, userID, productID, qty, productID, userID, productID, domain.MaxQuantity)
	if !errors.Is(err, sql.ErrNoRows) {
		return it, err
	}
	// nothing returned: either no such product, or the guarded merge was skipped
	var exists bool
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(`
	  SELECT EXISTS (SELECT 1 FROM cart_items WHERE user_id = ? AND product_id = ?)
	`), userID, productID); err != nil {
		return domain.CartItem{}, err
	}
	if exists {
		return domain.CartItem{}, ErrQuantityLimit
	}
	return domain.CartItem{}, sql.ErrNoRows
}

// SetQuantity overwrites the quantity of an item owned by userID.
// Returns sql.ErrNoRows for a missing item or a different owner.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, itemID string, qty int) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.GetContext(ctx, &it, r.db.Rebind(`
	  UPDATE cart_items
	  SET quantity = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ?
	  RETURNING `+cartCols+`
	`), qty, itemID, userID)
	return it, err
}

func (r *CartRepo) Delete(ctx context.Context, userID, itemID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM cart_items WHERE id = ? AND user_id = ?`), itemID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM cart_items WHERE user_id = ?`), userID)
	return err
}
