package repos

import (
	"schuhaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// ByUserID returns sql.ErrNoRows when the user has no cart yet.
func (r *CartRepo) ByUserID(userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, `SELECT id,user_id,COALESCE(updated_at,'') AS updated_at FROM carts WHERE user_id=?`, userID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepo) ItemsByCartID(cartID int64) ([]domain.CartProduct, error) {
	out := []domain.CartProduct{}
	err := r.db.Select(&out, `
	  SELECT cart_id, product_id, count
	  FROM cart_products
	  WHERE cart_id = ?
	  ORDER BY product_id`, cartID)
	return out, err
}

// CreateWithItems inserts a new cart for userID together with its line
// items in a single transaction.
func (r *CartRepo) CreateWithItems(userID string, items []domain.BasketItem) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO carts(user_id,updated_at) VALUES(?,CURRENT_TIMESTAMP)`, userID)
	if err != nil {
		return 0, err
	}
	cartID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := insertItems(tx, cartID, items); err != nil {
		return 0, err
	}
	return cartID, tx.Commit()
}

// ReplaceItems swaps the cart's entire line-item set for the given one:
// delete-all then insert-all inside one transaction, so concurrent
// readers never observe a partial cart.
func (r *CartRepo) ReplaceItems(cartID int64, items []domain.BasketItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM cart_products WHERE cart_id=?`, cartID); err != nil {
		return err
	}
	if err := insertItems(tx, cartID, items); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE carts SET updated_at=CURRENT_TIMESTAMP WHERE id=?`, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

// insertItems collapses duplicate product ids by summing counts, so a
// malformed cookie can never violate the (cart_id, product_id) key.
func insertItems(tx *sqlx.Tx, cartID int64, items []domain.BasketItem) error {
	for _, it := range items {
		if it.Count < 1 {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO cart_products(cart_id,product_id,count)
			VALUES(?,?,?)
			ON CONFLICT(cart_id,product_id) DO UPDATE SET count = count + excluded.count
		`, cartID, it.ProductID, it.Count); err != nil {
			return err
		}
	}
	return nil
}
