package repos

import (
	"schuhaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, sku, brand, price, rating, description, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) ListByCategory(catID string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ? AND active = 1
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, catID, limit, offset)
	return out, err
}

func (r *ProductRepo) Search(q, catID, brand string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	if brand != "" {
		where += ` AND LOWER(brand) = LOWER(?)`
		args = append(args, brand)
	}

	query := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, query, args...)
	return out, err
}

// Detail collections shown on the product page.

func (r *ProductRepo) Images(productID int64) ([]domain.ProductImage, error) {
	out := []domain.ProductImage{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, path, is_main
	  FROM product_images WHERE product_id=? ORDER BY is_main DESC, id`, productID)
	return out, err
}

func (r *ProductRepo) Colors(productID int64) ([]domain.ProductColor, error) {
	out := []domain.ProductColor{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, name FROM product_colors WHERE product_id=? ORDER BY id`, productID)
	return out, err
}

func (r *ProductRepo) Videos(productID int64) ([]domain.ProductVideo, error) {
	out := []domain.ProductVideo{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, path FROM product_videos WHERE product_id=? ORDER BY id`, productID)
	return out, err
}

func (r *ProductRepo) Sizes(productID int64) ([]domain.ProductSize, error) {
	out := []domain.ProductSize{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, label FROM product_sizes WHERE product_id=? ORDER BY label`, productID)
	return out, err
}
