package repos

import (
	"schuhaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) SubCategories(catID string) ([]domain.SubCategory, error) {
	out := []domain.SubCategory{}
	err := r.db.Select(&out, `
	  SELECT id, category_id, name FROM sub_categories WHERE category_id=? ORDER BY name`, catID)
	return out, err
}
