package repos

import (
	"schuhaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CommentRepo struct{ db *sqlx.DB }

func NewCommentRepo(db *sqlx.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) ListByProduct(productID int64) ([]domain.ProductComment, error) {
	out := []domain.ProductComment{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, user_id, name, email, subject, message, created_at
	  FROM product_comments
	  WHERE product_id=?
	  ORDER BY created_at DESC`, productID)
	return out, err
}

func (r *CommentRepo) Insert(c *domain.ProductComment) error {
	res, err := r.db.Exec(`
	  INSERT INTO product_comments(product_id,user_id,name,email,subject,message)
	  VALUES(?,?,?,?,?,?)`,
		c.ProductID, c.UserID, c.Name, c.Email, c.Subject, c.Message)
	if err != nil {
		return err
	}
	c.ID, _ = res.LastInsertId()
	return nil
}

func (r *CommentRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM product_comments WHERE id=?`, id)
	return err
}

// ListRecent feeds the admin moderation page.
func (r *CommentRepo) ListRecent(limit int) ([]domain.ProductComment, error) {
	out := []domain.ProductComment{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, user_id, name, email, subject, message, created_at
	  FROM product_comments
	  ORDER BY created_at DESC
	  LIMIT ?`, limit)
	return out, err
}
