package repos

import (
	"time"

	"schuhaus/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,first_name,last_name,email,password_hash,email_confirmed,remember_me,role`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,first_name,last_name,email,password_hash,email_confirmed,remember_me,role)
		VALUES(?,?,?,?,?,?,?,?)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Hash, u.Confirmed, u.Remember, u.Role)
	return err
}

func (r *UserRepo) MarkConfirmed(userID string) error {
	_, err := r.DB.Exec(`UPDATE users SET email_confirmed=1, updated_at=CURRENT_TIMESTAMP WHERE id=?`, userID)
	return err
}

func (r *UserRepo) SetRemember(userID string, remember bool) error {
	_, err := r.DB.Exec(`UPDATE users SET remember_me=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, remember, userID)
	return err
}

func (r *UserRepo) SetPasswordHash(userID, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, hash, userID)
	return err
}

func (r *UserRepo) ListAll() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY created_at DESC`)
	return out, err
}

// ---- sessions ----

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.first_name,u.last_name,u.email,u.password_hash,u.email_confirmed,u.remember_me,u.role
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// ---- single-use tokens ----

const (
	PurposeConfirmEmail  = "confirm_email"
	PurposeResetPassword = "reset_password"
)

func (r *UserRepo) IssueToken(userID, purpose string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	expires := time.Now().UTC().Add(ttl).Format(time.RFC3339)
	_, err := r.DB.Exec(`INSERT INTO account_tokens(token,user_id,purpose,expires_at) VALUES(?,?,?,?)`,
		token, userID, purpose, expires)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeToken deletes the token and returns its owner. A wrong purpose,
// an expired token and an unknown token all fail the same way
// (sql.ErrNoRows from the lookup).
func (r *UserRepo) ConsumeToken(token, purpose string) (string, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var userID string
	now := time.Now().UTC().Format(time.RFC3339)
	if err := tx.Get(&userID, `
		SELECT user_id FROM account_tokens
		WHERE token=? AND purpose=? AND expires_at > ?`, token, purpose, now); err != nil {
		return "", err
	}
	if _, err := tx.Exec(`DELETE FROM account_tokens WHERE token=?`, token); err != nil {
		return "", err
	}
	return userID, tx.Commit()
}

// DeleteUserCascade removes a user and everything keyed to them. Comments
// are kept for the product pages but detached from the account.
func (r *UserRepo) DeleteUserCascade(userID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM sessions WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM account_tokens WHERE user_id=?`, userID); err != nil {
		return err
	}
	// cart_products cascade with the cart row
	if _, err := tx.Exec(`DELETE FROM carts WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE product_comments SET user_id='' WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id=?`, userID); err != nil {
		return err
	}

	return tx.Commit()
}
