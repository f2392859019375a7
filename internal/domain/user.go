package domain

type User struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Hash      string `db:"password_hash"`
	Confirmed bool   `db:"email_confirmed"`
	Remember  bool   `db:"remember_me"`
	Role      string `db:"role"`
}

// DisplayName is what templates show; the shop never exposes usernames.
func (u *User) DisplayName() string { return u.FirstName }
