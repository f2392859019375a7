package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed catalog if DB is empty (categories/products/variants)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

CREATE TABLE IF NOT EXISTS sub_categories(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sub_categories_category ON sub_categories(category_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  brand TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  rating INTEGER NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
  description TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_brand    ON products(LOWER(brand));

-- Product detail collections
CREATE TABLE IF NOT EXISTS product_images(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  path TEXT NOT NULL,
  is_main INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

CREATE TABLE IF NOT EXISTS product_colors(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_product_colors_product ON product_colors(product_id);

CREATE TABLE IF NOT EXISTS product_videos(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_product_videos_product ON product_videos(product_id);

CREATE TABLE IF NOT EXISTS product_sizes(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  label TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_product_sizes_product ON product_sizes(product_id);

CREATE TABLE IF NOT EXISTS product_comments(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  subject TEXT NOT NULL,
  message TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_product_comments_product ON product_comments(product_id);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  email_confirmed INTEGER NOT NULL DEFAULT 0,
  remember_me INTEGER NOT NULL DEFAULT 0,
  role TEXT NOT NULL CHECK (role IN ('MEMBER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Single-use account tokens (email confirmation, password reset).
-- The purpose tag keeps a confirmation token from doubling as a reset token.
CREATE TABLE IF NOT EXISTS account_tokens(
  token TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  purpose TEXT NOT NULL CHECK (purpose IN ('confirm_email','reset_password')),
  expires_at TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_account_tokens_user ON account_tokens(user_id);

-- Carts (one per user)
CREATE TABLE IF NOT EXISTS carts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_products(
  cart_id    INTEGER NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  count INTEGER NOT NULL CHECK (count >= 1),
  PRIMARY KEY (cart_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/variants")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('sneakers','Sneakers'),
	  ('boots','Boots'),
	  ('sandals','Sandals'),
	  ('formal','Formal Shoes')`)

	tx.MustExec(`INSERT INTO sub_categories(id,category_id,name) VALUES
	  ('running','sneakers','Running'),
	  ('lifestyle','sneakers','Lifestyle'),
	  ('chelsea','boots','Chelsea'),
	  ('oxford','formal','Oxford')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,sku,brand,price,rating,description) VALUES
	  (1,'sneakers','Court Classic','SNK-0001','Velora',89.90,4,'Low-top leather sneaker with cushioned sole'),
	  (2,'sneakers','Trail Runner X','SNK-0002','Nordfeld',119.00,5,'Trail running shoe with reinforced toe cap'),
	  (3,'boots','Chelsea Stout','BOT-0001','Harven',149.50,4,'Waterproof chelsea boot in oiled leather'),
	  (4,'formal','Oxford Prime','FRM-0001','Velora',179.00,5,'Full-grain oxford with stitched welt')`)

	tx.MustExec(`INSERT INTO product_images(product_id,path,is_main) VALUES
	  (1,'products/1/main.jpg',1),
	  (1,'products/1/side.jpg',0),
	  (2,'products/2/main.jpg',1),
	  (3,'products/3/main.jpg',1),
	  (4,'products/4/main.jpg',1)`)

	tx.MustExec(`INSERT INTO product_colors(product_id,name) VALUES
	  (1,'White'),(1,'Black'),
	  (2,'Forest Green'),
	  (3,'Brown'),(3,'Black'),
	  (4,'Oxblood')`)

	tx.MustExec(`INSERT INTO product_sizes(product_id,label) VALUES
	  (1,'40'),(1,'41'),(1,'42'),(1,'43'),
	  (2,'41'),(2,'42'),(2,'44'),
	  (3,'42'),(3,'43'),
	  (4,'41'),(4,'42'),(4,'43'),(4,'44')`)

	return tx.Commit()
}

// seedUsers ensures one confirmed MEMBER and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, First, Last, Email, Role, Hash string
	}
	mk := func(id, first, last, email, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, First: first, Last: last, Email: email, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "Alice", "Muster", "alice@schuhaus.test", "MEMBER", "Passw0rd!"),
		mk("u-admin", "Admin", "Root", "admin@schuhaus.test", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,first_name,last_name,email,password_hash,email_confirmed,role)
			VALUES(?,?,?,?,?,1,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.First, x.Last, x.Email, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
