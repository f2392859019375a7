package domain

type Category struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type SubCategory struct {
	ID         string `db:"id"`
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
}

type Product struct {
	ID          int64   `db:"id"`
	CategoryID  string  `db:"category_id"`
	Name        string  `db:"name"`
	SKU         string  `db:"sku"`
	Brand       string  `db:"brand"`
	Price       float64 `db:"price"`
	Rating      int     `db:"rating"`
	Description string  `db:"description"`
	Active      bool    `db:"active"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

type ProductImage struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Path      string `db:"path"`
	IsMain    bool   `db:"is_main"`
}

type ProductColor struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Name      string `db:"name"`
}

type ProductVideo struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Path      string `db:"path"`
}

type ProductSize struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Label     string `db:"label"`
}

type ProductComment struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Subject   string `db:"subject"`
	Message   string `db:"message"`
	CreatedAt string `db:"created_at"`
}
