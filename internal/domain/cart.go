package domain

type Cart struct {
	ID        int64  `db:"id"`
	UserID    string `db:"user_id"`
	UpdatedAt string `db:"updated_at"`
}

type CartProduct struct {
	CartID    int64 `db:"cart_id"`
	ProductID int64 `db:"product_id"`
	Count     int   `db:"count"`
}

// BasketItem is one entry of the "basket" cookie. The JSON key casing is
// part of the cookie contract shared with the storefront scripts.
type BasketItem struct {
	ProductID int64 `json:"ProductId"`
	Count     int   `json:"Count"`
}
