package services

import (
	"database/sql"
	"encoding/json"
	"errors"

	"schuhaus/internal/domain"
	"schuhaus/internal/repos"
)

// BasketCookie is the client-side anonymous cart. Its value is a JSON
// array of {"ProductId":n,"Count":n} entries.
const BasketCookie = "basket"

// ParseBasket decodes a basket cookie value. Absent or corrupt cookies
// decode to an empty basket; the flow never fails on client state.
func ParseBasket(raw string) []domain.BasketItem {
	if raw == "" {
		return nil
	}
	var items []domain.BasketItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	out := items[:0]
	for _, it := range items {
		if it.ProductID > 0 && it.Count > 0 {
			out = append(out, it)
		}
	}
	return out
}

func EncodeBasket(items []domain.BasketItem) string {
	if items == nil {
		items = []domain.BasketItem{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// AddToBasket upserts a line into the parsed basket, summing counts.
func AddToBasket(basket []domain.BasketItem, productID int64, count int) []domain.BasketItem {
	if count < 1 {
		count = 1
	}
	for i := range basket {
		if basket[i].ProductID == productID {
			basket[i].Count += count
			return basket
		}
	}
	return append(basket, domain.BasketItem{ProductID: productID, Count: count})
}

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

// CookieItems returns the basket that mirrors the user's persisted cart,
// and whether such a cart exists. Login and email confirmation write
// this over whatever basket cookie the client held (overwrite, not
// merge: the persisted cart wins at login).
func (s *CartService) CookieItems(userID string) ([]domain.BasketItem, bool, error) {
	cart, err := s.Carts.ByUserID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	lines, err := s.Carts.ItemsByCartID(cart.ID)
	if err != nil {
		return nil, false, err
	}
	items := make([]domain.BasketItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.BasketItem{ProductID: l.ProductID, Count: l.Count})
	}
	return items, true, nil
}

// SaveOnLogout persists the basket as the user's cart. An empty basket
// is a no-op. With no existing cart one is created from the basket;
// otherwise the cart's line items are replaced wholesale
// (last-write-wins: the basket wins at logout).
func (s *CartService) SaveOnLogout(userID string, basket []domain.BasketItem) error {
	if len(basket) == 0 {
		return nil
	}
	cart, err := s.Carts.ByUserID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		_, err := s.Carts.CreateWithItems(userID, basket)
		return err
	}
	if err != nil {
		return err
	}
	return s.Carts.ReplaceItems(cart.ID, basket)
}
