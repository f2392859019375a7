package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"schuhaus/internal/domain"
	"schuhaus/internal/repos"
	"schuhaus/internal/services"
)

func memdbCarts(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE carts(id INTEGER PRIMARY KEY AUTOINCREMENT, user_id TEXT UNIQUE NOT NULL, updated_at TEXT);
	CREATE TABLE cart_products(cart_id INTEGER, product_id INTEGER, count INTEGER,
	  PRIMARY KEY(cart_id, product_id));
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSaveOnLogout_EmptyBasketIsNoOp(t *testing.T) {
	db := memdbCarts(t)
	svc := services.NewCartService(repos.NewCartRepo(db))

	if err := svc.SaveOnLogout("u-1", nil); err != nil {
		t.Fatal(err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM carts`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("empty basket must not create a cart, got %d carts", n)
	}
}

func TestSaveOnLogout_CreatesCartFromBasket(t *testing.T) {
	db := memdbCarts(t)
	cartRepo := repos.NewCartRepo(db)
	svc := services.NewCartService(cartRepo)

	basket := []domain.BasketItem{{ProductID: 5, Count: 2}}
	if err := svc.SaveOnLogout("u-1", basket); err != nil {
		t.Fatal(err)
	}

	cart, err := cartRepo.ByUserID("u-1")
	if err != nil {
		t.Fatal(err)
	}
	items, err := cartRepo.ItemsByCartID(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ProductID != 5 || items[0].Count != 2 {
		t.Fatalf("want exactly CartProduct(5,2), got %+v", items)
	}
}

func TestSaveOnLogout_ReplacesExistingItems(t *testing.T) {
	db := memdbCarts(t)
	cartRepo := repos.NewCartRepo(db)
	svc := services.NewCartService(cartRepo)

	// pre-existing cart with different contents
	if err := svc.SaveOnLogout("u-1", []domain.BasketItem{
		{ProductID: 1, Count: 3},
		{ProductID: 2, Count: 1},
	}); err != nil {
		t.Fatal(err)
	}

	// second logout replaces, never unions
	if err := svc.SaveOnLogout("u-1", []domain.BasketItem{{ProductID: 2, Count: 7}}); err != nil {
		t.Fatal(err)
	}

	cart, err := cartRepo.ByUserID("u-1")
	if err != nil {
		t.Fatal(err)
	}
	items, err := cartRepo.ItemsByCartID(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ProductID != 2 || items[0].Count != 7 {
		t.Fatalf("want replace-all to leave only (2,7), got %+v", items)
	}

	var carts int
	if err := db.Get(&carts, `SELECT COUNT(*) FROM carts`); err != nil {
		t.Fatal(err)
	}
	if carts != 1 {
		t.Fatalf("replace must reuse the cart row, got %d carts", carts)
	}
}

func TestSaveOnLogout_DuplicateCookieLinesCollapse(t *testing.T) {
	db := memdbCarts(t)
	cartRepo := repos.NewCartRepo(db)
	svc := services.NewCartService(cartRepo)

	// a tampered cookie can repeat a product id
	if err := svc.SaveOnLogout("u-1", []domain.BasketItem{
		{ProductID: 5, Count: 2},
		{ProductID: 5, Count: 3},
	}); err != nil {
		t.Fatal(err)
	}

	cart, err := cartRepo.ByUserID("u-1")
	if err != nil {
		t.Fatal(err)
	}
	items, err := cartRepo.ItemsByCartID(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Count != 5 {
		t.Fatalf("duplicates should sum into one line, got %+v", items)
	}
}

func TestCookieItems_MirrorsPersistedCart(t *testing.T) {
	db := memdbCarts(t)
	cartRepo := repos.NewCartRepo(db)
	svc := services.NewCartService(cartRepo)

	// no cart yet
	items, found, err := svc.CookieItems("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if found || len(items) != 0 {
		t.Fatalf("no cart should report found=false, got found=%v items=%+v", found, items)
	}

	if err := svc.SaveOnLogout("u-1", []domain.BasketItem{
		{ProductID: 1, Count: 2},
		{ProductID: 9, Count: 1},
	}); err != nil {
		t.Fatal(err)
	}

	items, found, err = svc.CookieItems("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if !found || len(items) != 2 {
		t.Fatalf("want 2 mirrored items, got found=%v items=%+v", found, items)
	}
	if items[0] != (domain.BasketItem{ProductID: 1, Count: 2}) ||
		items[1] != (domain.BasketItem{ProductID: 9, Count: 1}) {
		t.Fatalf("mirror mismatch: %+v", items)
	}
}

func TestParseBasket(t *testing.T) {
	if got := services.ParseBasket(""); got != nil {
		t.Fatalf("empty cookie should parse to nil, got %+v", got)
	}
	if got := services.ParseBasket("{not json"); got != nil {
		t.Fatalf("corrupt cookie should parse to nil, got %+v", got)
	}
	got := services.ParseBasket(`[{"ProductId":5,"Count":2},{"ProductId":0,"Count":1},{"ProductId":3,"Count":0}]`)
	if len(got) != 1 || got[0].ProductID != 5 || got[0].Count != 2 {
		t.Fatalf("invalid lines should be dropped, got %+v", got)
	}
}

func TestEncodeBasket_CookieContract(t *testing.T) {
	raw := services.EncodeBasket([]domain.BasketItem{{ProductID: 5, Count: 2}})
	want := `[{"ProductId":5,"Count":2}]`
	if raw != want {
		t.Fatalf("cookie payload %q, want %q", raw, want)
	}
	if services.EncodeBasket(nil) != "[]" {
		t.Fatalf("nil basket should encode as []")
	}
}

func TestAddToBasket(t *testing.T) {
	b := services.AddToBasket(nil, 5, 2)
	b = services.AddToBasket(b, 5, 1)
	b = services.AddToBasket(b, 7, 0) // count clamps to 1
	if len(b) != 2 || b[0].Count != 3 || b[1].Count != 1 {
		t.Fatalf("unexpected basket: %+v", b)
	}
}
