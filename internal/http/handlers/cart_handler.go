package handlers

import (
	"schuhaus/internal/domain"
	"schuhaus/internal/log"
	"schuhaus/internal/services"
	"schuhaus/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// CartHandler serves the basket cookie: the working cart lives client
// side and is only persisted at authentication transitions.
type CartHandler struct {
	Catalog *services.CatalogService
}

type basketRow struct {
	Product  domain.Product
	Count    int
	Subtotal float64
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	count := validate.Count(c.FormValue("count"))

	if _, err := h.Catalog.GetProduct(productID); err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	basket := services.ParseBasket(c.Cookies(services.BasketCookie))
	basket = services.AddToBasket(basket, productID, count)
	writeBasket(c, basket)

	log.Info(c, "cart.add", map[string]any{"product": productID, "count": count})
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	basket := services.ParseBasket(c.Cookies(services.BasketCookie))

	rows := make([]basketRow, 0, len(basket))
	total := 0.0
	for _, it := range basket {
		p, err := h.Catalog.GetProduct(it.ProductID)
		if err != nil {
			continue // stale cookie entry; skip silently
		}
		sub := p.Price * float64(it.Count)
		rows = append(rows, basketRow{Product: p, Count: it.Count, Subtotal: sub})
		total += sub
	}
	return render(c, "cart", fiber.Map{"Items": rows, "Total": total})
}
