package handlers

import (
	"schuhaus/internal/domain"
	"schuhaus/internal/log"
	"schuhaus/internal/services"
	"schuhaus/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q != "" {
		cleaned, ok := validate.Q(q)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q"})
			return render(c, "search", fiber.Map{"Q": "", "Products": []domain.Product{}, "Err": "Invalid search"})
		}
		q = cleaned
	}

	category := ""
	if raw := c.Query("category"); raw != "" {
		if cleaned, ok := validate.Slug(raw); ok {
			category = cleaned
		}
	}
	brand := ""
	if raw := c.Query("brand"); raw != "" {
		if cleaned, ok := validate.Q(raw); ok {
			brand = cleaned
		}
	}

	products, err := h.Catalog.Search(q, category, brand, c.QueryInt("page", 1), 12)
	if err != nil {
		return err
	}
	return render(c, "search", fiber.Map{"Q": q, "Products": products})
}
