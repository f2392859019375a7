package handlers

import (
	"schuhaus/internal/domain"
	"schuhaus/internal/log"
	"schuhaus/internal/services"
	"schuhaus/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	d, err := h.Catalog.GetProductDetail(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"D": d})
}

// Comment handles POST /product/:id/comments; RequireUser guards the route.
func (h *ProductHandler) Comment(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}

	subject, ok := validate.Subject(c.FormValue("subject"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid subject")
	}
	message, ok := validate.Message(c.FormValue("message"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid message")
	}

	comment := &domain.ProductComment{
		ProductID: id,
		UserID:    u.ID,
		Name:      u.DisplayName(),
		Email:     u.Email,
		Subject:   subject,
		Message:   message,
	}
	if err := h.Catalog.AddComment(comment); err != nil {
		log.Error(c, "comment.add.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	log.Audit(c, "comment.add", map[string]any{"product": id, "user": u.ID})
	return c.Redirect("/product/" + c.Params("id"))
}
