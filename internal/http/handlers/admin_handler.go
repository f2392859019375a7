package handlers

import (
	"schuhaus/internal/log"
	"schuhaus/internal/repos"
	"schuhaus/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Users    *repos.UserRepo
	Comments *repos.CommentRepo
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	users, err := h.Users.ListAll()
	if err != nil {
		return err
	}
	comments, err := h.Comments.ListRecent(10)
	if err != nil {
		return err
	}
	return render(c, "admin_dashboard", fiber.Map{
		"UserCount": len(users),
		"Comments":  comments,
	})
}

func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.ListAll()
	if err != nil {
		return err
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		log.Error(c, "admin.user.delete.fail", err, map[string]any{"target": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	log.Audit(c, "admin.user.delete", map[string]any{"target": id})
	return c.Redirect("/admin/users")
}

func (h *AdminHandler) DeleteComment(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id")) // same numeric-id shape
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Comments.Delete(id); err != nil {
		log.Error(c, "admin.comment.delete.fail", err, map[string]any{"comment": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	log.Audit(c, "admin.comment.delete", map[string]any{"comment": id})
	return c.Redirect("/admin")
}
