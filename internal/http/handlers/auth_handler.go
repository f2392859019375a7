package handlers

import (
	"errors"
	"time"

	"schuhaus/internal/domain"
	"schuhaus/internal/log"
	"schuhaus/internal/services"
	"schuhaus/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth  *services.AuthService
	Cart  *services.CartService
	Email *services.EmailService
}

// pickSID reuses the client's session id or mints a fresh one, without
// writing the cookie. The cookie is only set once authentication
// succeeds, so failed attempts leave no session cookie behind.
func pickSID(c *fiber.Ctx) string {
	if sid := c.Cookies("sid"); sid != "" {
		return sid
	}
	return uuid.NewString()
}

// setSID writes the session cookie; with remember it gets a 30-day
// expiry so the session outlives the browser.
func setSID(c *fiber.Ctx, sid string, remember bool) {
	ck := &fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
	}
	if remember {
		ck.Expires = time.Now().Add(30 * 24 * time.Hour)
	}
	c.Cookie(ck)
}

func writeBasket(c *fiber.Ctx, items []domain.BasketItem) {
	c.Cookie(&fiber.Cookie{
		Name:     services.BasketCookie,
		Value:    services.EncodeBasket(items),
		Path:     "/",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearBasket(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     services.BasketCookie,
		Value:    "",
		Path:     "/",
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// rehydrateBasket overwrites the client's basket with the persisted cart.
// Anything the client added while logged out is replaced, not merged.
func (h *AuthHandler) rehydrateBasket(c *fiber.Ctx, userID string) {
	items, found, err := h.Cart.CookieItems(userID)
	if err != nil {
		log.Error(c, "cart.rehydrate.fail", err, map[string]any{"user": userID})
		return
	}
	if found {
		writeBasket(c, items)
	} else {
		clearBasket(c)
	}
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := pickSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	remember := c.FormValue("remember") == "on"

	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Email or password is wrong", "CSRFToken": c.Cookies("csrf_")})
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Email or password is wrong", "CSRFToken": c.Cookies("csrf_")})
	}

	u, err := h.Auth.Login(sid, email, pass, remember)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Email or password is wrong", "CSRFToken": c.Cookies("csrf_")})
	}
	setSID(c, sid, remember)

	h.rehydrateBasket(c, u.ID)

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Errs": []string{}})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	first := c.FormValue("firstName")
	last := c.FormValue("lastName")
	email := c.FormValue("email")
	pass := c.FormValue("password")

	var errs []string
	firstName, ok := validate.Name(first)
	if !ok {
		errs = append(errs, "First name is required")
	}
	lastName, ok := validate.Name(last)
	if !ok {
		errs = append(errs, "Last name is required")
	}
	emailAddr, ok := validate.Email(email)
	if !ok {
		errs = append(errs, "Email address is invalid")
	}
	errs = append(errs, validate.PasswordIssues(pass)...)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Errs": errs, "CSRFToken": c.Cookies("csrf_")})
	}

	u, token, err := h.Auth.Register(firstName, lastName, emailAddr, pass)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Errs": []string{err.Error()}, "CSRFToken": c.Cookies("csrf_")})
		}
		log.Error(c, "auth.register.fail", err, map[string]any{"email": emailAddr})
		return c.Status(fiber.StatusInternalServerError).Render("register", fiber.Map{"Errs": []string{"Something went wrong. Please try again."}, "CSRFToken": c.Cookies("csrf_")})
	}

	if err := h.Email.SendConfirmation(u.Email, u.ID, token); err != nil {
		log.Error(c, "auth.register.email.fail", err, map[string]any{"user": u.ID})
		return c.Status(fiber.StatusInternalServerError).Render("register", fiber.Map{"Errs": []string{"Something went wrong. Please try again."}, "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.register.success", map[string]any{"user": u.ID})
	return c.Redirect("/verify-email")
}

// VerifyEmail is the "check your inbox" landing page.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	return render(c, "verify", fiber.Map{})
}

func (h *AuthHandler) ConfirmEmail(c *fiber.Ctx) error {
	userID := c.Query("userId")
	token := c.Query("token")
	if userID == "" || token == "" {
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Bad request"})
	}

	sid := pickSID(c)
	u, err := h.Auth.ConfirmEmail(sid, userID, token)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
		}
		log.Security(c, "auth.confirm.fail", map[string]any{"user": userID})
		return c.Status(fiber.StatusUnauthorized).Render("notfound", fiber.Map{"Message": "This confirmation link is invalid or has expired."})
	}
	setSID(c, sid, u.Remember)

	h.rehydrateBasket(c, u.ID)

	log.Audit(c, "auth.confirm.success", map[string]any{"user": u.ID})
	return c.Redirect("/")
}

// Logout ends the session unconditionally, then reconciles the basket:
// a non-empty basket becomes the user's persisted cart (created or
// replaced wholesale) and the cookie is removed. Persistence failures
// are logged, never surfaced.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	var u *domain.User
	if sid != "" {
		u, _ = h.Auth.CurrentUser(sid)
		_ = h.Auth.Logout(sid)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})

	basket := services.ParseBasket(c.Cookies(services.BasketCookie))
	if u != nil && len(basket) > 0 {
		if err := h.Cart.SaveOnLogout(u.ID, basket); err != nil {
			log.Error(c, "cart.save.fail", err, map[string]any{"user": u.ID})
		} else {
			clearBasket(c)
		}
	}

	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}

func (h *AuthHandler) ForgotPasswordForm(c *fiber.Ctx) error {
	return render(c, "forgot", fiber.Map{"Err": "", "Notice": ""})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("forgot", fiber.Map{"Err": "Email address is invalid", "CSRFToken": c.Cookies("csrf_")})
	}

	u, token, err := h.Auth.StartPasswordReset(email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			// Same response as success; account existence is not disclosed.
			log.Security(c, "auth.reset.unknown_email", map[string]any{"email": email})
			return render(c, "forgot", fiber.Map{"Notice": "If the account exists, a reset email is on its way."})
		}
		log.Error(c, "auth.reset.fail", err, map[string]any{"email": email})
		return c.Status(fiber.StatusInternalServerError).Render("forgot", fiber.Map{"Err": "Something went wrong. Please try again.", "CSRFToken": c.Cookies("csrf_")})
	}

	if err := h.Email.SendPasswordReset(u.Email, u.ID, token); err != nil {
		log.Error(c, "auth.reset.email.fail", err, map[string]any{"user": u.ID})
		return c.Status(fiber.StatusInternalServerError).Render("forgot", fiber.Map{"Err": "Something went wrong. Please try again.", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.reset.requested", map[string]any{"user": u.ID})
	return c.Redirect("/verify-email")
}

func (h *AuthHandler) ResetPasswordForm(c *fiber.Ctx) error {
	userID := c.Query("userId")
	token := c.Query("token")
	if userID == "" || token == "" {
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Bad request"})
	}
	return render(c, "reset", fiber.Map{"UserID": userID, "Token": token, "Errs": []string{}})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	userID := c.FormValue("userId")
	token := c.FormValue("token")
	pass := c.FormValue("password")
	if userID == "" || token == "" {
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Bad request"})
	}
	if issues := validate.PasswordIssues(pass); len(issues) > 0 {
		return c.Status(fiber.StatusBadRequest).Render("reset", fiber.Map{"UserID": userID, "Token": token, "Errs": issues, "CSRFToken": c.Cookies("csrf_")})
	}

	if err := h.Auth.ResetPassword(userID, token, pass); err != nil {
		log.Security(c, "auth.reset.token.fail", map[string]any{"user": userID})
		return c.Status(fiber.StatusUnauthorized).Render("notfound", fiber.Map{"Message": "This reset link is invalid or has expired."})
	}

	log.Audit(c, "auth.reset.success", map[string]any{"user": userID})
	return c.Redirect("/login")
}
