package handlers

import (
	"errors"
	"time"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   h.CookieSecure,
		})
	}
	return sid
}

// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	in, errs := validate.ParseLogin(c.Body())
	if errs != nil {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request data", "errors": errs})
	}
	sid := h.ensureSID(c)
	u, err := h.Auth.Login(c.UserContext(), sid, in.Email, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		log.Error(c, "auth.login.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Login failed")
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": in.Email})
	return c.JSON(u)
}

// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			log.Error(c, "auth.logout.error", err, nil)
		}
		log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	return c.JSON(fiber.Map{"success": true})
}

// GET /api/auth/user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, err := h.Auth.CurrentUser(c.UserContext(), c.Cookies("sid"))
	if err != nil {
		log.Error(c, "auth.user.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	if u == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(u)
}
