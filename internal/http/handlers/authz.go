package handlers

import (
	applog "storefront/internal/log"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Identity resolves the authenticated user id of a request, if any.
type Identity func(c *fiber.Ctx) (string, bool)

// SessionIdentity resolves the user bound to the request's sid cookie.
func SessionIdentity(auth *services.AuthService) Identity {
	return func(c *fiber.Ctx) (string, bool) {
		sid := c.Cookies("sid")
		if sid == "" {
			return "", false
		}
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil {
			applog.Error(c, "auth.session.lookup", err, nil)
			return "", false
		}
		if u == nil {
			return "", false
		}
		return u.ID, true
	}
}

// RequireUser rejects requests without an identity before they reach a handler.
func RequireUser(identity Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, ok := identity(c)
		if !ok {
			applog.Security(c, "access.denied", nil)
			return fail(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals(applog.UserKey, utils.CopyString(uid))
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(applog.UserKey).(string)
	return uid
}
