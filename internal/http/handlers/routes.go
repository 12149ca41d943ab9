package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "storefront/internal/log"
)

const LoginWindow = 10 * time.Minute

// Mount registers the JSON API on app.
func Mount(app *fiber.App, d *Deps) {
	api := app.Group("/api")

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/products/:id/availability", d.InventoryHandler.Check)

	api.Post("/login", limiter.New(limiter.Config{
		Max:        d.LoginMax,
		Expiration: LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return fail(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	}), d.AuthHandler.Login)
	api.Post("/logout", d.AuthHandler.Logout)

	auth := RequireUser(d.Identity)
	api.Get("/auth/user", auth, d.AuthHandler.Me)

	api.Get("/cart", auth, d.CartHandler.List)
	api.Post("/cart", auth, d.CartHandler.Add)
	api.Delete("/cart", auth, d.CartHandler.Clear)
	api.Patch("/cart/:id", auth, d.CartHandler.Update)
	api.Delete("/cart/:id", auth, d.CartHandler.Remove)
}
