package handlers

import (
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/cart
func (h *CartHandler) List(c *fiber.Ctx) error {
	lines, err := h.Cart.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return serviceError(c, "cart.list.fail", err, "Cart not found", "Failed to fetch cart")
	}
	return c.JSON(lines)
}

// POST /api/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	in, errs := validate.ParseAddToCart(c.Body())
	if errs != nil {
		return invalidInput(c, "Invalid request data", errs)
	}
	item, err := h.Cart.Add(c.UserContext(), currentUserID(c), in.ProductID, in.Quantity)
	if err != nil {
		return serviceError(c, "cart.add.fail", err, "Product not found", "Failed to add to cart")
	}
	applog.Audit(c, "cart.add", map[string]any{"product": in.ProductID, "qty": in.Quantity, "item": item.ID})
	return c.JSON(item)
}

// PATCH /api/cart/:id
func (h *CartHandler) Update(c *fiber.Ctx) error {
	in, errs := validate.ParseUpdateCart(c.Body())
	if errs != nil {
		return invalidInput(c, "Invalid quantity", errs)
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Cart item not found")
	}
	item, err := h.Cart.UpdateQuantity(c.UserContext(), currentUserID(c), id, in.Quantity)
	if err != nil {
		return serviceError(c, "cart.update.fail", err, "Cart item not found", "Failed to update cart")
	}
	applog.Audit(c, "cart.update", map[string]any{"item": id, "qty": in.Quantity})
	return c.JSON(item)
}

// DELETE /api/cart/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Cart item not found")
	}
	removed, err := h.Cart.Remove(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return serviceError(c, "cart.remove.fail", err, "Cart item not found", "Failed to remove from cart")
	}
	if !removed {
		return fail(c, fiber.StatusNotFound, "Cart item not found")
	}
	applog.Audit(c, "cart.remove", map[string]any{"item": id})
	return c.JSON(fiber.Map{"success": true})
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.UserContext(), currentUserID(c)); err != nil {
		return serviceError(c, "cart.clear.fail", err, "Cart not found", "Failed to clear cart")
	}
	applog.Audit(c, "cart.clear", nil)
	return c.JSON(fiber.Map{"success": true})
}
