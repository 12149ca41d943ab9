package handlers

import (
	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts(c.UserContext())
	if err != nil {
		log.Error(c, "products.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	p, found, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		log.Error(c, "products.get.fail", err, map[string]any{"product": id})
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch product")
	}
	if !found {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	return c.JSON(p)
}
