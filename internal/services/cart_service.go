package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type CartStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddOrIncrement(ctx context.Context, id, userID, productID string, qty int) (domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID string, qty int) (domain.CartItem, error)
	Delete(ctx context.Context, userID, itemID string) (bool, error)
	Clear(ctx context.Context, userID string) error
}

// ProductReader resolves products for cart listings. Listings drop rows whose
// product is gone, so it should read the store rather than a cache
// (see CatalogService.Fresh).
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (domain.Product, bool, error)
}

type CartService struct {
	Carts   CartStore
	Catalog ProductReader
}

func NewCartService(carts CartStore, catalog ProductReader) *CartService {
	return &CartService{Carts: carts, Catalog: catalog}
}

// Add puts qty units of a product in the user's cart. An existing row for the
// same product is incremented, never duplicated or reset.
func (s *CartService) Add(ctx context.Context, userID, productID string, qty int) (domain.CartItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.CartItem{}, invalid("productId", "required")
	}
	if verr := checkQuantity(qty); verr != nil {
		return domain.CartItem{}, verr
	}
	it, err := s.Carts.AddOrIncrement(ctx, uuid.NewString(), userID, productID, qty)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, ErrNotFound
	}
	if errors.Is(err, repos.ErrQuantityLimit) {
		return domain.CartItem{}, invalid("quantity", fmt.Sprintf("cart quantity cannot exceed %d", domain.MaxQuantity))
	}
	if err != nil {
		return domain.CartItem{}, storeErr(err)
	}
	return it, nil
}

// List returns the user's cart rows joined with their products. Rows whose
// product no longer exists are left out.
func (s *CartService) List(ctx context.Context, userID string) ([]domain.CartLine, error) {
	items, err := s.Carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		p, found, err := s.Catalog.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		lines = append(lines, domain.CartLine{CartItem: it, Product: p})
	}
	return lines, nil
}

// UpdateQuantity overwrites the quantity of one of the user's items.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, qty int) (domain.CartItem, error) {
	if verr := checkQuantity(qty); verr != nil {
		return domain.CartItem{}, verr
	}
	it, err := s.Carts.SetQuantity(ctx, userID, itemID, qty)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, ErrNotFound
	}
	if err != nil {
		return domain.CartItem{}, storeErr(err)
	}
	return it, nil
}

// Remove reports whether an item owned by the user was deleted.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) (bool, error) {
	ok, err := s.Carts.Delete(ctx, userID, itemID)
	if err != nil {
		return false, storeErr(err)
	}
	return ok, nil
}

func checkQuantity(qty int) *ValidationError {
	switch {
	case qty < 1:
		return invalid("quantity", "must be a positive integer")
	case qty > domain.MaxQuantity:
		return invalid("quantity", fmt.Sprintf("must be at most %d", domain.MaxQuantity))
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.Carts.Clear(ctx, userID); err != nil {
		return storeErr(err)
	}
	return nil
}
