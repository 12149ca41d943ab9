package cache

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// ProductCache is a read-through cache in front of the catalog.
type ProductCache interface {
	Product(ctx context.Context, id string) (domain.Product, error)
	SetProduct(ctx context.Context, p domain.Product) error
	Products(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, ps []domain.Product) error
	InvalidateProducts(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// Nop never hits; used when no cache is configured.
type Nop struct{}

func (Nop) Product(context.Context, string) (domain.Product, error) {
	return domain.Product{}, ErrCacheMiss
}
func (Nop) SetProduct(context.Context, domain.Product) error { return nil }
func (Nop) Products(context.Context) ([]domain.Product, error) { return nil, ErrCacheMiss }
func (Nop) SetProducts(context.Context, []domain.Product) error { return nil }
func (Nop) InvalidateProducts(context.Context) error { return nil }
