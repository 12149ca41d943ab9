package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"storefront/internal/cache"
	"storefront/internal/domain"
	applog "storefront/internal/log"
)

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
}

type CatalogService struct {
	Prods ProductStore
	Cache cache.ProductCache

	sfg singleflight.Group // collapses concurrent misses per key
}

func NewCatalogService(prods ProductStore, c cache.ProductCache) *CatalogService {
	if c == nil {
		c = cache.Nop{}
	}
	return &CatalogService{Prods: prods, Cache: c}
}

// ListProducts returns the whole catalog, oldest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if ps, err := s.Cache.Products(ctx); err == nil {
		return ps, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		applog.Error(nil, "catalog.cache.get", err, nil)
	}

	v, err, _ := s.sfg.Do("products", func() (any, error) {
		// shared by every waiting caller; detached from the first caller's cancellation
		ctx := context.WithoutCancel(ctx)
		ps, err := s.Prods.List(ctx)
		if err != nil {
			return nil, storeErr(err)
		}
		if err := s.Cache.SetProducts(ctx, ps); err != nil {
			applog.Error(nil, "catalog.cache.set", err, nil)
		}
		return ps, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

type productLookup struct {
	p     domain.Product
	found bool
}

// GetProduct reports found=false for an unknown id; only store failures are errors.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	if p, err := s.Cache.Product(ctx, id); err == nil {
		return p, true, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		applog.Error(nil, "catalog.cache.get", err, map[string]any{"product": id})
	}

	v, err, _ := s.sfg.Do("product:"+id, func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		p, found, err := storeReader{s.Prods}.GetProduct(ctx, id)
		if err != nil || !found {
			return productLookup{}, err
		}
		if err := s.Cache.SetProduct(ctx, p); err != nil {
			applog.Error(nil, "catalog.cache.set", err, map[string]any{"product": id})
		}
		return productLookup{p: p, found: true}, nil
	})
	if err != nil {
		return domain.Product{}, false, err
	}
	res := v.(productLookup)
	return res.p, res.found, nil
}

// Fresh returns a reader that skips the cache, for callers that must not
// see products deleted from the store.
func (s *CatalogService) Fresh() ProductReader {
	return storeReader{s.Prods}
}

type storeReader struct{ prods ProductStore }

func (r storeReader) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	p, err := r.prods.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, storeErr(err)
	}
	return p, true, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, invalid("name", "required")
	}
	if in.Price.IsNegative() {
		return domain.Product{}, invalid("price", "must be >= 0")
	}
	if in.Stock < 0 {
		return domain.Product{}, invalid("stock", "must be >= 0")
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Category:    in.Category,
		Stock:       in.Stock,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Prods.Create(ctx, p); err != nil {
		return domain.Product{}, storeErr(err)
	}
	if err := s.Cache.InvalidateProducts(ctx); err != nil {
		applog.Error(nil, "catalog.cache.invalidate", err, nil)
	}
	return p, nil
}
