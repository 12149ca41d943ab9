package services

import (
	"context"

	"storefront/internal/domain"
)

type InventoryService struct {
	Catalog ProductReader
}

func NewInventoryService(catalog ProductReader) *InventoryService {
	return &InventoryService{Catalog: catalog}
}

// CheckAvailability converts a product's stock to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	p, found, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	if !found {
		return domain.Availability{}, ErrNotFound
	}

	status := "OUT_OF_STOCK"
	switch {
	case p.Stock >= 5:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.Stock}, nil
}
