package services

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// SampleProducts is the demo catalog created on an empty store.
var SampleProducts = []domain.NewProduct{
	{Name: "Wireless Headphones", Description: "High quality bluetooth headphones with noise cancelling and a 24 hour battery", Price: decimal.RequireFromString("149.99"), Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&q=80", Category: "Electronics", Stock: 50},
	{Name: "Smart Watch", Description: "Slim smart watch with fitness tracker, water resistant", Price: decimal.RequireFromString("299.99"), Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&q=80", Category: "Electronics", Stock: 30},
	{Name: "Backpack", Description: "Comfortable everyday backpack with a padded laptop pocket", Price: decimal.RequireFromString("79.99"), Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&q=80", Category: "Fashion", Stock: 100},
	{Name: "Sunglasses", Description: "Stylish sunglasses with UV protection", Price: decimal.RequireFromString("129.99"), Image: "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=400&q=80", Category: "Fashion", Stock: 75},
	{Name: "Professional Camera", Description: "High resolution digital camera for professional photography", Price: decimal.RequireFromString("899.99"), Image: "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?w=400&q=80", Category: "Electronics", Stock: 20},
	{Name: "Running Shoes", Description: "Comfortable shoes for running and daily workouts", Price: decimal.RequireFromString("119.99"), Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&q=80", Category: "Sports", Stock: 60},
	{Name: "Water Bottle", Description: "Insulated bottle that keeps drinks cold for 24 hours", Price: decimal.RequireFromString("34.99"), Image: "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400&q=80", Category: "Sports", Stock: 150},
	{Name: "Gaming Headset", Description: "Gaming headset with microphone and RGB lighting", Price: decimal.RequireFromString("89.99"), Image: "https://images.unsplash.com/photo-1599669454699-248893623440?w=400&q=80", Category: "Electronics", Stock: 40},
}

// SeedIfEmpty creates the given products when the catalog has none.
// It returns the number of products created.
func (s *CatalogService) SeedIfEmpty(ctx context.Context, samples []domain.NewProduct) (int, error) {
	existing, err := s.Prods.List(ctx)
	if err != nil {
		return 0, storeErr(err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	log.Println("[seed] inserting sample products")
	for i, in := range samples {
		if _, err := s.CreateProduct(ctx, in); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}
