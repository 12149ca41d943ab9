package handlers

import (
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/repos"
	"storefront/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	AuthHandler      *AuthHandler

	Catalog  *services.CatalogService
	Identity Identity
	// LoginMax is the number of login attempts allowed per IP in LoginWindow.
	LoginMax int
}

func NewDeps(db *sqlx.DB, cfg config.Config, pc cache.ProductCache) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, pc)
	cartSvc := services.NewCartService(cartRepo, catalogSvc.Fresh())
	invSvc := services.NewInventoryService(catalogSvc)
	authSvc := &services.AuthService{Users: userRepo}

	return &Deps{
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		AuthHandler:      &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		Catalog:          catalogSvc,
		Identity:         SessionIdentity(authSvc),
		LoginMax:         5,
	}
}
