package handlers_test

import (
	"net/http"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/services"
)

func TestProductRoutes(t *testing.T) {
	api := newTestAPI(t, nil)
	first := api.product(t, "Professional Camera", 20)
	api.product(t, "Running Shoes", 3)

	resp, body := api.do(t, call{method: "GET", path: "/api/products"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	ps := decodeJSON[[]domain.Product](t, body)
	if len(ps) != 2 || ps[0].ID != first.ID {
		t.Fatalf("expected oldest product first, got %+v", ps)
	}

	resp, body = api.do(t, call{method: "GET", path: "/api/products/" + first.ID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", resp.StatusCode)
	}
	p := decodeJSON[domain.Product](t, body)
	if p.Name != "Professional Camera" || p.Price.String() != "19.99" {
		t.Fatalf("unexpected product %+v", p)
	}

	for _, path := range []string{"/api/products/missing", "/api/products/bad$id"} {
		resp, body = api.do(t, call{method: "GET", path: path})
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
		if got := decodeJSON[errorBody](t, body).Message; got != "Product not found" {
			t.Fatalf("%s: message %q", path, got)
		}
	}
}

func TestAvailabilityRoute(t *testing.T) {
	api := newTestAPI(t, nil)
	low := api.product(t, "Gaming Headset", 2)

	resp, body := api.do(t, call{method: "GET", path: "/api/products/" + low.ID + "/availability"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if a := decodeJSON[domain.Availability](t, body); a.Status != "LOW_STOCK" || a.Qty != 2 {
		t.Fatalf("unexpected availability %+v", a)
	}

	none := api.product(t, "Backpack", 0)
	_, body = api.do(t, call{method: "GET", path: "/api/products/" + none.ID + "/availability"})
	raw := decodeJSON[map[string]any](t, body)
	if raw["status"] != "OUT_OF_STOCK" {
		t.Fatalf("unexpected availability %v", raw)
	}
	if qty, ok := raw["qty"]; !ok || qty != float64(0) {
		t.Fatalf("expected qty 0 in body, got %s", body)
	}

	resp, _ = api.do(t, call{method: "GET", path: "/api/products/missing/availability"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: expected 404, got %d", resp.StatusCode)
	}
}

func TestSeededCatalogServed(t *testing.T) {
	api := newTestAPI(t, nil)
	if _, err := api.deps.Catalog.SeedIfEmpty(t.Context(), services.SampleProducts); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, body := api.do(t, call{method: "GET", path: "/api/products"})
	if ps := decodeJSON[[]domain.Product](t, body); len(ps) != len(services.SampleProducts) {
		t.Fatalf("expected %d products, got %d", len(services.SampleProducts), len(ps))
	}
}
