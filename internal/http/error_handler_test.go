package handlers_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storefront/internal/http/handlers"
)

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "Bad input")
	})

	var body string
	entries := captureLogs(t, func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
	})
	if !strings.Contains(body, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", body)
	}
	if strings.Contains(body, "db timeout") || strings.Contains(body, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", body)
	}
	e, ok := findLog(entries, "server.error")
	if !ok || !strings.Contains(e.Err, "db timeout") {
		t.Fatalf("expected server.error log with cause, got %+v", entries)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/bad", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "Bad input") {
		t.Fatalf("client error message dropped; body=%s", b)
	}
}

func TestStoreFailureIsOpaque(t *testing.T) {
	api := newTestAPI(t, withHeaderIdentity)
	_ = api.db.Close()

	var code int
	var body []byte
	entries := captureLogs(t, func() {
		resp, b := api.do(t, call{method: "GET", path: "/api/cart", user: "u1"})
		code, body = resp.StatusCode, b
	})
	if code != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if got := decodeJSON[errorBody](t, body).Message; got != "Failed to fetch cart" {
		t.Fatalf("message %q", got)
	}
	if strings.Contains(string(body), "closed") {
		t.Fatalf("driver error leaked: %s", body)
	}
	if _, ok := findLog(entries, "cart.list.fail"); !ok {
		t.Fatalf("expected cart.list.fail log")
	}
}
