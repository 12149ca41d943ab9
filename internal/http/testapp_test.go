package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
)

type testAPI struct {
	app  *fiber.App
	db   *sqlx.DB
	deps *handlers.Deps
}

// newTestAPI mounts the API on a fresh in-memory database with the seeded users.
// tweak runs before Mount so tests can swap the identity resolver or limits.
func newTestAPI(t *testing.T, tweak func(d *handlers.Deps)) *testAPI {
	t.Helper()
	return newTestAPIWithCache(t, nil, tweak)
}

func newTestAPIWithCache(t *testing.T, pc cache.ProductCache, tweak func(d *handlers.Deps)) *testAPI {
	t.Helper()
	db, err := repos.OpenDB(repos.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedUsers(db); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	deps := handlers.NewDeps(db, config.Config{}, pc)
	if tweak != nil {
		tweak(deps)
	}
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	handlers.Mount(app, deps)
	return &testAPI{app: app, db: db, deps: deps}
}

// headerIdentity trusts X-User; it stands in for the session lookup.
func headerIdentity(c *fiber.Ctx) (string, bool) {
	uid := c.Get("X-User")
	return uid, uid != ""
}

func (a *testAPI) product(t *testing.T, name string, stock int) domain.Product {
	t.Helper()
	p, err := a.deps.Catalog.CreateProduct(context.Background(), domain.NewProduct{
		Name:     name,
		Price:    decimal.RequireFromString("19.99"),
		Category: "Electronics",
		Stock:    stock,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

type call struct {
	method string
	path   string
	body   string
	user   string
	sid    string
}

func (a *testAPI) do(t *testing.T, c call) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if c.body != "" {
		body = strings.NewReader(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.Header.Set("X-User", c.user)
	}
	if c.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: c.sid})
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", c.method, c.path, err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func decodeJSON[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
