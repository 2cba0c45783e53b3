package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/web-visions/energy-solar-backend/pkg/auth"
	"github.com/web-visions/energy-solar-backend/pkg/config"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		nil, // redis idempotency store
		nil, // razorpay client
		nil, // auth service
		nil, // users service
		nil, // catalog service
		nil, // cart service
		nil, // orders service
		nil, // payments service
		nil, // cities service
		nil, // reviews service
		nil, // leads service
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveResponds(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if env := resp.Header().Get("X-Solar-Env"); env != "test" {
		t.Fatalf("expected env header test got %q", env)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/cart"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/orders/user"},
		{http.MethodPost, "/api/payment/order"},
	}
	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s without token got %d", route.method, route.path, resp.Code)
		}
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/leads"},
		{http.MethodGet, "/api/reviews"},
	}
	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s %s as user got %d", route.method, route.path, resp.Code)
		}
	}
}

func TestAdminGateAdmitsAdminToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	// A malformed lead id fails parameter validation with 400, which proves
	// the request made it past both the auth and role gates.
	req := httptest.NewRequest(http.MethodPut, "/api/leads/not-a-uuid/status", strings.NewReader(`{"status":"closed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed lead id got %d", resp.Code)
	}
}

func TestProductListRejectsUnknownFamily(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/products/toaster", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown product family got %d", resp.Code)
	}
}

func TestCartUpdateValidatesProductType(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodPut, "/api/cart/toaster/"+uuid.NewString(), strings.NewReader(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown product family got %d", resp.Code)
	}
}
