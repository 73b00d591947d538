package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/furniture-shop/internal/authz"
	"github.com/furniture-shop/internal/cache"
	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

type stubAuthenticator struct {
	claims   *service.UserClaims
	state    *cache.UserAuthState
	parseErr error
	stateErr error
}

func (s *stubAuthenticator) ParseToken(tokenString string) (*service.UserClaims, error) {
	if s.parseErr != nil {
		return nil, s.parseErr
	}
	return s.claims, nil
}

func (s *stubAuthenticator) ResolveAuthState(ctx context.Context, claims *service.UserClaims) (*cache.UserAuthState, error) {
	if s.stateErr != nil {
		return nil, s.stateErr
	}
	return s.state, nil
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestUserJWTAuthMiddlewareRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		auth   tokenAuthenticator
	}{
		{name: "missing header", header: "", auth: &stubAuthenticator{}},
		{name: "wrong scheme", header: "Basic abc", auth: &stubAuthenticator{}},
		{name: "parse failure", header: "Bearer bad", auth: &stubAuthenticator{parseErr: errors.New("bad token")}},
		{name: "revoked", header: "Bearer old", auth: &stubAuthenticator{claims: &service.UserClaims{ID: 1}, stateErr: service.ErrTokenRevoked}},
		{name: "nil authenticator", header: "Bearer x", auth: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(UserJWTAuthMiddleware(tc.auth))
			r.GET("/customer/me", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/customer/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status want 401 got %d", w.Code)
			}
			if got := decodeStatusCode(t, w); got != 401 {
				t.Fatalf("status_code want 401 got %d", got)
			}
		})
	}
}

func TestUserJWTAuthMiddlewareSetsContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	auth := &stubAuthenticator{
		claims: &service.UserClaims{ID: 9, Email: "stale@example.com", Role: constants.RoleAdmin},
		state:  &cache.UserAuthState{UserID: 9, Email: "buyer@example.com", Role: constants.RoleCustomer},
	}
	r := gin.New()
	r.Use(UserJWTAuthMiddleware(auth))
	r.GET("/customer/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetUint(constants.ContextKeyUserID),
			"email": c.GetString(constants.ContextKeyUserEmail),
			"role":  c.GetString(constants.ContextKeyUserRole),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customer/me", nil)
	req.Header.Set("Authorization", "bearer token-value")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.ID != 9 || resp.Email != "buyer@example.com" || resp.Role != constants.RoleCustomer {
		t.Fatalf("unexpected context values: %+v", resp)
	}
}

func TestOptionalUserAuthMiddlewareAllowsGuests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(OptionalUserAuthMiddleware(&stubAuthenticator{parseErr: errors.New("bad token")}))
	r.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(constants.ContextKeyUserRole)})
	})

	for _, header := range []string{"", "Bearer broken"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status want 200 got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"role":""`) {
			t.Fatalf("guest should carry no role, got %s", w.Body.String())
		}
	}
}

func setupRoleGuardTest(t *testing.T) *authz.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func TestRoleGuardMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authzService := setupRoleGuardTest(t)

	newEngine := func(role string) *gin.Engine {
		r := gin.New()
		api := r.Group("/api/v1")
		api.Use(func(c *gin.Context) {
			if role != "" {
				c.Set(constants.ContextKeyUserRole, role)
			}
			c.Next()
		}, RoleGuardMiddleware(authzService))
		api.POST("/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })
		api.DELETE("/products/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		api.GET("/admin/orders/status-count", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	cases := []struct {
		name   string
		role   string
		method string
		path   string
		want   int
	}{
		{name: "customer creates order", role: constants.RoleCustomer, method: http.MethodPost, path: "/api/v1/orders", want: http.StatusCreated},
		{name: "customer deletes product", role: constants.RoleCustomer, method: http.MethodDelete, path: "/api/v1/products/4", want: http.StatusForbidden},
		{name: "customer reads analytics", role: constants.RoleCustomer, method: http.MethodGet, path: "/api/v1/admin/orders/status-count", want: http.StatusForbidden},
		{name: "admin deletes product", role: constants.RoleAdmin, method: http.MethodDelete, path: "/api/v1/products/4", want: http.StatusNoContent},
		{name: "admin inherits customer", role: constants.RoleAdmin, method: http.MethodPost, path: "/api/v1/orders", want: http.StatusCreated},
		{name: "missing role", role: "", method: http.MethodPost, path: "/api/v1/orders", want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			newEngine(tc.role).ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status want %d got %d", tc.want, w.Code)
			}
		})
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowCredentials: true,
	}))
	r.GET("/api/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin want http://localhost:5173 got %s", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials want true got %s", got)
	}
}
