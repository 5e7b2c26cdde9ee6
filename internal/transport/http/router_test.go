package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

type stubCatalog struct {
	parts []domain.Part
	part  domain.Part
	err   error
}

func (s *stubCatalog) List(_ context.Context) ([]domain.Part, error) {
	return s.parts, s.err
}

func (s *stubCatalog) Get(_ context.Context, _ string) (domain.Part, error) {
	return s.part, s.err
}

func newTestRouter() http.Handler {
	return NewRouter(RouterDeps{
		Parts:    &stubCatalog{},
		Orders:   &stubOrderService{},
		Users:    &stubUserService{token: "jwt-token"},
		Verifier: &stubVerifier{email: "buyer@example.com"},
	})
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, target: "/health", expectedStatus: http.StatusOK},
		{name: "list parts", method: http.MethodGet, target: "/parts", expectedStatus: http.StatusOK},
		{name: "get part", method: http.MethodGet, target: "/parts/part-1", expectedStatus: http.StatusOK},
		{name: "login upsert", method: http.MethodPut, target: "/user/buyer@example.com", body: `{"name":"Buyer"}`, expectedStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, target: "/nope", expectedStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, target: "/parts", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, bytes.NewBufferString(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Result().StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Result().StatusCode)
			}
		})
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	targets := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/order"},
		{http.MethodGet, "/orders"},
		{http.MethodDelete, "/order/order-1"},
		{http.MethodPatch, "/order/order-1"},
		{http.MethodPatch, "/order-shipment/order-1"},
		{http.MethodGet, "/payment/order-1"},
		{http.MethodPost, "/create-payment-intent"},
		{http.MethodPut, "/user/admin/target@example.com"},
	}

	for _, tt := range targets {
		tt := tt
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Result().StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected status 401 without token, got %d", rec.Result().StatusCode)
			}
		})
	}
}

func TestRouter_ProtectedRouteWithToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d", rec.Result().StatusCode)
	}
}
