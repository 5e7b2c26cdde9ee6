package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/atikxb/manufacturing-company-server-side/internal/app"
	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

type stubUserService struct {
	user  domain.User
	token string
	err   error

	grantedEmail string
}

func (s *stubUserService) Upsert(_ context.Context, _ app.UpsertUserInput) (domain.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubUserService) GrantAdmin(_ context.Context, _, email string) error {
	s.grantedEmail = email
	return s.err
}

// urlParamRequest builds a request whose chi route context carries the given
// URL parameter, so handlers can be exercised without the full router.
func urlParamRequest(method, target, key, value string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleUpsertUser(t *testing.T) {
	t.Parallel()

	t.Run("returns user and token", func(t *testing.T) {
		t.Parallel()
		svc := &stubUserService{
			user:  domain.User{Email: "buyer@example.com", Name: "Buyer", Role: domain.RoleCustomer},
			token: "jwt-token",
		}
		req := urlParamRequest(http.MethodPut, "/user/buyer@example.com", "email", "buyer@example.com", `{"name":"Buyer"}`)
		rec := httptest.NewRecorder()

		HandleUpsertUser(svc).ServeHTTP(rec, req)

		if rec.Result().StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Result().StatusCode)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"token":"jwt-token"`) {
			t.Fatalf("expected token in response, got %q", body)
		}
		if !strings.Contains(body, `"role":"customer"`) {
			t.Fatalf("expected role in response, got %q", body)
		}
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		t.Parallel()
		svc := &stubUserService{}
		req := urlParamRequest(http.MethodPut, "/user/buyer@example.com", "email", "buyer@example.com", `{"name":`)
		rec := httptest.NewRecorder()

		HandleUpsertUser(svc).ServeHTTP(rec, req)

		if rec.Result().StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Result().StatusCode)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		t.Parallel()
		svc := &stubUserService{err: domain.ErrEmailRequired}
		req := urlParamRequest(http.MethodPut, "/user/x", "email", "", `{"name":"Buyer"}`)
		rec := httptest.NewRecorder()

		HandleUpsertUser(svc).ServeHTTP(rec, req)

		if rec.Result().StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Result().StatusCode)
		}
	})
}

func TestHandleGrantAdmin(t *testing.T) {
	t.Parallel()

	t.Run("promotes target", func(t *testing.T) {
		t.Parallel()
		svc := &stubUserService{}
		req := urlParamRequest(http.MethodPut, "/user/admin/target@example.com", "email", "target@example.com", "")
		req = withIdentity(req, "root@example.com")
		rec := httptest.NewRecorder()

		HandleGrantAdmin(svc).ServeHTTP(rec, req)

		if rec.Result().StatusCode != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Result().StatusCode)
		}
		if svc.grantedEmail != "target@example.com" {
			t.Fatalf("expected grant for target@example.com, got %q", svc.grantedEmail)
		}
	})

	t.Run("non-admin caller", func(t *testing.T) {
		t.Parallel()
		svc := &stubUserService{err: domain.ErrForbidden}
		req := urlParamRequest(http.MethodPut, "/user/admin/target@example.com", "email", "target@example.com", "")
		req = withIdentity(req, "buyer@example.com")
		rec := httptest.NewRecorder()

		HandleGrantAdmin(svc).ServeHTTP(rec, req)

		if rec.Result().StatusCode != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Result().StatusCode)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		t.Parallel()
		svc := &stubUserService{err: domain.ErrUserNotFound}
		req := urlParamRequest(http.MethodPut, "/user/admin/ghost@example.com", "email", "ghost@example.com", "")
		req = withIdentity(req, "root@example.com")
		rec := httptest.NewRecorder()

		HandleGrantAdmin(svc).ServeHTTP(rec, req)

		if rec.Result().StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Result().StatusCode)
		}
	})
}
