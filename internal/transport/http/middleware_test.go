package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

type stubVerifier struct {
	email string
	err   error
}

func (s *stubVerifier) Verify(_ string) (string, error) {
	return s.email, s.err
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		header         string
		verifyEmail    string
		verifyErr      error
		expectedStatus int
		expectIdentity string
	}{
		{
			name:           "valid bearer token",
			header:         "Bearer good-token",
			verifyEmail:    "buyer@example.com",
			expectedStatus: http.StatusOK,
			expectIdentity: "buyer@example.com",
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			header:         "Bearer bad-token",
			verifyErr:      domain.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotIdentity string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, _ = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			verifier := &stubVerifier{email: tt.verifyEmail, err: tt.verifyErr}
			Authenticate(verifier)(next).ServeHTTP(rec, req)

			if rec.Result().StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Result().StatusCode)
			}
			if tt.expectIdentity != "" && gotIdentity != tt.expectIdentity {
				t.Fatalf("expected identity %q, got %q", tt.expectIdentity, gotIdentity)
			}
			if tt.expectedStatus != http.StatusOK && gotIdentity != "" {
				t.Fatalf("handler should not run on auth failure, saw identity %q", gotIdentity)
			}
		})
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if identity, ok := IdentityFromContext(req.Context()); ok || identity != "" {
		t.Fatalf("expected no identity, got %q", identity)
	}
}
