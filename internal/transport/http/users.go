package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atikxb/manufacturing-company-server-side/internal/app"
	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// UserUpserter creates or refreshes an account and mints its token.
type UserUpserter interface {
	Upsert(ctx context.Context, in app.UpsertUserInput) (domain.User, string, error)
}

// AdminGranter promotes an account to admin.
type AdminGranter interface {
	GrantAdmin(ctx context.Context, identity, email string) error
}

type upsertUserRequest struct {
	Name string `json:"name"`
}

type upsertUserResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// HandleUpsertUser returns an HTTP handler for PUT /user/{email}: the
// login/registration upsert. It is the only route that mints tokens, so it
// stays outside the authenticated group.
func HandleUpsertUser(svc UserUpserter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, token, err := svc.Upsert(r.Context(), app.UpsertUserInput{
			Email: chi.URLParam(r, "email"),
			Name:  req.Name,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, upsertUserResponse{
			User:  newUserResponse(user),
			Token: token,
		})
	}
}

// HandleGrantAdmin returns an HTTP handler for PUT /user/admin/{email}.
func HandleGrantAdmin(svc AdminGranter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		if err := svc.GrantAdmin(r.Context(), identity, chi.URLParam(r, "email")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type userResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u domain.User) userResponse {
	return userResponse{
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
