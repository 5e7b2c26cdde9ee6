package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// PartCatalog is the minimal interface needed by the public parts endpoints.
type PartCatalog interface {
	List(ctx context.Context) ([]domain.Part, error)
	Get(ctx context.Context, partID string) (domain.Part, error)
}

// HandleListParts returns an HTTP handler listing the parts catalog.
func HandleListParts(svc PartCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts, err := svc.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]partResponse, 0, len(parts))
		for _, p := range parts {
			resp = append(resp, newPartResponse(p))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetPart returns an HTTP handler fetching one part.
func HandleGetPart(svc PartCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		part, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newPartResponse(part))
	}
}

type partResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	PriceCents int       `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newPartResponse(p domain.Part) partResponse {
	return partResponse{
		ID:         p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		PriceCents: p.PriceCents,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
