package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atikxb/manufacturing-company-server-side/internal/app"
	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// OrderGetter fetches one order for its owner or an admin.
type OrderGetter interface {
	GetOrder(ctx context.Context, identity, orderID string) (domain.Order, error)
}

// IntentCreator obtains a provider client secret for a pending order.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, identity string, in app.PaymentIntentInput) (string, error)
}

// HandleGetPaymentOrder returns an HTTP handler for GET /payment/{id}: the
// order lookup backing the payment page.
func HandleGetPaymentOrder(svc OrderGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		order, err := svc.GetOrder(r.Context(), identity, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newOrderResponse(order))
	}
}

type paymentIntentRequest struct {
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// HandleCreatePaymentIntent returns an HTTP handler for
// POST /create-payment-intent.
func HandleCreatePaymentIntent(svc IntentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		var req paymentIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		secret, err := svc.CreatePaymentIntent(r.Context(), identity, app.PaymentIntentInput{
			OrderID: req.OrderID,
			Amount:  req.Amount,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, paymentIntentResponse{ClientSecret: secret})
	}
}
