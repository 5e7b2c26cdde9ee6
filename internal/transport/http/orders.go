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

// OrderPlacer is the slice of the order service needed to place orders.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, identity string, in app.PlaceOrderInput) (domain.Order, error)
}

// OrderLister lists orders visible to the caller.
type OrderLister interface {
	ListOrders(ctx context.Context, identity, filterEmail string) ([]domain.Order, error)
}

// OrderCanceller removes an order.
type OrderCanceller interface {
	CancelOrder(ctx context.Context, identity, orderID string) error
}

// OrderShipper marks a paid order shipped.
type OrderShipper interface {
	ShipOrder(ctx context.Context, identity, orderID string) (domain.Order, error)
}

// PaymentConfirmer records a completed charge against an order.
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, identity, orderID, transactionRef string) (domain.Order, error)
}

type placeOrderRequest struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

// HandlePlaceOrder returns an HTTP handler for POST /order.
func HandlePlaceOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		var req placeOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		order, err := svc.PlaceOrder(r.Context(), identity, app.PlaceOrderInput{
			PartID:   req.PartID,
			Quantity: req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newOrderResponse(order))
	}
}

// HandleListOrders returns an HTTP handler for GET /orders. The optional
// email query parameter filters by customer; non-admin callers may only name
// themselves.
func HandleListOrders(svc OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		orders, err := svc.ListOrders(r.Context(), identity, r.URL.Query().Get("email"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, newOrderResponse(o))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleCancelOrder returns an HTTP handler for DELETE /order/{id}.
func HandleCancelOrder(svc OrderCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		if err := svc.CancelOrder(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleShipOrder returns an HTTP handler for PATCH /order-shipment/{id}.
func HandleShipOrder(svc OrderShipper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		order, err := svc.ShipOrder(r.Context(), identity, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newOrderResponse(order))
	}
}

type confirmPaymentRequest struct {
	TransactionRef string `json:"transaction_ref"`
}

// HandleConfirmPayment returns an HTTP handler for PATCH /order/{id}. The
// body carries the provider's transaction reference from the completed
// client-side charge.
func HandleConfirmPayment(svc PaymentConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		var req confirmPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		order, err := svc.ConfirmPayment(r.Context(), identity, chi.URLParam(r, "id"), req.TransactionRef)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newOrderResponse(order))
	}
}

type orderResponse struct {
	ID             string    `json:"id"`
	PartID         string    `json:"part_id"`
	CustomerEmail  string    `json:"customer_email"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	TotalCents     int64     `json:"total_cents"`
	Status         string    `json:"status"`
	TransactionRef string    `json:"transaction_ref,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func newOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:             o.ID,
		PartID:         o.PartID,
		CustomerEmail:  o.CustomerEmail,
		Quantity:       o.Quantity,
		UnitPriceCents: o.UnitPriceCents,
		TotalCents:     o.TotalCents(),
		Status:         string(o.Status),
		TransactionRef: o.TransactionRef,
		CreatedAt:      o.CreatedAt,
	}
}
