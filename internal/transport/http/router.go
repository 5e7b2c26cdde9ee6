package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterDeps collects the service surfaces the routing table binds to.
type RouterDeps struct {
	Parts    PartCatalog
	Orders   OrderAPI
	Users    UserAPI
	Verifier TokenVerifier
	Logger   *zap.Logger
}

// OrderAPI is the full order surface exposed over HTTP.
type OrderAPI interface {
	OrderPlacer
	OrderLister
	OrderGetter
	OrderCanceller
	OrderShipper
	PaymentConfirmer
	IntentCreator
}

// UserAPI is the account surface exposed over HTTP.
type UserAPI interface {
	UserUpserter
	AdminGranter
}

// NewRouter assembles the routing table. Auth is declared per group: the
// health check, parts catalog and login upsert are public, everything else
// requires a verified bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if deps.Logger != nil {
		r.Use(func(next http.Handler) http.Handler {
			return RequestLogger(deps.Logger, next)
		})
	}

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", HealthHandler)
	r.Get("/parts", HandleListParts(deps.Parts))
	r.Get("/parts/{id}", HandleGetPart(deps.Parts))
	r.Put("/user/{email}", HandleUpsertUser(deps.Users))

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(deps.Verifier))

		r.Post("/order", HandlePlaceOrder(deps.Orders))
		r.Get("/orders", HandleListOrders(deps.Orders))
		r.Delete("/order/{id}", HandleCancelOrder(deps.Orders))
		r.Patch("/order/{id}", HandleConfirmPayment(deps.Orders))
		r.Patch("/order-shipment/{id}", HandleShipOrder(deps.Orders))
		r.Get("/payment/{id}", HandleGetPaymentOrder(deps.Orders))
		r.Post("/create-payment-intent", HandleCreatePaymentIntent(deps.Orders))
		r.Put("/user/admin/{email}", HandleGrantAdmin(deps.Users))
	})

	return r
}
