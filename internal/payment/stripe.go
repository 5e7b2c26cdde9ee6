package payment

import (
	"context"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// IntentCreator requests a payment authorization handle from the processor.
// Amount is a decimal currency value; implementations convert to the
// processor's minor-unit integer representation.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount float64) (clientSecret string, err error)
}

// StripeBridge creates card payment intents in a single fixed currency. The
// Stripe client is injected at construction; no package-global key is set.
type StripeBridge struct {
	api *client.API
}

const currency = stripe.CurrencyUSD

func NewStripeBridge(secretKey string) *StripeBridge {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeBridge{api: api}
}

// CreateIntent converts amount to minor units (x100) and requests a payment
// intent scoped to card instruments. Upstream failures, including timeouts,
// surface as *domain.PaymentProviderError and are never retried here.
func (b *StripeBridge) CreateIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", domain.ErrInvalidAmount
	}
	amountCents := int64(math.Round(amount * 100))

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := b.api.PaymentIntents.New(params)
	if err != nil {
		return "", &domain.PaymentProviderError{Op: "create intent", Err: err}
	}
	return intent.ClientSecret, nil
}
