package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

const defaultCurrency = "inr"

// Stripe accepts checkout expiry between 30 minutes and 24 hours after creation.
const (
	MinSessionTTL = 30 * time.Minute
	MaxSessionTTL = 24 * time.Hour
)

// errEmptySessionURL reports a session created without a redirect target.
var errEmptySessionURL = errors.New("checkout session has no url")

// Options configures the checkout gateway.
type Options struct {
	SecretKey string
	Currency  string
	// SessionTTL bounds how long a checkout session stays payable. It is
	// clamped to the range Stripe accepts; zero keeps Stripe's default.
	SessionTTL time.Duration
	Now        func() time.Time
	// Backends overrides Stripe API endpoints; nil uses the public API.
	Backends *stripeapi.Backends
	Logger   *slog.Logger
}

// Gateway creates hosted checkout sessions through the Stripe API.
type Gateway struct {
	api        *client.API
	currency   string
	sessionTTL time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewGateway constructs gateway. An empty secret yields a disabled gateway.
func NewGateway(opts Options) *Gateway {
	currency := opts.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	g := &Gateway{currency: currency, sessionTTL: clampSessionTTL(opts.SessionTTL), now: now, logger: logger}
	if opts.SecretKey == "" {
		return g
	}

	g.api = &client.API{}
	g.api.Init(opts.SecretKey, opts.Backends)
	return g
}

// Enabled reports whether online payments can be offered.
func (g *Gateway) Enabled() bool {
	return g.api != nil
}

// CreateCheckoutSession registers a payment session for items priced in minor
// units and returns the URL the customer must be redirected to.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, items []model.LineItem, successURL, cancelURL string) (string, error) {
	if !g.Enabled() {
		return "", errors.New("stripe gateway is disabled")
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(successURL),
		CancelURL:  stripeapi.String(cancelURL),
		LineItems:  g.lineItems(items),
	}
	if g.sessionTTL > 0 {
		params.ExpiresAt = stripeapi.Int64(g.now().Add(g.sessionTTL).Unix())
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripeapi.Error
		if errors.As(err, &stripeErr) {
			g.logger.Error("stripe session rejected",
				slog.String("type", string(stripeErr.Type)),
				slog.String("code", string(stripeErr.Code)),
				slog.Int("status", stripeErr.HTTPStatusCode),
			)
		}
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if session.URL == "" {
		return "", errEmptySessionURL
	}

	return session.URL, nil
}

func clampSessionTTL(ttl time.Duration) time.Duration {
	switch {
	case ttl <= 0:
		return 0
	case ttl < MinSessionTTL:
		return MinSessionTTL
	case ttl > MaxSessionTTL:
		return MaxSessionTTL
	}
	return ttl
}

func (g *Gateway) lineItems(items []model.LineItem) []*stripeapi.CheckoutSessionLineItemParams {
	out := make([]*stripeapi.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		out = append(out, &stripeapi.CheckoutSessionLineItemParams{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency: stripeapi.String(g.currency),
				ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripeapi.String(item.Name),
				},
				UnitAmount: stripeapi.Int64(int64(item.UnitPrice)),
			},
			Quantity: stripeapi.Int64(int64(item.Quantity)),
		})
	}
	return out
}
