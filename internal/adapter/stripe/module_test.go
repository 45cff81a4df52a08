package stripe

import (
	"testing"
	"time"

	"github.com/polkiloo/eatsprint/internal/config"
)

func TestNewGatewayUsesConfig(t *testing.T) {
	disabled := newGateway(gatewayParams{Config: &config.Config{}, Logger: testLogger()})
	if disabled.Enabled() {
		t.Fatal("expected gateway to be disabled without secret")
	}

	enabled := newGateway(gatewayParams{Config: &config.Config{
		StripeSecretKey: "sk_test",
		StripeCurrency:  "usd",
		OrphanOrderTTL:  time.Hour,
	}, Logger: testLogger()})
	if !enabled.Enabled() {
		t.Fatal("expected gateway to be enabled with secret")
	}
	if enabled.currency != "usd" {
		t.Fatalf("expected configured currency, got %q", enabled.currency)
	}
	if enabled.sessionTTL != time.Hour {
		t.Fatalf("expected session to expire with orphan ttl, got %v", enabled.sessionTTL)
	}
}
