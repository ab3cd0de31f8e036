package billing

import (
	"errors"
	"strings"
)

// StripeConfig configures the Stripe provider.
type StripeConfig struct {
	// APIKey is the secret key (sk_test_... or sk_live_...)
	APIKey string

	// WebhookSecret (whsec_...) verifies webhook signatures
	WebhookSecret string

	// MaxRetries for transient API failures; zero means the default of 3
	MaxRetries int

	// TimeoutSeconds for Stripe API calls; zero means the default of 30
	TimeoutSeconds int
}

// Validate reports missing required fields.
func (c *StripeConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("stripe: API key is required")
	}
	if c.WebhookSecret == "" {
		return errors.New("stripe: webhook secret is required")
	}
	return nil
}

// IsTestMode reports whether the key is a test mode key.
func (c *StripeConfig) IsTestMode() bool {
	return strings.HasPrefix(c.APIKey, "sk_test_")
}
