package billing

import "context"

// CheckoutProvider starts hosted subscription checkouts.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}

// WebhookVerifier authenticates a raw webhook payload and decodes it.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, signature string) (Event, error)
}
