package billing

import "errors"

var (
	ErrWebhookNotConfigured = errors.New("webhook secret is not configured")
	ErrMissingSignature     = errors.New("missing webhook signature")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrMalformedEvent       = errors.New("malformed webhook event")
	ErrCheckoutDisabled     = errors.New("checkout is not configured")
)
