package billing

import "time"

// Event types consumed from the payment provider.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// Event is a verified webhook event reduced to the fields we act on.
type Event struct {
	ID         string
	Type       string
	UserID     string
	CustomerID string
	CreatedAt  time.Time
}

// CheckoutRequest describes a subscription checkout to start for a user.
type CheckoutRequest struct {
	UserID         string
	Email          string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// CheckoutSession is the hosted checkout page created by the provider.
type CheckoutSession struct {
	ID  string
	URL string
}

// ProcessedEvent is the durable record of a handled webhook event.
type ProcessedEvent struct {
	EventID     string
	EventType   string
	ProcessedAt time.Time
}
