package profile

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Profile) (bool, error)
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	SetTierByUserID(ctx context.Context, userID string, tier Tier, stripeCustomerID string) (bool, error)
	SetTierByStripeCustomer(ctx context.Context, customerID string, tier Tier) (int, error)
}
