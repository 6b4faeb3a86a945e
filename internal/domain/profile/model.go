package profile

import (
	"fmt"
	"strings"
	"time"
)

// Tier is the subscription level of a profile.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

// ParseTier maps stored values to a Tier; unknown values read as free.
func ParseTier(v string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(v))) {
	case TierPremium:
		return TierPremium
	case TierPro:
		return TierPro
	default:
		return TierFree
	}
}

// HasPremiumAccess reports whether the tier unlocks the analytics tools.
func (t Tier) HasPremiumAccess() bool {
	return t == TierPremium || t == TierPro
}

// Profile is the application-side record for an authenticated user.
type Profile struct {
	UserID           string
	Email            string
	FullName         string
	Tier             Tier
	StripeCustomerID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("profile user id is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("profile email is required")
	}
	return nil
}
