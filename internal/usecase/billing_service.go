package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/billing"
	"github.com/riskibarqy/courtvision/internal/domain/profile"
	"github.com/riskibarqy/courtvision/internal/domain/user"
	"github.com/riskibarqy/courtvision/internal/platform/id"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
)

const maxUserIDLength = 255

var billingUserIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type BillingConfig struct {
	DefaultOrigin string
	SuccessPath   string
	CancelPath    string
	DedupeEntries int
	DedupeTTL     time.Duration
}

type CheckoutInput struct {
	Principal user.Principal
	UserID    string
	Origin    string
}

type WebhookResult struct {
	EventID   string
	EventType string
	Duplicate bool
	Action    string
}

// Webhook actions reported back to the caller and to metrics.
const (
	WebhookActionUpgraded   = "upgraded"
	WebhookActionDowngraded = "downgraded"
	WebhookActionIgnored    = "ignored"
	WebhookActionDuplicate  = "duplicate"
	WebhookActionUnmatched  = "unmatched"
)

type BillingService struct {
	checkout billing.CheckoutProvider
	verifier billing.WebhookVerifier
	profiles profile.Repository
	dedupe   *eventDeduper
	ids      id.Generator
	cfg      BillingConfig
	metrics  *metrics.Manager
	logger   *logging.Logger
}

func NewBillingService(
	checkout billing.CheckoutProvider,
	verifier billing.WebhookVerifier,
	profiles profile.Repository,
	processed billing.ProcessedEventRepository,
	ids id.Generator,
	cfg BillingConfig,
	m *metrics.Manager,
	logger *logging.Logger,
) *BillingService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if strings.TrimSpace(cfg.DefaultOrigin) == "" {
		cfg.DefaultOrigin = "http://localhost:3000"
	}
	if cfg.SuccessPath == "" {
		cfg.SuccessPath = "/checkout-success?session_id={CHECKOUT_SESSION_ID}"
	}
	if cfg.CancelPath == "" {
		cfg.CancelPath = "/checkout-cancel"
	}

	return &BillingService{
		checkout: checkout,
		verifier: verifier,
		profiles: profiles,
		dedupe:   newEventDeduper(processed, cfg.DedupeEntries, cfg.DedupeTTL),
		ids:      ids,
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
	}
}

// CreateCheckout starts a premium subscription checkout. Users may only
// check out for themselves.
func (s *BillingService) CreateCheckout(ctx context.Context, input CheckoutInput) (billing.CheckoutSession, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BillingService.CreateCheckout")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if !validBillingUserID(userID) {
		return billing.CheckoutSession{}, fmt.Errorf("%w: invalid user id format", ErrInvalidInput)
	}
	if userID != input.Principal.UserID {
		return billing.CheckoutSession{}, fmt.Errorf("%w: checkout user does not match caller", ErrForbidden)
	}
	if s.checkout == nil {
		return billing.CheckoutSession{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, billing.ErrCheckoutDisabled)
	}

	origin := s.resolveOrigin(input.Origin)
	key, err := s.ids.NewID()
	if err != nil {
		return billing.CheckoutSession{}, fmt.Errorf("generate idempotency key: %w", err)
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		UserID:         userID,
		Email:          input.Principal.Email,
		SuccessURL:     origin + s.cfg.SuccessPath,
		CancelURL:      origin + s.cfg.CancelPath,
		IdempotencyKey: key,
	})
	if err != nil {
		return billing.CheckoutSession{}, fmt.Errorf("%w: create checkout session: %w", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "checkout session created", "user_id", userID, "session_id", session.ID)
	return session, nil
}

// HandleWebhook verifies and applies one payment webhook delivery. Redelivered
// events are acknowledged without being applied again.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BillingService.HandleWebhook")
	defer span.End()

	if strings.TrimSpace(signature) == "" {
		return WebhookResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, billing.ErrMissingSignature)
	}
	if s.verifier == nil {
		return WebhookResult{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, billing.ErrWebhookNotConfigured)
	}

	event, err := s.verifier.VerifyEvent(payload, signature)
	if err != nil {
		if errors.Is(err, billing.ErrWebhookNotConfigured) {
			return WebhookResult{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
		}
		if errors.Is(err, billing.ErrMalformedEvent) {
			s.logger.WarnContext(ctx, "webhook event could not be decoded", "error", err)
			return WebhookResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, billing.ErrMalformedEvent)
		}
		s.logger.WarnContext(ctx, "webhook signature verification failed", "error", err)
		return WebhookResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, billing.ErrInvalidSignature)
	}

	result := WebhookResult{EventID: event.ID, EventType: event.Type}
	claimed, err := s.dedupe.claim(ctx, event.ID)
	if err != nil {
		s.metrics.WebhookEvent(event.Type, "error")
		return result, err
	}
	if !claimed {
		s.logger.InfoContext(ctx, "ignoring duplicate webhook event", "event_id", event.ID, "event_type", event.Type)
		s.metrics.WebhookEvent(event.Type, WebhookActionDuplicate)
		result.Duplicate = true
		result.Action = WebhookActionDuplicate
		return result, nil
	}

	action, err := s.apply(ctx, event)
	if err != nil {
		s.dedupe.release(event.ID)
		s.metrics.WebhookEvent(event.Type, "error")
		return result, err
	}
	if err := s.dedupe.complete(ctx, event); err != nil {
		s.metrics.WebhookEvent(event.Type, "error")
		return result, err
	}

	s.metrics.WebhookEvent(event.Type, action)
	result.Action = action
	return result, nil
}

func (s *BillingService) apply(ctx context.Context, event billing.Event) (string, error) {
	switch event.Type {
	case billing.EventCheckoutCompleted:
		userID := strings.TrimSpace(event.UserID)
		if userID == "" {
			return "", fmt.Errorf("%w: checkout session has no user id", ErrInvalidInput)
		}
		if !validBillingUserID(userID) {
			return "", fmt.Errorf("%w: checkout session user id is malformed", ErrInvalidInput)
		}

		updated, err := s.profiles.SetTierByUserID(ctx, userID, profile.TierPremium, event.CustomerID)
		if err != nil {
			return "", fmt.Errorf("upgrade profile: %w", err)
		}
		if !updated {
			s.logger.WarnContext(ctx, "checkout completed for unknown profile", "user_id", userID, "event_id", event.ID)
			return WebhookActionUnmatched, nil
		}
		s.logger.InfoContext(ctx, "profile upgraded to premium", "user_id", userID, "customer_id", event.CustomerID)
		return WebhookActionUpgraded, nil

	case billing.EventSubscriptionDeleted:
		customerID := strings.TrimSpace(event.CustomerID)
		if customerID == "" {
			return "", fmt.Errorf("%w: subscription has no customer id", ErrInvalidInput)
		}

		affected, err := s.profiles.SetTierByStripeCustomer(ctx, customerID, profile.TierFree)
		if err != nil {
			return "", fmt.Errorf("downgrade profile: %w", err)
		}
		if affected == 0 {
			s.logger.WarnContext(ctx, "subscription cancelled for unknown customer", "customer_id", customerID, "event_id", event.ID)
			return WebhookActionUnmatched, nil
		}
		s.logger.InfoContext(ctx, "subscription cancelled, profile downgraded", "customer_id", customerID, "profiles", affected)
		return WebhookActionDowngraded, nil

	default:
		s.logger.InfoContext(ctx, "unhandled webhook event type", "event_type", event.Type, "event_id", event.ID)
		return WebhookActionIgnored, nil
	}
}

func (s *BillingService) resolveOrigin(origin string) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return strings.TrimRight(s.cfg.DefaultOrigin, "/")
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return strings.TrimRight(s.cfg.DefaultOrigin, "/")
	}
	return parsed.Scheme + "://" + parsed.Host
}

func validBillingUserID(v string) bool {
	return v != "" && len(v) <= maxUserIDLength && billingUserIDPattern.MatchString(v)
}
