package stripe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/courtvision/internal/domain/billing"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type CheckoutConfig struct {
	SecretKey string
	PriceID   string
	// APIURL overrides the Stripe API host. Tests point it at a local server.
	APIURL     string
	Timeout    time.Duration
	MaxRetries int64
	Metrics    *metrics.Manager
	Logger     *logging.Logger
}

// CheckoutClient starts hosted subscription checkouts for the premium price.
type CheckoutClient struct {
	sessions session.Client
	priceID  string
	metrics  *metrics.Manager
	logger   *logging.Logger
}

// NewCheckoutClient returns nil when the secret key or price is missing so
// callers can treat checkout as disabled.
func NewCheckoutClient(cfg CheckoutConfig) *CheckoutClient {
	key := strings.TrimSpace(cfg.SecretKey)
	priceID := strings.TrimSpace(cfg.PriceID)
	if key == "" || priceID == "" {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	backendCfg := &stripeapi.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripeapi.Int64(cfg.MaxRetries),
		LeveledLogger:     leveledLogger{logger: logger.Named("stripe")},
	}
	if u := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"); u != "" {
		backendCfg.URL = stripeapi.String(u)
	}

	return &CheckoutClient{
		sessions: session.Client{
			B:   stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendCfg),
			Key: key,
		},
		priceID: priceID,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

func (c *CheckoutClient) CreateCheckoutSession(ctx context.Context, req billing.CheckoutRequest) (billing.CheckoutSession, error) {
	params := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModeSubscription)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{Price: stripeapi.String(c.priceID), Quantity: stripeapi.Int64(1)},
		},
		SuccessURL:        stripeapi.String(req.SuccessURL),
		CancelURL:         stripeapi.String(req.CancelURL),
		ClientReferenceID: stripeapi.String(req.UserID),
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		params.CustomerEmail = stripeapi.String(email)
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	out, err := c.sessions.New(params)
	c.metrics.UpstreamCall("stripe", err)
	if err != nil {
		return billing.CheckoutSession{}, crerr.Wrap(err, "create stripe checkout session")
	}
	if out == nil || out.URL == "" {
		return billing.CheckoutSession{}, crerr.New("stripe checkout session has no url")
	}
	return billing.CheckoutSession{ID: out.ID, URL: out.URL}, nil
}

// leveledLogger routes stripe-go's client logs into the service logger.
type leveledLogger struct {
	logger *logging.Logger
}

func (l leveledLogger) Debugf(format string, v ...any) { l.logger.Debug(fmt.Sprintf(format, v...)) }
func (l leveledLogger) Infof(format string, v ...any)  { l.logger.Debug(fmt.Sprintf(format, v...)) }
func (l leveledLogger) Warnf(format string, v ...any)  { l.logger.Warn(fmt.Sprintf(format, v...)) }
func (l leveledLogger) Errorf(format string, v ...any) { l.logger.Error(fmt.Sprintf(format, v...)) }
