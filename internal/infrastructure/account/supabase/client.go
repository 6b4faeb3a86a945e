package supabase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/courtvision/internal/domain/user"
	"github.com/riskibarqy/courtvision/internal/platform/cache"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
	"github.com/riskibarqy/courtvision/internal/platform/resilience"
	"github.com/riskibarqy/courtvision/internal/usecase"
)

const (
	userPath               = "/auth/v1/user"
	defaultTimeout         = 5 * time.Second
	defaultCacheTTL        = 60 * time.Second
	defaultCacheMaxEntries = 10_000
)

var errSupabaseTransient = crerr.New("supabase transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
	CircuitBreaker  resilience.CircuitBreakerConfig
	OnBreakerChange resilience.StateChangeFunc
	Metrics         *metrics.Manager
	Logger          *logging.Logger
}

// Client resolves Supabase access tokens to principals. Verified tokens are
// cached by hash for a short TTL.
type Client struct {
	httpClient *http.Client
	userURL    string
	apiKey     string
	cache      *cache.Store[user.Principal]
	breaker    *resilience.CircuitBreaker
	metrics    *metrics.Manager
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	maxEntries := cfg.CacheMaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheMaxEntries
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker("supabase", cfg.CircuitBreaker, cfg.OnBreakerChange)
	}

	return &Client{
		httpClient: httpClient,
		userURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + userPath,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		cache:      cache.NewStore[user.Principal](maxEntries, ttl),
		breaker:    breaker,
		metrics:    cfg.Metrics,
		logger:     logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if principal, ok := c.cache.Get(ctx, key); ok {
		c.metrics.CacheLookup("principal", true)
		return principal, nil
	}
	c.metrics.CacheLookup("principal", false)

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "supabase circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: auth provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	principal, err := c.fetchUser(ctx, token)
	c.recordResult(err)
	c.metrics.UpstreamCall("supabase", err)
	if err != nil {
		if crerr.Is(err, errSupabaseTransient) {
			c.logger.WarnContext(ctx, "supabase token verification failed", "error", err)
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	c.cache.Set(ctx, key, principal)
	return principal, nil
}

func (c *Client) fetchUser(ctx context.Context, token string) (user.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create supabase user request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "request supabase user"), errSupabaseTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "read supabase user response"), errSupabaseTransient)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: invalid or expired token", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return user.Principal{}, crerr.Mark(crerr.Newf("supabase user status=%d", resp.StatusCode), errSupabaseTransient)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, fmt.Errorf("%w: supabase user status=%d", usecase.ErrUnauthorized, resp.StatusCode)
	}

	var decoded userResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode supabase user response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: strings.TrimSpace(decoded.ID),
		Email:  strings.TrimSpace(decoded.Email),
	}, nil
}

func (c *Client) recordResult(err error) {
	switch {
	case err == nil:
		c.breaker.RecordSuccess()
	case crerr.Is(err, errSupabaseTransient):
		c.breaker.RecordFailure()
	default:
		c.breaker.RecordSuccess()
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
