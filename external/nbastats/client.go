package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/courtvision/internal/domain/team"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
	"github.com/riskibarqy/courtvision/internal/platform/resilience"
	"github.com/riskibarqy/courtvision/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL     = "https://stats.nba.com/stats"
	defaultUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	defaultTimeout     = 20 * time.Second
	defaultMinInterval = 500 * time.Millisecond
	defaultSeasonType  = "Regular Season"
	maxBodySize        = 8 << 20
)

var errStatsTransient = crerr.New("nba stats transient failure")

type ClientConfig struct {
	BaseURL         string
	UserAgent       string
	SeasonType      string
	Timeout         time.Duration
	MinInterval     time.Duration
	Retry           resilience.RetryConfig
	CircuitBreaker  resilience.CircuitBreakerConfig
	OnBreakerChange resilience.StateChangeFunc
	Metrics         *metrics.Manager
	Logger          *logging.Logger
}

// Client reads team game logs from the public NBA stats API. Requests are
// spaced at least MinInterval apart across all callers.
type Client struct {
	http        *fasthttp.Client
	baseURL     string
	userAgent   string
	seasonType  string
	timeout     time.Duration
	minInterval time.Duration
	retry       resilience.RetryConfig
	breaker     *resilience.CircuitBreaker
	metrics     *metrics.Manager
	logger      *logging.Logger

	mu       sync.Mutex
	lastCall time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	seasonType := strings.TrimSpace(cfg.SeasonType)
	if seasonType == "" {
		seasonType = defaultSeasonType
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	interval := cfg.MinInterval
	if interval < 0 {
		interval = 0
	} else if interval == 0 {
		interval = defaultMinInterval
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker("nbastats", cfg.CircuitBreaker, cfg.OnBreakerChange)
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "courtvision-sync",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodySize,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		seasonType:  seasonType,
		timeout:     timeout,
		minInterval: interval,
		retry:       cfg.Retry,
		breaker:     breaker,
		metrics:     cfg.Metrics,
		logger:      logger,
	}
}

// FetchTeamGameLogs returns every player line the team logged in season.
func (c *Client) FetchTeamGameLogs(ctx context.Context, item team.Team, season string) ([]usecase.ExternalGameLog, error) {
	if item.ID <= 0 {
		return nil, fmt.Errorf("%w: team %q has no stats id", usecase.ErrInvalidInput, item.Name)
	}
	season = strings.TrimSpace(season)
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", usecase.ErrInvalidInput)
	}

	values := url.Values{}
	values.Set("TeamID", strconv.FormatInt(item.ID, 10))
	values.Set("Season", season)
	values.Set("SeasonType", c.seasonType)
	fullURL := c.baseURL + "/playergamelogs?" + values.Encode()

	var body []byte
	err := resilience.Retry(ctx, c.retry, func(ctx context.Context) error {
		raw, err := c.get(ctx, fullURL)
		if err != nil {
			if !crerr.Is(err, errStatsTransient) {
				return resilience.Permanent(err)
			}
			c.logger.WarnContext(ctx, "nba stats request failed", "team", item.Name, "error", err)
			return err
		}
		body = raw
		return nil
	})
	c.metrics.UpstreamCall("nbastats", err)
	if err != nil {
		return nil, fmt.Errorf("fetch team game logs team=%s season=%s: %w", item.Name, season, err)
	}

	var envelope resultEnvelope
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode team game logs")
	}
	if len(envelope.ResultSets) == 0 {
		return nil, nil
	}

	lines, skipped := parseGameLogs(envelope.ResultSets[0], item.Name)
	if skipped > 0 {
		c.logger.DebugContext(ctx, "skipped malformed game log rows", "team", item.Name, "skipped", skipped)
	}
	return lines, nil
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		return nil, fmt.Errorf("%w: nba stats is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	raw, err := c.do(req, resp, deadline)
	c.recordResult(err)
	return raw, err
}

func (c *Client) do(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) ([]byte, error) {
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send nba stats request"), errStatsTransient)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return append([]byte(nil), resp.Body()...), nil
	case status == fasthttp.StatusTooManyRequests || status == fasthttp.StatusRequestTimeout || status >= 500:
		return nil, crerr.Mark(crerr.Newf("nba stats status=%d", status), errStatsTransient)
	default:
		return nil, crerr.Newf("nba stats status=%d body=%s", status, abbreviate(resp.Body()))
	}
}

// wait blocks until MinInterval has passed since the previous request.
func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	next := c.lastCall.Add(c.minInterval)
	now := time.Now()
	if next.Before(now) {
		next = now
	}
	c.lastCall = next
	c.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) recordResult(err error) {
	switch {
	case err == nil:
		c.breaker.RecordSuccess()
	case crerr.Is(err, errStatsTransient):
		c.breaker.RecordFailure()
	default:
		c.breaker.RecordSuccess()
	}
}

func abbreviate(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
