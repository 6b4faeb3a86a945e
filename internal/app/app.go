package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/courtvision/external/jobqueue"
	"github.com/riskibarqy/courtvision/external/nbastats"
	"github.com/riskibarqy/courtvision/internal/config"
	"github.com/riskibarqy/courtvision/internal/domain/billing"
	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/domain/positionstat"
	"github.com/riskibarqy/courtvision/internal/infrastructure/account/supabase"
	stripebilling "github.com/riskibarqy/courtvision/internal/infrastructure/billing/stripe"
	"github.com/riskibarqy/courtvision/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/courtvision/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/courtvision/internal/interfaces/httpapi"
	"github.com/riskibarqy/courtvision/internal/platform/id"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
	"github.com/riskibarqy/courtvision/internal/platform/resilience"
	"github.com/riskibarqy/courtvision/internal/usecase"
)

// Container holds the wired services shared by the API and the sync CLI.
type Container struct {
	Config  config.Config
	DB      *sqlx.DB
	Metrics *metrics.Manager
	Logger  *logging.Logger

	Catalog  *usecase.CatalogService
	Ranking  *usecase.RankingService
	Impact   *usecase.ImpactService
	Profiles *usecase.ProfileService
	Billing  *usecase.BillingService
	Sync     *usecase.GameLogSyncService

	verifier httpapi.TokenVerifier
}

func New(cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var m *metrics.Manager
	if cfg.MetricsEnabled {
		m = metrics.NewManager(metrics.WithRuntimeCollectors())
	}
	onBreakerChange := func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
		m.BreakerStateChanged(name, string(from), string(to))
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	ids := id.NewUUIDGenerator()

	var (
		statRepo positionstat.Repository = postgres.NewPositionStatRepository(db)
		logRepo  gamelog.Repository      = postgres.NewGameLogRepository(db)
	)
	if cfg.CacheEnabled {
		statRepo = cache.NewPositionStatRepository(statRepo, cfg.CacheMaxEntries, cfg.CacheTTL, m)
		logRepo = cache.NewGameLogRepository(logRepo, cfg.CacheMaxEntries, cfg.CacheTTL, m)
	}
	profileRepo := postgres.NewProfileRepository(db)
	processedRepo := postgres.NewProcessedEventRepository(db)

	statsClient := nbastats.NewClient(nbastats.ClientConfig{
		BaseURL:         cfg.NBAStatsBaseURL,
		UserAgent:       cfg.NBAStatsUserAgent,
		Timeout:         cfg.NBAStatsTimeout,
		MinInterval:     cfg.NBAStatsMinInterval,
		Retry:           cfg.NBAStatsRetry,
		CircuitBreaker:  cfg.NBAStatsCircuit,
		OnBreakerChange: onBreakerChange,
		Metrics:         m,
		Logger:          logger.Named("nbastats"),
	})

	var publisher usecase.JobPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:         cfg.QStashBaseURL,
			Token:           cfg.QStashToken,
			TargetBaseURL:   cfg.QStashTargetBaseURL,
			Retries:         cfg.QStashRetries,
			CronSecret:      cfg.CronSecret,
			CircuitBreaker:  cfg.QStashCircuit,
			OnBreakerChange: onBreakerChange,
			Metrics:         m,
		}, logger.Named("qstash"))
	}

	var checkout billing.CheckoutProvider
	if client := stripebilling.NewCheckoutClient(checkoutConfig(cfg, m, logger)); client != nil {
		checkout = client
	} else {
		logger.Info("stripe checkout disabled", "reason", "STRIPE_SECRET_KEY or STRIPE_PRICE_ID empty")
	}

	var verifier httpapi.TokenVerifier
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		verifier = supabase.NewClient(supabase.ClientConfig{
			BaseURL:         cfg.SupabaseURL,
			APIKey:          cfg.SupabaseAnonKey,
			Timeout:         cfg.SupabaseTimeout,
			CacheTTL:        cfg.SupabaseCacheTTL,
			CircuitBreaker:  cfg.SupabaseCircuit,
			OnBreakerChange: onBreakerChange,
			Metrics:         m,
			Logger:          logger.Named("supabase"),
		})
	} else {
		logger.Warn("supabase auth disabled", "reason", "SUPABASE_URL or SUPABASE_ANON_KEY empty")
	}

	return &Container{
		Config:   cfg,
		DB:       db,
		Metrics:  m,
		Logger:   logger,
		Catalog:  usecase.NewCatalogService(statRepo, logRepo),
		Ranking:  usecase.NewRankingService(statRepo, m, logger),
		Impact:   usecase.NewImpactService(logRepo, m, logger),
		Profiles: usecase.NewProfileService(profileRepo, logger),
		Billing: usecase.NewBillingService(
			checkout,
			stripebilling.NewWebhookVerifier(cfg.StripeWebhookSecret, 0),
			profileRepo,
			processedRepo,
			ids,
			usecase.BillingConfig{
				DefaultOrigin: cfg.AppBaseURL,
				DedupeEntries: cfg.WebhookDedupeEntries,
				DedupeTTL:     cfg.WebhookDedupeTTL,
			},
			m,
			logger,
		),
		Sync: usecase.NewGameLogSyncService(
			logRepo,
			statsClient,
			publisher,
			ids,
			usecase.GameLogSyncConfig{
				Season:       cfg.SyncSeason,
				DefaultStart: cfg.SyncDefaultStart,
				BatchSize:    cfg.SyncBatchSize,
				MaxWorkers:   cfg.SyncMaxWorkers,
				QueueStagger: cfg.SyncQueueStagger,
			},
			m,
			logger,
		),
		verifier: verifier,
	}, nil
}

func (c *Container) NewHTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Catalog:   c.Catalog,
		Ranking:   c.Ranking,
		Impact:    c.Impact,
		Profiles:  c.Profiles,
		Billing:   c.Billing,
		Sync:      c.Sync,
		SyncQueue: c.Config.QStashEnabled,
	}, c.Logger)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handler:            handler,
		Verifier:           c.verifier,
		Premium:            c.Profiles,
		Logger:             c.Logger,
		Metrics:            c.Metrics,
		CORSAllowedOrigins: c.Config.CORSAllowedOrigins,
		CronSecret:         c.Config.CronSecret,
	})

	server := &http.Server{
		Addr:         c.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  c.Config.ReadTimeout,
		WriteTimeout: c.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func checkoutConfig(cfg config.Config, m *metrics.Manager, logger *logging.Logger) stripebilling.CheckoutConfig {
	return stripebilling.CheckoutConfig{
		SecretKey:  cfg.StripeSecretKey,
		PriceID:    cfg.StripePriceID,
		Timeout:    cfg.StripeTimeout,
		MaxRetries: int64(cfg.StripeMaxRetries),
		Metrics:    m,
		Logger:     logger,
	}
}
