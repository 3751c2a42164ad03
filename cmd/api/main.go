package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/streamtv-site/internal/config"
	"github.com/xavierca1/streamtv-site/internal/entity"
	"github.com/xavierca1/streamtv-site/internal/infra/cache"
	"github.com/xavierca1/streamtv-site/internal/infra/database"
	"github.com/xavierca1/streamtv-site/internal/infra/http/handlers"
	"github.com/xavierca1/streamtv-site/internal/infra/http/middleware"
	"github.com/xavierca1/streamtv-site/internal/infra/integration/sanity"
	"github.com/xavierca1/streamtv-site/internal/infra/queue"
	"github.com/xavierca1/streamtv-site/internal/infra/worker"
	"github.com/xavierca1/streamtv-site/internal/usecase"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run monta as dependências e serve HTTP até ctx ser cancelado.
// Os defers fecham as conexões antes de qualquer saída do processo.
func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	// 1. Conteúdo (Sanity)
	cms := sanity.NewClient(sanity.Config{
		ProjectID:  cfg.SanityProjectID,
		Dataset:    cfg.SanityDataset,
		Token:      cfg.SanityAPIToken,
		APIVersion: cfg.SanityAPIVersion,
		UseCDN:     cfg.SanityUseCDN,
	})
	if !cms.Configured() {
		logger.Warn("SANITY_PROJECT_ID not set, content reads and lead storage will fail")
	}

	// 2. Repositório de leads
	var (
		leadRepo entity.LeadRepositoryInterface = sanity.NewLeadRepository(cms)
		db       *sql.DB
	)
	if cfg.LeadStore == "postgres" {
		var err error
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres unavailable: %w", err)
		}
		defer db.Close()

		if err := database.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("postgres schema setup: %w", err)
		}
		leadRepo = database.NewLeadRepository(db)
		logger.Info("leads archived in postgres")
	}

	// 3. Cache de páginas
	var (
		pageCache  usecase.PageCache
		redisCache *cache.RedisPageCache
	)
	if cfg.RedisAddr != "" {
		redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisClient.Close()
		redisCache = cache.NewRedisPageCache(redisClient, "")
		pageCache = redisCache
		logger.Info("page cache backed by redis", "addr", cfg.RedisAddr)
	} else {
		memCache := cache.NewMemoryPageCache()
		go worker.NewCacheSweeper(memCache, time.Minute, logger).Start(ctx)
		pageCache = memCache
	}

	// 4. Invalidação entre instâncias (RabbitMQ)
	var (
		invalidator usecase.Invalidator = pageCache
		rabbit      *queue.RabbitMQ
	)
	if cfg.RabbitMQURL != "" {
		var err error
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("rabbitmq unavailable: %w", err)
		}
		defer rabbit.Close()

		origin := instanceID()
		queueName, err := rabbit.DeclareInstanceQueue()
		if err != nil {
			return fmt.Errorf("rabbitmq queue setup: %w", err)
		}

		invalidator = queue.NewInvalidationBroadcaster(pageCache, queue.NewProducer(rabbit.Ch), origin, logger)
		consumer := queue.NewWorker(rabbit.Ch, pageCache, origin, logger)
		go func() {
			if err := consumer.Start(ctx, queueName); err != nil {
				logger.Error("invalidation worker failed", "error", err)
			}
		}()
	}

	// 5. UseCases
	secrets := config.EnvSecrets{}
	content := usecase.NewContentService(sanity.NewContentRepository(cms), pageCache, cfg.CacheTTL, logger)
	submitUC := usecase.NewSubmitSubscriptionUseCase(leadRepo, content, secrets, logger)
	revalidateUC := usecase.NewRevalidateUseCase(invalidator, logger)
	newsletterUC := usecase.NewSubscribeNewsletterUseCase(sanity.NewNewsletterRepository(cms), logger)

	// 6. Handlers
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.RunCleanup(ctx, time.Minute)

	router := newRouter(routerDeps{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
		Leads:       handlers.NewLeadHandler(submitUC, logger),
		Revalidate:  handlers.NewRevalidateHandler(revalidateUC, secrets, logger),
		Content:     handlers.NewContentHandler(content, logger),
		Newsletter:  handlers.NewNewsletterHandler(newsletterUC),
		Health:      handlers.NewHealthHandler(version, dependencies(cms, db, redisCache, rabbit)...),
	})

	// 7. Servidor
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", srv.Addr, "env", cfg.Env, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// instanceID identifica as invalidações publicadas para que a instância ignore as próprias.
func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "streamtv"
	}
	return fmt.Sprintf("%s-%s", host, uuid.NewString())
}

func dependencies(cms *sanity.Client, db *sql.DB, redisCache *cache.RedisPageCache, rabbit *queue.RabbitMQ) []handlers.Dependency {
	deps := []handlers.Dependency{
		{Name: "sanity", Configured: cms.Configured()},
		{Name: "postgres", Configured: db != nil},
		{Name: "redis", Configured: redisCache != nil},
		{Name: "rabbitmq", Configured: rabbit != nil},
	}
	if db != nil {
		deps[1].Ping = db.PingContext
	}
	if redisCache != nil {
		deps[2].Ping = redisCache.Ping
	}
	if rabbit != nil {
		deps[3].Ping = func(context.Context) error {
			if !rabbit.Healthy() {
				return errors.New("connection closed")
			}
			return nil
		}
	}
	return deps
}
