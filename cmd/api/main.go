package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"attestflow/assistant"
	"attestflow/auth"
	"attestflow/cases"
	"attestflow/config"
	"attestflow/docstore"
	"attestflow/i18n"
	"attestflow/logger"
	"attestflow/metrics"
	"attestflow/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap document store", zap.Error(err))
	}
	defer cleanup()

	translate := i18n.Default()
	m := metrics.New(prometheus.DefaultRegisterer)

	caseService := cases.NewService(store, log, translate)
	wizardManager := wizard.NewManager(caseService, log)
	authService := auth.NewService(store, cfg.JWT.Secret, cfg.JWT.Expiration).
		WithLoginDelay(cfg.Simulated.LoginDelay)
	assistantService := assistant.NewService(translate, cfg.Simulated.AssistantDelay, log)

	server := &Server{
		cases:     caseService,
		wizard:    wizardManager,
		auth:      authService,
		assistant: assistantService,
		translate: translate,
		metrics:   m,
		log:       log,
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("api listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

// buildStore selects the document store backend: Postgres when DATABASE_URL
// is set, Redis when REDIS_ADDR is set, otherwise in-process memory.
func buildStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (docstore.Store, func(), error) {
	if cfg.Database.URL != "" {
		pool, err := docstore.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		store, err := docstore.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("using postgres document store")
		return store, pool.Close, nil
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		log.Info("using redis document store", zap.String("addr", cfg.Redis.Addr))
		return docstore.NewRedisStore(client), func() { _ = client.Close() }, nil
	}

	log.Info("using in-memory document store")
	return docstore.NewMemoryStore(), func() {}, nil
}
