package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/minitweet/twitter-api/internal/api"
	"github.com/minitweet/twitter-api/internal/api/handler"
	"github.com/minitweet/twitter-api/internal/core/ports"
	"github.com/minitweet/twitter-api/internal/core/service"
	"github.com/minitweet/twitter-api/internal/infrastructure/auth"
	"github.com/minitweet/twitter-api/internal/infrastructure/config"
	"github.com/minitweet/twitter-api/internal/infrastructure/db/memory"
	mongostore "github.com/minitweet/twitter-api/internal/infrastructure/db/mongo"
	"github.com/minitweet/twitter-api/internal/infrastructure/db/postgres"
	redisstore "github.com/minitweet/twitter-api/internal/infrastructure/db/redis"
	"github.com/minitweet/twitter-api/pkg/logger"
)

// @title           Twitter API
// @version         1.0
// @description     Users sign up, log in with a bearer token and post short messages.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("application error")
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}

// stores bundles the repositories for the selected driver and the closers
// to run on shutdown.
type stores struct {
	users   ports.UserRepository
	tweets  ports.TweetRepository
	pinger  handler.Pinger
	closers []func(context.Context) error
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "twitter-api",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting application")

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { closeAll(st.closers, cfg, log) }()

	tokens, err := newTokenIssuer(cfg.Auth)
	if err != nil {
		return err
	}

	health := map[string]handler.Pinger{cfg.StoreDriver: st.pinger}

	var idempotency ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		st.closers = append(st.closers, func(context.Context) error { return rdb.Close() })
		idempotency = redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		health["redis"] = redisstore.NewPinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency store enabled")
	}

	authService := service.NewAuthService(st.users, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, log)
	userService := service.NewUserService(st.users, log)
	tweetService := service.NewTweetService(st.tweets, idempotency, log)

	e := api.NewRouter(api.Dependencies{
		Auth:    authService,
		Users:   userService,
		Tweets:  tweetService,
		Health:  health,
		Logger:  log,
		Swagger: cfg.IsDevelopment(),
	})

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")
		serverErrors <- e.Start(":" + cfg.Port)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown started")

		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			_ = e.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info().Msg("shutdown complete")
	}
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &stores{
			users:   postgres.NewUserRepository(db),
			tweets:  postgres.NewTweetRepository(db),
			pinger:  postgres.NewPinger(db),
			closers: []func(context.Context) error{func(context.Context) error { return db.Close() }},
		}, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users:   mongostore.NewUserRepository(db),
			tweets:  mongostore.NewTweetRepository(db),
			pinger:  mongostore.NewPinger(client),
			closers: []func(context.Context) error{client.Disconnect},
		}, nil

	default:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &stores{users: store.Users(), tweets: store.Tweets(), pinger: store}, nil
	}
}

func newTokenIssuer(cfg config.AuthConfig) (ports.TokenIssuer, error) {
	if cfg.TokenFormat == config.TokenPaseto {
		return auth.NewPasetoIssuer([]byte(cfg.PasetoKey), cfg.TokenTTL)
	}
	return auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
}

func closeAll(closers []func(context.Context) error, cfg *config.Config, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("failed to close resource")
		}
	}
}
