package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	pgRepo "newsstash/internal/infra/adapter/persistence/postgres"
	"newsstash/internal/infra/chat"
	"newsstash/internal/infra/db"
	"newsstash/internal/infra/identity/gotrue"
	"newsstash/internal/infra/identity/localjwt"
	"newsstash/internal/pkg/config"
	"newsstash/internal/resilience/circuitbreaker"

	"newsstash/internal/identity"
	"newsstash/internal/observability/logging"
	artUC "newsstash/internal/usecase/article"

	hhttp "newsstash/internal/handler/http"
	harticle "newsstash/internal/handler/http/article"
	hauth "newsstash/internal/handler/http/auth"
	"newsstash/internal/handler/http/requestid"
)

const shutdownGrace = 10 * time.Second

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	store := pgRepo.NewArticleStore(database, circuitbreaker.New(circuitbreaker.StoreConfig()))
	svc := &artUC.Service{
		Store:   store,
		Logger:  logger,
		Timeout: cfg.APITimeout,
	}

	provider := identityProvider(cfg, logger)
	chatProvider := chatProvider(cfg, logger)

	limiter := hhttp.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	handler := buildHandler(cfg, logger, database, svc, provider, chatProvider, limiter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		err := limiter.CleanupLoop(groupCtx, 10*time.Minute)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server terminated", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func initLogger() *slog.Logger {
	logger := logging.New()
	slog.SetDefault(logger)
	return logger
}

// identityProvider selects the token resolver by AUTH_PROVIDER.
func identityProvider(cfg *config.Config, logger *slog.Logger) identity.Provider {
	switch cfg.AuthProvider {
	case "jwt":
		logger.Info("auth: local jwt verification")
		return localjwt.New(cfg.SupabaseJWTSecret)
	default:
		logger.Info("auth: remote token lookup", slog.String("url", cfg.SupabaseURL))
		return gotrue.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	}
}

// chatProvider selects the completion backend by CHAT_PROVIDER.
func chatProvider(cfg *config.Config, logger *slog.Logger) chat.Provider {
	switch cfg.ChatProvider {
	case "anthropic":
		return chat.NewClaude(cfg.ChatAPIKey, cfg.ChatModel)
	default:
		return chat.NewOpenAI(cfg.ChatAPIKey, cfg.ChatModel, cfg.ChatBaseURL)
	}
}

// buildHandler assembles the route table and the middleware chain. The
// request flows: request id, rate limit, recover, logging, body limit,
// metrics, edge timeout, then the mux.
func buildHandler(
	cfg *config.Config,
	logger *slog.Logger,
	database *sql.DB,
	svc *artUC.Service,
	provider identity.Provider,
	chatProvider chat.Provider,
	limiter *hhttp.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET    /health", &hhttp.HealthHandler{DB: database, Version: version()})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())
	mux.Handle("GET    /aichat", hhttp.AIChatHandler{Provider: chatProvider})

	harticle.Register(mux, svc, hauth.Guard(provider, logger))

	return hhttp.Chain(mux,
		requestid.Middleware,
		limiter.Limit,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.BodyLimit),
		hhttp.MetricsMiddleware,
		hhttp.Timeout(cfg.APITimeout+time.Second),
	)
}

func version() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
