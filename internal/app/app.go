package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/lettergreep/internal/adapter/postgres"
	lexiconrepo "github.com/heartmarshall/lettergreep/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/lettergreep/internal/auth"
	"github.com/heartmarshall/lettergreep/internal/config"
	"github.com/heartmarshall/lettergreep/internal/estimator"
	"github.com/heartmarshall/lettergreep/internal/syllable"
	"github.com/heartmarshall/lettergreep/internal/transport/middleware"
	"github.com/heartmarshall/lettergreep/internal/transport/rest"
)

// App holds the wired server and the resources it must release.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	handler http.Handler
	closers []func()
}

// Run is the application entry point. It loads configuration, builds the
// lexicon and serves HTTP until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("lexicon_source", cfg.Lexicon.Source),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

// New connects to the optional database, loads the lexicon and wires the
// HTTP handler.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: logger}

	var repo *lexiconrepo.Repo
	if cfg.Database.DSN != "" {
		if cfg.Database.MigrateOnStart {
			applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
			if err != nil {
				return nil, err
			}
			logger.Info("migrations applied", slog.Int("count", applied))
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		repo = lexiconrepo.New(pool)
	}

	var store lexiconStore
	if repo != nil {
		store = repo
	}
	lex, err := LoadLexicon(ctx, cfg.Lexicon, store, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	counter := syllable.NewCounter(lex, estimator.Dutch{},
		syllable.WithCache(cfg.Engine.CacheSize),
		syllable.WithWorkers(cfg.Engine.Workers),
	)

	deps := rest.RouterDeps{
		Logger:    logger,
		Syllables: rest.NewSyllableHandler(counter, cfg.Server.MaxBodyBytes, logger),
	}
	if repo != nil {
		deps.Health = rest.NewHealthHandler(lex, repo, BuildVersion())
	} else {
		deps.Health = rest.NewHealthHandler(lex, nil, BuildVersion())
	}

	if cfg.CORS.Enabled() {
		deps.CORS = middleware.CORS(cfg.CORS)
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		a.closers = append(a.closers, rl.Stop)
		deps.RateLimit = rl.Limit(cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Auth.Enabled() {
		tm := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
		deps.Auth = middleware.Auth(tm)
	} else {
		logger.Warn("auth disabled: API is open to anonymous clients")
	}

	a.handler = rest.NewRouter(deps)
	return a, nil
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close releases the database pool and background workers.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Serve listens on the configured address until ctx is canceled, then drains
// in-flight requests within the shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down", slog.Duration("timeout", a.cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}
