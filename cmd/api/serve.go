package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/kanso-habit-tracker/docs"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/workers"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(rt *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rt.cfg, rt.logger)
		},
	}
}

// server is a fully wired API with its background writer.
type server struct {
	handler http.Handler
	app     *app
	worker  *workers.PersistWorker
	cancel  context.CancelFunc
}

func newServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set to serve the API")
	}

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// The worker outlives the request context so queued writes drain on shutdown.
	workerCtx, cancel := context.WithCancel(context.Background())
	worker := workers.NewPersistWorker(a.store, cfg.PersistQueueSize, logger)
	worker.Start(workerCtx)

	tracker := services.NewTrackerService(a.store, worker,
		services.WithLocation(cfg.Timezone),
		services.WithLogger(logger),
	)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, a.users)

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(services.NewAuthService(a.users), tokens),
		TrackerHandler: adapterHTTP.NewTrackerHandler(tracker),
		HabitHandler:   adapterHTTP.NewHabitHandler(tracker),
		StatsHandler:   adapterHTTP.NewStatsHandler(services.NewStatsService(tracker), cfg.Timezone),
		Tokens:         tokens,
		Redis:          a.redis,
		Logger:         logger,
		RateLimit:      cfg.RateLimit,
		StartTime:      time.Now(),
	}
	if a.db != nil {
		deps.DB = a.db
	}

	return &server{
		handler: adapterHTTP.NewRouter(deps),
		app:     a,
		worker:  worker,
		cancel:  cancel,
	}, nil
}

// Close stops the writer after draining it, then releases connections.
func (s *server) Close() {
	s.cancel()
	s.worker.Wait()
	s.app.Close()
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("habit tracker listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", string(cfg.Backend)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("stop signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
