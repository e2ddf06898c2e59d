package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/haunguyen/shopfront/internal/handler"
	"github.com/haunguyen/shopfront/internal/identity"
	"github.com/haunguyen/shopfront/internal/localcart"
	"github.com/haunguyen/shopfront/internal/shopapi"
	"github.com/haunguyen/shopfront/internal/shopper"
	"github.com/haunguyen/shopfront/internal/storage/file"
	"github.com/haunguyen/shopfront/pkg/health"
	"github.com/haunguyen/shopfront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the gateway HTTP server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, _ *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("data_dir", cfg.DataDir),
	)

	// Durable per-shopper storage: guest cart and session.
	store, err := file.New(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open data dir")
	}
	session := identity.NewSession(store)
	local := localcart.New(store)

	// Remote shop API client, shared by cart, wishlist, and profile calls.
	api := shopapi.NewClient(cfg.ShopAPIURL, session, cfg.APITimeout)

	svc := shopper.NewService(session, local, api, api, api, shopper.NewLogNotifier(lg))

	// Health checks: local storage must stay writable, the shop API
	// reachable.
	healthSvc := health.New()
	healthSvc.AddReadiness("storage", time.Second, func(_ context.Context) error {
		return store.Ping()
	})
	healthSvc.AddReadiness("shop-api", 5*time.Second, api.Ping)
	healthSvc.AddLiveness("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 15*time.Second)
	healthSvc.SetReady(true)

	r := chi.NewRouter()
	r.Use(
		httpmiddleware.Recovery(),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.Origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(lg),
		httpmiddleware.LogRequests(),
	)
	r.Get("/livez", healthSvc.LiveEndpoint)
	r.Get("/readyz", healthSvc.ReadyEndpoint)
	handler.New(svc, session).Routes(r)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler:           r,
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Gateway listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
