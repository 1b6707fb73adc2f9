package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/config"
	"yatube/app/logging"
	"yatube/app/routes"
	"yatube/app/views"
)

const shutdownTimeout = 10 * time.Second

// RunAppServer starts the blog and blocks until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	cfg, err := config.Load("serve", args, os.Stderr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 2
	}
	log, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		return 1
	}
	return 0
}

// Run serves the blog until ctx is cancelled, then drains in-flight
// requests and closes the stores.
func Run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	handler, pageCache, err := newHandler(cfg, b, log)
	if err != nil {
		return err
	}
	defer pageCache.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, log)
}

// newHandler assembles the router over an opened backend.
func newHandler(cfg *config.Config, b *backend, log logging.Logger) (http.Handler, *cache.PageCache, error) {
	generated, err := cfg.EnsureSecret()
	if err != nil {
		return nil, nil, err
	}
	if generated {
		log.Warn(context.Background(), "no secret key configured, using a random one; sessions end on restart")
	}

	pageCache, err := cache.New(cfg.CacheMaxCost, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	renderer, err := views.New()
	if err != nil {
		pageCache.Close()
		return nil, nil, err
	}

	router := routes.SetupRoutes(routes.Deps{
		Store:    b.store,
		Media:    b.media,
		Cache:    pageCache,
		Sessions: auth.NewSessionManager(cfg.SecretKey, cfg.SessionTTL, b.store.Users),
		Renderer: renderer,
		Log:      log,
		PageSize: cfg.PageSize,
	})
	return router, pageCache, nil
}

// serve runs srv until it fails or ctx is done.
func serve(ctx context.Context, srv *http.Server, log logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		log.Info(ctx, "starting blog service", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}
