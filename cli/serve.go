package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ka2n/ecdemo/config"
	"github.com/ka2n/ecdemo/log"
	"github.com/ka2n/ecdemo/store"
	"github.com/ka2n/ecdemo/web"
	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func runServer(ctx context.Context, cfg config.Config, open bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return failure.Wrap(err, failure.Context{"addr": cfg.Addr()})
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	log.Info("EC Demo Server running", "url", url, "api", url+web.APIPrefix)

	if open {
		browser.Stdout = os.Stderr
		if err := browser.OpenURL(catalogURL(url)); err != nil {
			log.Warn("could not open browser", "error", err)
		}
	}

	return Serve(ctx, ln, web.NewHandler(store.New()))
}

// catalogURL is the page --open shows: the product catalog JSON
func catalogURL(base string) string {
	return base + web.ProductsPath
}

// Serve runs h on ln until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return failure.Wrap(err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return failure.Wrap(err)
		}
		return nil
	})
	return g.Wait()
}
