package web

import (
	"net/http"
	"time"

	"github.com/ka2n/ecdemo/store"
)

// APIPrefix is where the storefront's integration endpoints live
const APIPrefix = "/api/figma"

// ProductsPath serves the product catalog
const ProductsPath = "/api/products"

// App binds the HTTP handlers to a store. It owns no state of its own.
type App struct {
	store *store.Store
	now   func() time.Time
}

// Option configures an App
type Option func(*App)

// WithClock replaces the clock used for status timestamps
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// NewApp creates the HTTP adapter over st
func NewApp(st *store.Store, opts ...Option) *App {
	a := &App{store: st, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+APIPrefix+"/status", app.statusHandler)
	mux.HandleFunc("GET "+APIPrefix+"/design-tokens", app.getDesignTokensHandler)
	mux.HandleFunc("POST "+APIPrefix+"/design-tokens", app.postDesignTokensHandler)
	mux.HandleFunc("POST "+APIPrefix+"/sync", app.syncCartHandler)
	mux.HandleFunc("POST "+APIPrefix+"/log", app.appendLogHandler)
	mux.HandleFunc("GET "+APIPrefix+"/logs", app.getLogsHandler)
	mux.HandleFunc("GET "+APIPrefix+"/cart", app.getCartHandler)
	mux.HandleFunc("GET "+ProductsPath, app.getProductsHandler)
	return WithRequestID(WithLogging(mux))
}

// NewHandler is NewRouter(NewApp(st, opts...))
func NewHandler(st *store.Store, opts ...Option) http.Handler {
	return NewRouter(NewApp(st, opts...))
}
