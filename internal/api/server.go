package api

import (
	"net/http"

	"github.com/futig/product-search/internal/api/console"
	"github.com/futig/product-search/internal/api/docs"
	"github.com/futig/product-search/internal/api/middleware"
	"github.com/futig/product-search/internal/api/product"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router. No request timeout is
// set: uploads and index rebuilds run for as long as the backend needs.
func SetupRouter(consoleHandler *console.Handler, productHandler *product.Handler, corsOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)      // Recover from panics
	r.Use(chimiddleware.RequestID)      // Add request ID
	r.Use(middleware.Logger(logger))    // Log requests
	r.Use(middleware.CORS(corsOrigins)) // Handle CORS

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	console.RegisterRoutes(r, consoleHandler)
	product.RegisterRoutes(r, productHandler)

	return r
}
