package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/seedling/internal/admin"
	"github.com/osse101/seedling/internal/config"
	"github.com/osse101/seedling/internal/handler"
	"github.com/osse101/seedling/internal/message"
	"github.com/osse101/seedling/internal/metrics"
	"github.com/osse101/seedling/internal/sse"
	"github.com/osse101/seedling/internal/tree"
)

type Server struct {
	httpServer *http.Server
}

// NewServer wires the router. store backs /readyz; hub serves /api/events.
func NewServer(cfg *config.Config, store handler.StoreStatus, treeService tree.Service, messageService message.Service, hub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg, store, treeService, messageService, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the full handler tree. Exposed for tests.
func NewRouter(cfg *config.Config, store handler.StoreStatus, treeService tree.Service, messageService message.Service, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))
	r.Get("/version", handler.HandleVersion(cfg.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	treeHandler := handler.NewTreeHandler(treeService)
	messageHandler := handler.NewMessageHandler(messageService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", treeHandler.GetTree)
		r.Get("/events", sse.Handler(hub))
		r.Get("/messages", messageHandler.List)
		r.Post("/messages", messageHandler.Post)
		r.Post("/water", treeHandler.Water)

		// Admin-gated routes
		r.Group(func(r chi.Router) {
			r.Use(AdminFailureMiddleware(cfg.TrustedProxies, detector))
			r.Post("/harvest", treeHandler.Harvest)
			r.Post("/tree/reset", treeHandler.Reset)
			r.Delete("/messages", messageHandler.DeleteAll)
			r.Delete("/messages/{id}", messageHandler.Delete)
		})
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", admin.StaticHandler(os.DirFS(cfg.StaticDir)))
	} else {
		slog.Debug(LogMsgStaticDisabled)
	}

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderAdminPassword},
		MaxAge:         CORSMaxAge,
	}
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
