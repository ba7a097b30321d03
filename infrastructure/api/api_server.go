package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/middleware"
	v1 "github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/v1"
)

// LiftTimeout bounds a single lift request, including every hop.
const LiftTimeout = 10 * time.Minute

// APIServer provides an HTTP API backed by a liftcoords Client.
type APIServer struct {
	client  *liftcoords.Client
	origins []string
	router  chi.Router
	logger  *slog.Logger
}

// NewAPIServer creates an APIServer. origins lists the CORS origins allowed
// to call the API; an empty list disables CORS headers.
func NewAPIServer(client *liftcoords.Client, origins []string) *APIServer {
	return &APIServer{
		client:  client,
		origins: origins,
		logger:  client.Logger(),
	}
}

// MountRoutes wires the health check and v1 routes onto router.
func (a *APIServer) MountRoutes(router chi.Router) {
	c := a.client

	builds := v1.NewBuildsRouter(c)
	lift := v1.NewLiftRouter(c)
	runs := v1.NewRunsRouter(c)

	router.Get("/healthz", a.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(30 * time.Second))
			r.Mount("/builds", builds.BuildRoutes())
			r.Mount("/chains", builds.ChainRoutes())
			r.Mount("/runs", runs.Routes())
		})
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(LiftTimeout))
			r.Mount("/lift", lift.Routes())
		})
	})
}

func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	missing, err := a.client.Missing()
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}
	status := http.StatusOK
	body := map[string]any{"status": "ok"}
	if len(missing) > 0 {
		status = http.StatusServiceUnavailable
		body = map[string]any{"status": "missing chain files", "missing": missing}
	}
	middleware.WriteJSON(w, status, body)
}

// Handler returns a fully wired handler, for tests and custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		srv := NewServer("", a.logger, a.origins)
		a.MountRoutes(srv.Router())
		a.router = srv.Router()
	}
	return a.router
}

// Server returns a Server listening on addr with every route mounted.
// Run it with ListenAndServe and stop it with Shutdown.
func (a *APIServer) Server(addr string) *Server {
	srv := NewServer(addr, a.logger, a.origins)
	a.MountRoutes(srv.Router())
	return srv
}
