// Package v1 provides the v1 API routes.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/middleware"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/v1/dto"
)

// BuildsRouter serves the supported builds and the chain registry.
type BuildsRouter struct {
	client *liftcoords.Client
	logger *slog.Logger
}

// NewBuildsRouter creates a BuildsRouter.
func NewBuildsRouter(client *liftcoords.Client) *BuildsRouter {
	return &BuildsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// BuildRoutes returns the router mounted at /builds.
func (r *BuildsRouter) BuildRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.ListBuilds)
	return router
}

// ChainRoutes returns the router mounted at /chains.
func (r *BuildsRouter) ChainRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.ListPairs)
	router.Get("/{source}/{target}", r.GetChains)
	return router
}

// ListBuilds handles GET /api/v1/builds.
func (r *BuildsRouter) ListBuilds(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, dto.NewBuildListResponse(genome.Builds()))
}

// ListPairs handles GET /api/v1/chains.
func (r *BuildsRouter) ListPairs(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, dto.PairListResponse{Data: r.client.Chains().Pairs()})
}

// GetChains handles GET /api/v1/chains/{source}/{target}.
func (r *BuildsRouter) GetChains(w http.ResponseWriter, req *http.Request) {
	source := chi.URLParam(req, "source")
	target := chi.URLParam(req, "target")

	chains, err := r.client.Chains().Resolve(source, target)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ChainResponse{
		Source: source,
		Target: target,
		Chains: chains,
	})
}
