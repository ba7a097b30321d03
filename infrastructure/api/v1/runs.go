package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/middleware"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/v1/dto"
)

// DefaultRunLimit is the number of runs listed when no limit is given.
const DefaultRunLimit = 20

// MaxRunLimit caps the limit query parameter.
const MaxRunLimit = 500

// RunsRouter serves the lift run history.
type RunsRouter struct {
	client *liftcoords.Client
	logger *slog.Logger
}

// NewRunsRouter creates a RunsRouter.
func NewRunsRouter(client *liftcoords.Client) *RunsRouter {
	return &RunsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the router mounted at /runs.
func (r *RunsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.List)
	router.Get("/{id}", r.Get)
	return router
}

// List handles GET /api/v1/runs?limit=N.
func (r *RunsRouter) List(w http.ResponseWriter, req *http.Request) {
	limit := DefaultRunLimit
	if s := req.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "limit must be a positive integer", err), r.logger)
			return
		}
		limit = min(n, MaxRunLimit)
	}

	runs, err := r.client.Runs(req.Context(), limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		data = append(data, dto.NewRunResponse(run))
	}
	middleware.WriteJSON(w, http.StatusOK, dto.RunListResponse{Data: data})
}

// Get handles GET /api/v1/runs/{id}.
func (r *RunsRouter) Get(w http.ResponseWriter, req *http.Request) {
	run, err := r.client.Run(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.NewRunResponse(run))
}
