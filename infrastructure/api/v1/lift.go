package v1

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/middleware"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/v1/dto"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/tabular"
)

// MaxLiftBody caps the size of an uploaded table.
const MaxLiftBody = 64 << 20

// columnParams maps query parameters to the semantic column they pin.
var columnParams = map[string]string{
	"chrom_col": table.Chrom,
	"start_col": table.Start,
	"end_col":   table.End,
	"build_col": table.Build,
}

// LiftRouter converts uploaded tables between builds.
type LiftRouter struct {
	client *liftcoords.Client
	logger *slog.Logger
}

// NewLiftRouter creates a LiftRouter.
func NewLiftRouter(client *liftcoords.Client) *LiftRouter {
	return &LiftRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the router mounted at /lift.
func (r *LiftRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Lift)
	return router
}

// Lift handles POST /api/v1/lift.
//
// The body is a delimited table with a header row, tab-separated unless the
// content type is text/csv. Query parameters: source, target, keep_orig,
// build_label, and chrom_col/start_col/end_col/build_col to pin columns.
func (r *LiftRouter) Lift(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	query := req.URL.Query()

	opts, err := liftOptions(query.Get("keep_orig"), query.Get("build_label"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	columns := make(map[string]string)
	for param, semantic := range columnParams {
		if v := query.Get(param); v != "" {
			columns[semantic] = v
		}
	}
	if len(columns) > 0 {
		opts = append(opts, liftcoords.WithColumns(columns))
	}

	body := http.MaxBytesReader(w, req.Body, MaxLiftBody)
	tbl, err := tabular.Read(body, bodyDelimiter(req))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = middleware.NewAPIError(http.StatusRequestEntityTooLarge, "table exceeds upload limit", err)
		}
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	result, err := r.client.LiftOver(ctx, tbl, query.Get("source"), query.Get("target"), opts...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.LiftResponse{
		RunID:    result.RunID,
		Chains:   result.Chains,
		Lifted:   dto.NewTableResponse(result.Lifted),
		Unlifted: dto.NewTableResponse(result.Unlifted),
	})
}

func liftOptions(keepOrig, label string) ([]liftcoords.LiftOption, error) {
	var opts []liftcoords.LiftOption
	if keepOrig != "" {
		keep, err := strconv.ParseBool(keepOrig)
		if err != nil {
			return nil, middleware.NewAPIError(http.StatusBadRequest, "keep_orig must be a boolean", err)
		}
		opts = append(opts, liftcoords.WithKeepOrig(keep))
	}
	if label != "" {
		opts = append(opts, liftcoords.WithBuildLabel(label))
	}
	return opts, nil
}

func bodyDelimiter(req *http.Request) rune {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err == nil && mediaType == "text/csv" {
		return ','
	}
	return '\t'
}
