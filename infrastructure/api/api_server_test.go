package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api/v1/dto"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/testtool"
)

const variants = "chrom\tstart\tend\tbuild\tgene\n" +
	"chr1\t100\t200\thg19\tA\n" +
	"chr2\t300\t300\thg19\tB\n"

func newHandler(t *testing.T, tool string, ready bool) http.Handler {
	t.Helper()
	sources := t.TempDir()
	for _, name := range chain.Default().Files() {
		require.NoError(t, os.WriteFile(filepath.Join(sources, name), []byte("chain\n"), 0o600))
	}
	client, err := liftcoords.New(
		liftcoords.WithDataDir(t.TempDir()),
		liftcoords.WithChainSourceDir(sources),
		liftcoords.WithTool(tool),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	if ready {
		require.NoError(t, client.EnsureReady(context.Background()))
	}
	return api.NewAPIServer(client, []string{"*"}).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "text/tab-separated-values")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		w := do(t, newHandler(t, "liftOver", true), http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("chain files missing", func(t *testing.T) {
		w := do(t, newHandler(t, "liftOver", false), http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "hg19_to_hg38.chain")
	})

	t.Run("client closed", func(t *testing.T) {
		client, err := liftcoords.New(liftcoords.WithDataDir(t.TempDir()))
		require.NoError(t, err)
		h := api.NewAPIServer(client, nil).Handler()
		require.NoError(t, client.Close())

		w := do(t, h, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestListBuilds(t *testing.T) {
	w := do(t, newHandler(t, "liftOver", true), http.MethodGet, "/api/v1/builds", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BuildListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 4)
	assert.Equal(t, "grch37", resp.Data[0].Token)
	assert.Equal(t, "GRCh37", resp.Data[0].Label)
}

func TestGetChains(t *testing.T) {
	h := newHandler(t, "liftOver", true)

	t.Run("two hops", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/chains/grch38/hg19", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ChainResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"GRCh38_to_GRCh37.chain", "GRCh37_to_hg19.chain"}, resp.Chains)
	})

	t.Run("invalid build", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/chains/hg18/hg19", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("same build", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/chains/hg19/hg19", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("all pairs", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/chains", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.PairListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 12)
	})
}

func TestLift(t *testing.T) {
	h := newHandler(t, testtool.Shift(t, 5), true)

	w := do(t, h, http.MethodPost, "/api/v1/lift?source=hg19&target=hg38", variants)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LiftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, []string{"hg19_to_hg38.chain"}, resp.Chains)
	assert.Equal(t, []string{"chrom", "start", "end", "build", "gene"}, resp.Lifted.Columns)
	assert.Equal(t, []string{"0", "1"}, resp.Lifted.Index)
	assert.Equal(t, []string{"chr1", "105", "205", "hg38", "A"}, resp.Lifted.Rows[0])
	assert.Equal(t, []string{"chr2", "305", "305", "hg38", "B"}, resp.Lifted.Rows[1])
	assert.Empty(t, resp.Unlifted.Rows)

	t.Run("recorded in run history", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/runs?limit=5", "")
		require.Equal(t, http.StatusOK, w.Code)

		var runs dto.RunListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
		require.Len(t, runs.Data, 1)
		assert.Equal(t, resp.RunID, runs.Data[0].ID)
		assert.Equal(t, "succeeded", runs.Data[0].Status)
		assert.Equal(t, 2, runs.Data[0].Lifted)

		w = do(t, h, http.MethodGet, "/api/v1/runs/"+resp.RunID, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLift_KeepOrigAndLabel(t *testing.T) {
	h := newHandler(t, testtool.Identity(t), true)

	w := do(t, h, http.MethodPost, "/api/v1/lift?source=hg19&target=hg38&keep_orig=true&build_label=GRCh38", variants)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LiftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t,
		[]string{"chrom_orig", "start_orig", "end_orig", "build_orig", "gene", "chrom", "start", "end", "build"},
		resp.Lifted.Columns)
	assert.Equal(t, []string{"chr1", "100", "200", "hg19", "A", "chr1", "100", "200", "GRCh38"}, resp.Lifted.Rows[0])
}

func TestLift_PartialFailure(t *testing.T) {
	h := newHandler(t, testtool.FailIndex(t, "1"), true)

	w := do(t, h, http.MethodPost, "/api/v1/lift?source=hg19&target=hg38", variants)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LiftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"0"}, resp.Lifted.Index)
	assert.Equal(t, []string{"1"}, resp.Unlifted.Index)
	assert.Equal(t, []string{"chr2", "300", "300", "hg19", "B"}, resp.Unlifted.Rows[0])
}

func TestLift_CSVBody(t *testing.T) {
	h := newHandler(t, testtool.Identity(t), true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lift?source=hg19&target=hg38",
		strings.NewReader("chr,start,label\nchr1,100,x\n"))
	req.Header.Set("Content-Type", "text/csv; charset=utf-8")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LiftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"chr_orig", "start_orig", "label", "chr", "start"}, resp.Lifted.Columns)
	assert.Equal(t, []string{"chr1", "100", "x", "chr1", "100"}, resp.Lifted.Rows[0])
}

func TestLift_ColumnOverride(t *testing.T) {
	h := newHandler(t, testtool.Shift(t, 1), true)

	body := "contig\tpos\tstart_codon\nchr1\t100\tATG\n"
	w := do(t, h, http.MethodPost, "/api/v1/lift?source=hg19&target=hg38&chrom_col=contig&start_col=pos", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LiftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"chr1", "100", "ATG", "chr1", "101"}, resp.Lifted.Rows[0])
}

func TestLift_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		tool   func(*testing.T) string
		ready  bool
		want   int
	}{
		{"invalid source", "/api/v1/lift?source=hg18&target=hg38", variants, testtool.Identity, true, http.StatusBadRequest},
		{"missing target", "/api/v1/lift?source=hg19", variants, testtool.Identity, true, http.StatusBadRequest},
		{"same build", "/api/v1/lift?source=hg19&target=hg19", variants, testtool.Identity, true, http.StatusBadRequest},
		{"bad keep_orig", "/api/v1/lift?source=hg19&target=hg38&keep_orig=maybe", variants, testtool.Identity, true, http.StatusBadRequest},
		{"empty body", "/api/v1/lift?source=hg19&target=hg38", "", testtool.Identity, true, http.StatusBadRequest},
		{"no chrom column", "/api/v1/lift?source=hg19&target=hg38", "a\tb\n1\t2\n", testtool.Identity, true, http.StatusBadRequest},
		{"tool exits non-zero", "/api/v1/lift?source=hg19&target=hg38", variants, func(t *testing.T) string { return testtool.Exit(t, 3) }, true, http.StatusBadGateway},
		{"chain files not installed", "/api/v1/lift?source=hg19&target=hg38", variants, testtool.Identity, false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, tt.tool(t), tt.ready)
			w := do(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRuns(t *testing.T) {
	h := newHandler(t, "liftOver", true)

	t.Run("empty history", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/runs", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("bad limit", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/runs?limit=0", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown run", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/runs/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
