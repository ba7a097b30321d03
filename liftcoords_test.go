package liftcoords_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/testtool"
)

func chainSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range chain.Default().Files() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("chain\n"), 0o600))
	}
	return dir
}

func newClient(t *testing.T, tool string, opts ...liftcoords.Option) *liftcoords.Client {
	t.Helper()
	base := append([]liftcoords.Option{
		liftcoords.WithDataDir(t.TempDir()),
		liftcoords.WithChainSourceDir(chainSources(t)),
		liftcoords.WithTool(tool),
	}, opts...)
	client, err := liftcoords.New(base...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.EnsureReady(context.Background()))
	return client
}

func exampleTable(t *testing.T) table.Table {
	t.Helper()
	tbl, err := table.New([]string{"chrom", "start", "end", "build"}, [][]string{{"chr1", "100", "200", "hg19"}})
	require.NoError(t, err)
	return tbl
}

func cell(t *testing.T, tbl table.Table, row int, col string) string {
	t.Helper()
	v, err := tbl.Value(row, col)
	require.NoError(t, err)
	return v
}

func TestLiftOver_Identity(t *testing.T) {
	ctx := context.Background()
	client := newClient(t, testtool.Identity(t))

	result, err := client.LiftOver(ctx, exampleTable(t), "hg19", "grch37")
	require.NoError(t, err)

	require.Equal(t, 1, result.Lifted.Len())
	assert.Equal(t, "100", cell(t, result.Lifted, 0, "start"))
	assert.Equal(t, "200", cell(t, result.Lifted, 0, "end"))
	assert.Equal(t, "GRCh37", cell(t, result.Lifted, 0, "build"))
	assert.Equal(t, 0, result.Unlifted.Len())

	runs, err := client.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.RunID, runs[0].ID())
	assert.Equal(t, run.StatusSucceeded, runs[0].Status())

	one, err := client.Run(ctx, result.RunID)
	require.NoError(t, err)
	assert.Equal(t, []string{"hg19_to_GRCh37.chain"}, one.Chains())
}

func TestLiftOver_AllFail(t *testing.T) {
	client := newClient(t, testtool.FailAll(t))

	result, err := client.LiftOver(context.Background(), exampleTable(t), "hg19", "grch37")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Lifted.Len())
	require.Equal(t, 1, result.Unlifted.Len())
	assert.Equal(t, exampleTable(t).Records(), result.Unlifted.Records())
}

func TestLiftOver_KeepOrigAndLabel(t *testing.T) {
	client := newClient(t, testtool.Identity(t))

	result, err := client.LiftOver(context.Background(), exampleTable(t), "hg19", "hg38",
		liftcoords.WithKeepOrig(true),
		liftcoords.WithBuildLabel("GRCh38"),
	)
	require.NoError(t, err)
	assert.Equal(t, "hg19", cell(t, result.Lifted, 0, "build_orig"))
	assert.Equal(t, "GRCh38", cell(t, result.Lifted, 0, "build"))
	assert.Equal(t, "chr1", cell(t, result.Lifted, 0, "chrom_orig"))
}

func TestLiftOver_InvalidBuild(t *testing.T) {
	client := newClient(t, testtool.Identity(t))

	_, err := client.LiftOver(context.Background(), exampleTable(t), "hg99", "grch37")
	assert.ErrorIs(t, err, liftcoords.ErrInvalidBuild)

	entries, err := os.ReadDir(client.WorkDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLiftOver_ToolFailure(t *testing.T) {
	client := newClient(t, testtool.Exit(t, 2))

	_, err := client.LiftOver(context.Background(), exampleTable(t), "hg19", "grch37")
	require.ErrorIs(t, err, liftcoords.ErrExternalTool)

	var toolErr *liftcoords.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, 2, toolErr.ExitCode)
}

func TestLiftOver_WithColumns(t *testing.T) {
	client := newClient(t, testtool.Identity(t))
	tbl, err := table.New([]string{"contig", "pos"}, [][]string{{"chr2", "5"}})
	require.NoError(t, err)

	result, err := client.LiftOver(context.Background(), tbl, "hg38", "hg19",
		liftcoords.WithColumns(map[string]string{table.Chrom: "contig", table.Start: "pos"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "5", cell(t, result.Lifted, 0, "pos"))
}

func TestEnsureReady_RecordsChainFiles(t *testing.T) {
	client := newClient(t, testtool.Identity(t))

	files, err := client.ChainFiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, len(client.Chains().Files()))
	missing, err := client.Missing()
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.DirExists(t, client.ChainDir())
}

func TestEnsureReady_MissingSources(t *testing.T) {
	client, err := liftcoords.New(
		liftcoords.WithDataDir(t.TempDir()),
		liftcoords.WithChainSourceDir(t.TempDir()),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	err = client.EnsureReady(context.Background())
	assert.ErrorIs(t, err, liftcoords.ErrChainSourceMissing)
	assert.DirExists(t, client.WorkDir())
}

func TestClient_Close(t *testing.T) {
	client, err := liftcoords.New(liftcoords.WithDataDir(t.TempDir()))
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), liftcoords.ErrClientClosed)

	_, err = client.LiftOver(context.Background(), exampleTable(t), "hg19", "grch37")
	assert.ErrorIs(t, err, liftcoords.ErrClientClosed)

	_, err = client.Missing()
	assert.ErrorIs(t, err, liftcoords.ErrClientClosed)
	assert.ErrorIs(t, client.EnsurePair(context.Background(), "hg19", "grch37"), liftcoords.ErrClientClosed)
}

func TestNew_CustomPaths(t *testing.T) {
	chainDir := t.TempDir()
	workDir := filepath.Join(t.TempDir(), "work")
	dbPath := filepath.Join(t.TempDir(), "history.db")

	client, err := liftcoords.New(
		liftcoords.WithChainDir(chainDir),
		liftcoords.WithWorkDir(workDir),
		liftcoords.WithSQLite(dbPath),
		liftcoords.WithColumnStrategy(table.StrategyExact),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, chainDir, client.ChainDir())
	assert.Equal(t, workDir, client.WorkDir())
	assert.FileExists(t, dbPath)
}
