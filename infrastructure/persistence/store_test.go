package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB creates an in-memory SQLite database for testing.
// Cannot use testdb package here due to import cycle (testdb imports persistence).
func newTestDB(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore(newTestDB(t))

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	chains := []string{"hg19_to_hg38.chain", "hg38_to_GRCh38.chain"}

	ok := run.New("run-1", genome.HG19, genome.GRCh38, chains, 10, started).
		Succeed(9, 1, started.Add(2*time.Second))
	_, err := store.Save(ctx, ok)
	require.NoError(t, err)

	failed := run.New("run-2", genome.HG19, genome.HG38, []string{"hg19_to_hg38.chain"}, 3, started.Add(time.Minute)).
		Fail(errors.New("liftOver exited with status 1"), started.Add(time.Minute+time.Second))
	_, err = store.Save(ctx, failed)
	require.NoError(t, err)

	runs, err := store.Find(ctx, run.Newest())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID())
	assert.Equal(t, run.StatusFailed, runs[0].Status())
	assert.Equal(t, "liftOver exited with status 1", runs[0].ErrorText())

	got, err := store.FindOne(ctx, run.WithID("run-1"))
	require.NoError(t, err)
	assert.Equal(t, chains, got.Chains())
	assert.Equal(t, 9, got.Lifted())
	assert.Equal(t, 1, got.Unlifted())
	assert.Equal(t, 2*time.Second, got.Duration())
	assert.Equal(t, genome.GRCh38, got.Target())

	succeeded, err := store.Find(ctx, run.WithStatus(run.StatusSucceeded))
	require.NoError(t, err)
	assert.Len(t, succeeded, 1)
}

func TestRunStore_FindOneMissing(t *testing.T) {
	store := NewRunStore(newTestDB(t))

	_, err := store.FindOne(context.Background(), run.WithID("nope"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestChainFileStore_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewChainFileStore(newTestDB(t))
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.Save(ctx, chain.NewFile("hg19_to_hg38.chain", 10, "aa", "hg19_to_hg38.chain.gz", at))
	require.NoError(t, err)
	_, err = store.Save(ctx, chain.NewFile("hg19_to_hg38.chain", 20, "bb", "hg19_to_hg38.chain.xz", at.Add(time.Hour)))
	require.NoError(t, err)

	files, err := store.Find(ctx, chain.WithName("hg19_to_hg38.chain"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(20), files[0].Size())
	assert.Equal(t, "bb", files[0].Checksum())
	assert.Equal(t, "hg19_to_hg38.chain.xz", files[0].Source())
}

func TestChainFileStore_SaveAll(t *testing.T) {
	ctx := context.Background()
	store := NewChainFileStore(newTestDB(t))
	at := time.Now().UTC()

	err := store.SaveAll(ctx, []chain.File{
		chain.NewFile("a.chain", 1, "x", "a.chain.gz", at),
		chain.NewFile("b.chain", 2, "y", "b.chain", at),
	})
	require.NoError(t, err)
	require.NoError(t, store.SaveAll(ctx, nil))

	files, err := store.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestStringList_Scan(t *testing.T) {
	var s StringList
	require.NoError(t, s.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, s)

	require.NoError(t, s.Scan([]byte(`[]`)))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(nil))
	assert.Nil(t, s)

	assert.Error(t, s.Scan(42))

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
