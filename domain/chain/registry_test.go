package chain

import (
	"testing"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversEveryOrderedPair(t *testing.T) {
	r := Default()

	for _, src := range genome.Builds() {
		for _, tgt := range genome.Builds() {
			if src == tgt {
				continue
			}
			files, err := r.ResolveBuilds(src, tgt)
			require.NoError(t, err, "%s -> %s", src, tgt)
			assert.NotEmpty(t, files, "%s -> %s", src, tgt)
			assert.LessOrEqual(t, len(files), 2, "%s -> %s", src, tgt)
		}
	}
	assert.Len(t, r.Pairs(), 12)
}

func TestResolve_Order(t *testing.T) {
	r := Default()

	files, err := r.Resolve("grch38", "hg19")
	require.NoError(t, err)
	assert.Equal(t, []string{"GRCh38_to_GRCh37.chain", "GRCh37_to_hg19.chain"}, files)

	files, err = r.Resolve("hg38", "grch37")
	require.NoError(t, err)
	assert.Equal(t, []string{"hg38_to_hg19.chain", "hg19_to_GRCh37.chain"}, files)

	files, err = r.Resolve("hg19", "grch37")
	require.NoError(t, err)
	assert.Equal(t, []string{"hg19_to_GRCh37.chain"}, files)
}

func TestResolve_InvalidBuild(t *testing.T) {
	r := Default()

	_, err := r.Resolve("hg99", "grch37")
	assert.ErrorIs(t, err, genome.ErrInvalidBuild)

	_, err = r.Resolve("hg19", "")
	assert.ErrorIs(t, err, genome.ErrInvalidBuild)

	_, err = r.Resolve("HG19", "hg38")
	assert.ErrorIs(t, err, genome.ErrInvalidBuild)
}

func TestResolve_SameBuild(t *testing.T) {
	_, err := Default().Resolve("hg19", "hg19")
	assert.ErrorIs(t, err, ErrSameBuild)
}

func TestResolve_ReturnsCopy(t *testing.T) {
	r := Default()
	files, err := r.Resolve("hg19", "hg38")
	require.NoError(t, err)
	files[0] = "mutated"

	again, err := r.Resolve("hg19", "hg38")
	require.NoError(t, err)
	assert.Equal(t, "hg19_to_hg38.chain", again[0])
}

func TestParse(t *testing.T) {
	r, err := Parse([]byte("hg19:\n  hg38: [a.chain]\n"))
	require.NoError(t, err)

	files, err := r.Resolve("hg19", "hg38")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.chain"}, files)

	_, err = r.Resolve("hg38", "hg19")
	assert.ErrorIs(t, err, ErrUnknownPair)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("hg19:\n  hg38: []\n"))
	assert.ErrorIs(t, err, ErrMissingChainParameter)

	_, err = Parse([]byte("hg20:\n  hg38: [a.chain]\n"))
	assert.ErrorIs(t, err, genome.ErrInvalidBuild)

	_, err = Parse([]byte("not: [valid"))
	assert.Error(t, err)
}

func TestFiles(t *testing.T) {
	files := Default().Files()
	assert.Equal(t, []string{
		"GRCh37_to_GRCh38.chain",
		"GRCh37_to_hg19.chain",
		"GRCh37_to_hg38.chain",
		"GRCh38_to_GRCh37.chain",
		"hg19_to_GRCh37.chain",
		"hg19_to_hg38.chain",
		"hg38_to_GRCh38.chain",
		"hg38_to_hg19.chain",
	}, files)
}
