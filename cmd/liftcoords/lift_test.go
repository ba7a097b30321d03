package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/testtool"
)

func TestLiftCmd_WritesLiftedAndUnlifted(t *testing.T) {
	tool := testtool.FailIndex(t, "1")

	sources := t.TempDir()
	for _, name := range chain.Default().Files() {
		require.NoError(t, os.WriteFile(filepath.Join(sources, name), []byte("chain\n"), 0o600))
	}
	t.Setenv("CHAIN_SOURCE_DIR", sources)
	t.Setenv("LOG_LEVEL", "ERROR")

	work := t.TempDir()
	input := filepath.Join(work, "variants.tsv")
	require.NoError(t, os.WriteFile(input, []byte(
		"chrom\tstart\tend\tbuild\n"+
			"chr1\t100\t200\thg19\n"+
			"chr2\t300\t400\thg19\n"), 0o600))

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"lift", input,
		"--from", "hg19", "--to", "grch37",
		"--data-dir", t.TempDir(),
		"--tool", tool,
		"--quiet",
	})
	require.NoError(t, cmd.Execute())

	lifted, err := os.ReadFile(filepath.Join(work, "variants.grch37.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "chrom\tstart\tend\tbuild\nchr1\t100\t200\tGRCh37\n", string(lifted))

	unlifted, err := os.ReadFile(filepath.Join(work, "variants.grch37.unlifted.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "chrom\tstart\tend\tbuild\nchr2\t300\t400\thg19\n", string(unlifted))
}

func TestLiftCmd_InstallsOnlyPairChains(t *testing.T) {
	sources := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sources, "hg19_to_GRCh37.chain"), []byte("chain\n"), 0o600))
	t.Setenv("CHAIN_SOURCE_DIR", sources)
	t.Setenv("LOG_LEVEL", "ERROR")

	work := t.TempDir()
	input := filepath.Join(work, "variants.tsv")
	require.NoError(t, os.WriteFile(input, []byte("chrom\tstart\tend\tbuild\nchr1\t100\t200\thg19\n"), 0o600))

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"lift", input,
		"--from", "hg19", "--to", "grch37",
		"--data-dir", t.TempDir(),
		"--tool", testtool.Identity(t),
		"--quiet",
	})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(work, "variants.grch37.tsv"))
}

func TestLiftCmd_RequiresBuilds(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"lift", "variants.tsv", "--to", "hg38"})
	assert.Error(t, cmd.Execute())
}
