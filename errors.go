package liftcoords

import (
	"github.com/Townsend-Lab-Yale/lift-coords/application/service"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/liftover"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/database"
)

// Exported errors for library consumers. Match them with errors.Is.
var (
	// ErrInvalidBuild indicates a source or target outside grch37, grch38, hg19, hg38.
	ErrInvalidBuild = genome.ErrInvalidBuild

	// ErrSameBuild indicates a lift whose source and target are equal.
	ErrSameBuild = chain.ErrSameBuild

	// ErrMissingChainParameter indicates a registry entry with no chain files.
	ErrMissingChainParameter = chain.ErrMissingChainParameter

	// ErrMissingColumn indicates a table without a chromosome or start column.
	ErrMissingColumn = table.ErrMissingColumn

	// ErrExternalTool indicates the conversion tool could not run or exited non-zero.
	ErrExternalTool = liftover.ErrExternalTool

	// ErrChainFileMissing indicates a chain file that has not been installed.
	ErrChainFileMissing = service.ErrChainFileMissing

	// ErrChainSourceMissing indicates chain files that EnsureReady could not find.
	ErrChainSourceMissing = service.ErrChainSourceMissing

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = service.ErrClientClosed

	// ErrNotFound indicates a run or chain file record that does not exist.
	ErrNotFound = database.ErrNotFound
)

// ExternalToolError carries the command and exit status of a failed hop.
type ExternalToolError = liftover.ExternalToolError
