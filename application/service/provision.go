package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/archive"
)

// sourceSuffixes are tried in order when looking for a chain file's source.
var sourceSuffixes = []string{"", ".gz", ".xz"}

// Provisioner installs the registry's chain files into the chain directory.
type Provisioner struct {
	registry  chain.Registry
	chainDir  string
	workDir   string
	sourceDir string
	files     chain.FileStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewProvisioner creates a Provisioner. sourceDir may be empty when chain
// files are placed in chainDir by other means; files may be nil.
func NewProvisioner(
	registry chain.Registry,
	chainDir, workDir, sourceDir string,
	files chain.FileStore,
	logger *slog.Logger,
) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{
		registry:  registry,
		chainDir:  chainDir,
		workDir:   workDir,
		sourceDir: sourceDir,
		files:     files,
		logger:    logger,
		now:       time.Now,
	}
}

// Missing returns the registry chain files not present in the chain directory.
func (p *Provisioner) Missing() []string {
	return p.missing(p.registry.Files())
}

func (p *Provisioner) missing(names []string) []string {
	var missing []string
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(p.chainDir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// EnsureReady creates the chain and work directories and installs every
// missing chain file from the source directory, decompressing as needed.
// Files already present are left alone, so repeated calls are cheap. It
// returns the newly installed files.
func (p *Provisioner) EnsureReady(ctx context.Context) ([]chain.File, error) {
	return p.install(ctx, p.registry.Files())
}

// EnsurePair is EnsureReady restricted to the chain files applied when
// converting source to target. Sources for other pairs need not exist.
func (p *Provisioner) EnsurePair(ctx context.Context, source, target string) ([]chain.File, error) {
	files, err := p.registry.Resolve(source, target)
	if err != nil {
		return nil, err
	}
	return p.install(ctx, files)
}

func (p *Provisioner) install(ctx context.Context, names []string) ([]chain.File, error) {
	for _, dir := range []string{p.chainDir, p.workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	var installed []chain.File
	var unavailable []string
	for _, name := range p.missing(names) {
		if err := ctx.Err(); err != nil {
			return installed, err
		}

		src, ok := p.findSource(name)
		if !ok {
			unavailable = append(unavailable, name)
			continue
		}

		result, err := archive.Install(src, filepath.Join(p.chainDir, name))
		if err != nil {
			return installed, fmt.Errorf("install %s: %w", name, err)
		}
		p.logger.Debug("installed chain file",
			slog.String("name", name),
			slog.String("source", src),
			slog.String("compression", string(result.Compression)),
			slog.Int64("size", result.Size),
		)
		installed = append(installed, chain.NewFile(name, result.Size, result.Checksum, filepath.Base(src), p.now()))
	}

	if len(installed) > 0 {
		names := make([]string, len(installed))
		for i, f := range installed {
			names[i] = f.Name()
		}
		p.logger.Info("added chain files", slog.Any("files", names))

		if p.files != nil {
			if err := p.files.SaveAll(ctx, installed); err != nil {
				return installed, fmt.Errorf("record chain files: %w", err)
			}
		}
	}

	if len(unavailable) > 0 {
		return installed, fmt.Errorf("%w in %q: %s", ErrChainSourceMissing, p.sourceDir, strings.Join(unavailable, ", "))
	}
	return installed, nil
}

func (p *Provisioner) findSource(name string) (string, bool) {
	if p.sourceDir == "" {
		return "", false
	}
	for _, suffix := range sourceSuffixes {
		path := filepath.Join(p.sourceDir, name+suffix)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			p.logger.Warn("cannot stat chain source", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	return "", false
}
