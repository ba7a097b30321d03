package chain

import (
	"context"
	"time"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/store"
)

// File is an installed chain file in the data directory.
type File struct {
	name        string
	size        int64
	checksum    string
	source      string
	installedAt time.Time
}

// NewFile creates a File record.
func NewFile(name string, size int64, checksum, source string, installedAt time.Time) File {
	return File{
		name:        name,
		size:        size,
		checksum:    checksum,
		source:      source,
		installedAt: installedAt,
	}
}

// Name returns the chain file name.
func (f File) Name() string { return f.name }

// Size returns the decompressed size in bytes.
func (f File) Size() int64 { return f.size }

// Checksum returns the hex blake3 digest of the decompressed file.
func (f File) Checksum() string { return f.checksum }

// Source returns the archive the file was installed from.
func (f File) Source() string { return f.source }

// InstalledAt returns when the file was installed.
func (f File) InstalledAt() time.Time { return f.installedAt }

// FileStore persists installed chain file records.
type FileStore interface {
	Save(ctx context.Context, f File) (File, error)
	SaveAll(ctx context.Context, files []File) error
	Find(ctx context.Context, options ...store.Option) ([]File, error)
}

// WithName filters by chain file name.
func WithName(name string) store.Option {
	return store.WithCondition("name", name)
}
