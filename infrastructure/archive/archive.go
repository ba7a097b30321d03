// Package archive installs possibly-compressed reference files.
// Compression is detected from content, not the file name.
package archive

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// ErrUnsupportedFormat indicates a compressed format that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported compression format")

// Compression identifies how a source file is encoded.
type Compression string

// Compression values.
const (
	None Compression = "none"
	Gzip Compression = "gzip"
	XZ   Compression = "xz"
)

// headerSize is enough for every signature filetype checks.
const headerSize = 262

// Detect sniffs the compression of the file at path.
func Detect(path string) (Compression, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return detect(head[:n])
}

func detect(head []byte) (Compression, error) {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return None, nil
	}
	switch kind {
	case matchers.TypeGz:
		return Gzip, nil
	case matchers.TypeXz:
		return XZ, nil
	}
	if filetype.IsArchive(head) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	return None, nil
}

// Installed describes a file written by Install.
type Installed struct {
	Path        string
	Size        int64
	Checksum    string
	Compression Compression
}

// Install decompresses src into dst. Content is written to a temporary file
// beside dst and renamed into place, so dst never holds a partial file.
func Install(src, dst string) (Installed, error) {
	compression, err := Detect(src)
	if err != nil {
		return Installed{}, err
	}

	in, err := os.Open(src)
	if err != nil {
		return Installed{}, fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	reader, err := decompressor(in, compression)
	if err != nil {
		return Installed{}, fmt.Errorf("read %s: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return Installed{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	hasher := blake3.New()
	size, err := io.Copy(io.MultiWriter(tmp, hasher), reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Installed{}, fmt.Errorf("decompress %s: %w", src, err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return Installed{}, fmt.Errorf("install %s: %w", dst, err)
	}

	return Installed{
		Path:        dst,
		Size:        size,
		Checksum:    hex.EncodeToString(hasher.Sum(nil)),
		Compression: compression,
	}, nil
}

func decompressor(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gz, nil
	case XZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		return xr, nil
	default:
		return r, nil
	}
}
