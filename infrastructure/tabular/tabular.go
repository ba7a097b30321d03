// Package tabular reads and writes delimited tables with a header row.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
)

// ErrEmpty indicates input with no header row.
var ErrEmpty = errors.New("table has no header")

// Delimiter returns a comma for .csv paths and a tab otherwise.
func Delimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ','
	}
	return '\t'
}

// ReadFile reads the table at path, choosing the delimiter from the extension.
// A path of "-" reads standard input as TSV.
func ReadFile(path string) (table.Table, error) {
	if path == "-" {
		return Read(os.Stdin, '\t')
	}
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, Delimiter(path))
}

// Read parses delimited text. The first record is the header; lines starting
// with '#' are comments.
func Read(r io.Reader, comma rune) (table.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table.Table{}, ErrEmpty
	}
	if err != nil {
		return table.Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table.Table{}, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}

	return table.New(header, rows)
}

// WriteFile writes t to path, choosing the delimiter from the extension.
// A path of "-" writes TSV to standard output.
func WriteFile(path string, t table.Table) error {
	if path == "-" {
		return Write(os.Stdout, t, '\t')
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if err := Write(f, t, Delimiter(path)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write writes the header and rows of t.
func Write(w io.Writer, t table.Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
