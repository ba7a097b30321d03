// Package bed reads and writes the headerless four-column interval files
// exchanged with the coordinate conversion tool:
//
//	chrom <TAB> start-1 <TAB> end <TAB> index
package bed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio"
	featbed "github.com/biogo/biogo/io/featio/bed"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
)

// bedType is the number of columns in every record.
const bedType = 4

// ErrMalformedRecord indicates an interval line that cannot be parsed.
var ErrMalformedRecord = errors.New("malformed interval record")

// Summary reports what an extraction wrote.
type Summary struct {
	Written int
	// Skipped holds the row positions whose coordinates could not be read.
	Skipped []int
}

// Extractor writes a table's regions as interval records.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *slog.Logger) Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return Extractor{logger: logger}
}

// Extract writes every row of t to path, tagging each record with the row
// index. Rows with a blank chromosome or unusable positions are skipped and
// reported in the summary; they never reach the tool.
func (e Extractor) Extract(path string, t table.Table, coords table.Coordinates) (Summary, error) {
	f, err := os.Create(path)
	if err != nil {
		return Summary{}, fmt.Errorf("create interval file: %w", err)
	}

	summary, err := e.Write(f, t, coords)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close interval file: %w", closeErr)
	}
	return summary, err
}

// Write writes the interval records for t to w.
func (e Extractor) Write(w io.Writer, t table.Table, coords table.Coordinates) (Summary, error) {
	chromCol := t.ColumnIndex(coords.Chrom.Name())
	startCol := t.ColumnIndex(coords.Start.Name())
	endCol := t.ColumnIndex(coords.End.Name())
	if chromCol < 0 || startCol < 0 || endCol < 0 {
		return Summary{}, fmt.Errorf("%w: %v", table.ErrMissingColumn, coords.Names())
	}

	bw := bufio.NewWriter(w)
	fw, err := featbed.NewWriter(bw, bedType)
	if err != nil {
		return Summary{}, err
	}
	var summary Summary

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		region, err := regionOf(row[chromCol], row[startCol], row[endCol])
		if err == nil && strings.ContainsAny(t.Index(i), " \t\r\n") {
			err = errors.New("index contains whitespace")
		}
		if err != nil {
			e.logger.Warn("skipping row with unusable coordinates",
				slog.String("index", t.Index(i)),
				slog.String("error", err.Error()),
			)
			summary.Skipped = append(summary.Skipped, i)
			continue
		}
		if _, err := fw.Write(toFeature(region.Interval(t.Index(i)))); err != nil {
			return summary, fmt.Errorf("write interval: %w", err)
		}
		summary.Written++
	}

	if err := bw.Flush(); err != nil {
		return summary, fmt.Errorf("flush intervals: %w", err)
	}
	return summary, nil
}

func toFeature(iv genome.Interval) *featbed.Bed4 {
	return &featbed.Bed4{
		Chrom:      iv.Chrom(),
		ChromStart: int(iv.Start()),
		ChromEnd:   int(iv.End()),
		FeatName:   iv.Index(),
	}
}

func regionOf(chrom, start, end string) (genome.Region, error) {
	chrom = strings.TrimSpace(chrom)
	if chrom == "" {
		return genome.Region{}, errors.New("empty chromosome")
	}
	s, err := ParsePosition(start)
	if err != nil {
		return genome.Region{}, fmt.Errorf("start: %w", err)
	}
	if s < 1 {
		return genome.Region{}, fmt.Errorf("start %d is not a 1-based position", s)
	}
	e, err := ParsePosition(end)
	if err != nil {
		return genome.Region{}, fmt.Errorf("end: %w", err)
	}
	if e < s {
		return genome.Region{}, fmt.Errorf("end %d before start %d", e, s)
	}
	return genome.NewRegion(chrom, s, e), nil
}

// ParsePosition parses an integer coordinate. Integral decimal values such
// as "100.0" are accepted since spreadsheet exports often produce them.
func ParsePosition(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing value")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int64(f), nil
}

// ReadFile parses an interval file written by Extract or by the tool.
func ReadFile(path string) ([]genome.Interval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interval file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Read parses interval records. Blank lines and lines starting with '#' are
// ignored, as are fields after the fourth.
func Read(r io.Reader) ([]genome.Interval, error) {
	var intervals []genome.Interval
	err := scan(r, func(f *featbed.Bed4) {
		intervals = append(intervals, genome.NewInterval(f.Chrom, int64(f.ChromStart), int64(f.ChromEnd), f.FeatName))
	})
	if err != nil {
		return nil, err
	}
	return intervals, nil
}

// CountRecords counts the non-comment records in an interval file. The
// tool's unmapped file interleaves '#' reason lines with records.
func CountRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open interval file: %w", err)
	}
	defer func() { _ = f.Close() }()

	n := 0
	if err := scan(f, func(*featbed.Bed4) { n++ }); err != nil {
		return 0, err
	}
	return n, nil
}

func scan(r io.Reader, fn func(*featbed.Bed4)) error {
	fr, err := featbed.NewReader(&records{r: bufio.NewReader(r)}, bedType)
	if err != nil {
		return err
	}
	sc := featio.NewScanner(fr)
	for sc.Next() {
		f, ok := sc.Feat().(*featbed.Bed4)
		if !ok {
			return fmt.Errorf("%w: unexpected feature %T", ErrMalformedRecord, sc.Feat())
		}
		fn(f)
	}
	if err := sc.Error(); err != nil {
		if errors.Is(err, ErrMalformedRecord) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return nil
}

// records feeds the feature reader one newline-terminated four-field record
// at a time, dropping blank and '#' lines.
type records struct {
	r    *bufio.Reader
	line int
	buf  []byte
	err  error
}

func (rs *records) Read(p []byte) (int, error) {
	for len(rs.buf) == 0 {
		if rs.err != nil {
			return 0, rs.err
		}
		line, err := rs.r.ReadBytes('\n')
		if err != nil {
			rs.err = err
		}
		rs.line++
		line = bytes.TrimRight(line, "\r\n")
		if len(bytes.TrimSpace(line)) == 0 || line[0] == '#' {
			continue
		}
		fields := bytes.Split(line, []byte{'\t'})
		if len(fields) < bedType {
			rs.err = fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrMalformedRecord, rs.line, bedType, len(fields))
			return 0, rs.err
		}
		rs.buf = append(bytes.Join(fields[:bedType], []byte{'\t'}), '\n')
	}
	n := copy(p, rs.buf)
	rs.buf = rs.buf[n:]
	return n, nil
}
