package genome

import "fmt"

// Region is a 1-based, inclusive span as stored in source tables.
type Region struct {
	chrom string
	start int64
	end   int64
}

// NewRegion creates a Region.
func NewRegion(chrom string, start, end int64) Region {
	return Region{chrom: chrom, start: start, end: end}
}

// Chrom returns the chromosome name.
func (r Region) Chrom() string { return r.chrom }

// Start returns the 1-based start position.
func (r Region) Start() int64 { return r.start }

// End returns the 1-based inclusive end position.
func (r Region) End() int64 { return r.end }

// Interval converts the region to a 0-based half-open interval tagged with index.
func (r Region) Interval(index string) Interval {
	return Interval{chrom: r.chrom, start: r.start - 1, end: r.end, index: index}
}

// String returns chrom:start-end.
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.chrom, r.start, r.end)
}

// Interval is a 0-based half-open span tagged with the originating row index.
// This is the record format consumed and produced by the conversion tool.
type Interval struct {
	chrom string
	start int64
	end   int64
	index string
}

// NewInterval creates an Interval.
func NewInterval(chrom string, start, end int64, index string) Interval {
	return Interval{chrom: chrom, start: start, end: end, index: index}
}

// Chrom returns the chromosome name.
func (i Interval) Chrom() string { return i.chrom }

// Start returns the 0-based start position.
func (i Interval) Start() int64 { return i.start }

// End returns the exclusive end position.
func (i Interval) End() int64 { return i.end }

// Index returns the synthetic row index.
func (i Interval) Index() string { return i.index }

// Region converts the interval back to 1-based inclusive coordinates.
func (i Interval) Region() Region {
	return Region{chrom: i.chrom, start: i.start + 1, end: i.end}
}
