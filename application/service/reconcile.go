package service

import (
	"strconv"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
)

// OrigSuffix marks original columns displaced by lifted values.
const OrigSuffix = "_orig"

// Reconciliation is the outcome of merging mapped intervals onto a table.
type Reconciliation struct {
	// Lifted holds rows that mapped through every hop, with new coordinates.
	Lifted table.Table
	// Unlifted holds the original rows that did not.
	Unlifted table.Table
}

// Reconcile joins mapped intervals back onto t by row index.
//
// With keepOrig the original chrom/start/end and build columns are renamed
// with OrigSuffix, the lifted coordinates are appended under the original
// names, and a fresh build column carrying label is appended when label is
// non-empty. Without keepOrig coordinates are replaced in place and the build
// column is relabelled in place. A table with no build column always keeps
// its original coordinates under OrigSuffix.
//
// When an index appears more than once in mapped, the first interval wins.
func Reconcile(t table.Table, mapped []genome.Interval, coords table.Coordinates, keepOrig bool, label string) (Reconciliation, error) {
	byIndex := make(map[string]genome.Region, len(mapped))
	for _, iv := range mapped {
		if _, ok := byIndex[iv.Index()]; ok {
			continue
		}
		byIndex[iv.Index()] = iv.Region()
	}

	var liftedPos, unliftedPos []int
	for i := 0; i < t.Len(); i++ {
		if _, ok := byIndex[t.Index(i)]; ok {
			liftedPos = append(liftedPos, i)
		} else {
			unliftedPos = append(unliftedPos, i)
		}
	}

	layout := newLayout(t.Columns(), coords, keepOrig, label)

	index := make([]string, 0, len(liftedPos))
	rows := make([][]string, 0, len(liftedPos))
	for _, p := range liftedPos {
		region := byIndex[t.Index(p)]
		index = append(index, t.Index(p))
		rows = append(rows, layout.row(t.Row(p), region))
	}

	lifted, err := table.New(layout.columns, rows, table.WithIndex(index))
	if err != nil {
		return Reconciliation{}, err
	}
	return Reconciliation{
		Lifted:   lifted,
		Unlifted: t.Subset(unliftedPos),
	}, nil
}

// cellSource is where an output column takes its value from.
type cellSource int

const (
	fromInput cellSource = iota
	fromChrom
	fromStart
	fromEnd
	fromLabel
)

type outColumn struct {
	source cellSource
	input  int
}

type layout struct {
	columns []string
	cells   []outColumn
	label   string
}

func newLayout(columns []string, coords table.Coordinates, keepOrig bool, label string) layout {
	lifted := map[string]cellSource{
		coords.Chrom.Name(): fromChrom,
		coords.Start.Name(): fromStart,
	}
	if !coords.PointRegions() {
		lifted[coords.End.Name()] = fromEnd
	}
	buildName := ""
	if coords.Build.Found() {
		buildName = coords.Build.Name()
	}

	keepCoords := keepOrig || buildName == ""

	l := layout{label: label}
	for i, c := range columns {
		source, isCoord := lifted[c]
		switch {
		case isCoord && keepCoords:
			l.add(c+OrigSuffix, outColumn{source: fromInput, input: i})
		case isCoord:
			l.add(c, outColumn{source: source})
		case c == buildName && keepOrig:
			l.add(c+OrigSuffix, outColumn{source: fromInput, input: i})
		case c == buildName && label != "":
			l.add(c, outColumn{source: fromLabel})
		default:
			l.add(c, outColumn{source: fromInput, input: i})
		}
	}

	if !keepCoords {
		return l
	}
	for _, name := range coords.Names() {
		l.add(name, outColumn{source: lifted[name]})
	}
	if keepOrig && buildName != "" && label != "" {
		l.add(buildName, outColumn{source: fromLabel})
	}
	return l
}

func (l *layout) add(name string, c outColumn) {
	l.columns = append(l.columns, name)
	l.cells = append(l.cells, c)
}

func (l layout) row(input []string, region genome.Region) []string {
	out := make([]string, len(l.cells))
	for i, c := range l.cells {
		switch c.source {
		case fromChrom:
			out[i] = region.Chrom()
		case fromStart:
			out[i] = strconv.FormatInt(region.Start(), 10)
		case fromEnd:
			out[i] = strconv.FormatInt(region.End(), 10)
		case fromLabel:
			out[i] = l.label
		default:
			out[i] = input[c.input]
		}
	}
	return out
}
