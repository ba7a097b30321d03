package table

import (
	"fmt"
	"strings"
)

// Semantic column names searched for during coordinate resolution.
const (
	Chrom = "chr"
	Start = "start"
	End   = "end"
	Build = "build"
)

// Strategy selects how semantic names are matched against headers.
type Strategy int

// Strategy values.
const (
	// StrategySubstring picks the first column whose lowercase name contains
	// the semantic name. Tolerates headers like "Chromosome" or "Start_Position".
	StrategySubstring Strategy = iota
	// StrategyExact picks the first column equal to the semantic name,
	// ignoring case.
	StrategyExact
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	default:
		return "substring"
	}
}

// ParseStrategy parses "exact" or "substring".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "", "substring":
		return StrategySubstring, nil
	case "exact":
		return StrategyExact, nil
	default:
		return StrategySubstring, fmt.Errorf("unknown column strategy %q", s)
	}
}

// Column is the outcome of resolving one semantic name.
type Column struct {
	name  string
	found bool
}

// Found returns a resolved column.
func Found(name string) Column {
	return Column{name: name, found: true}
}

// NotFound returns an unresolved column.
func NotFound() Column {
	return Column{}
}

// Name returns the matched header, or "" when not found.
func (c Column) Name() string { return c.name }

// Found reports whether a header matched.
func (c Column) Found() bool { return c.found }

// Resolver maps semantic names to table headers.
type Resolver struct {
	strategy  Strategy
	overrides map[string]string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithStrategy sets the matching strategy.
func WithStrategy(s Strategy) ResolverOption {
	return func(r *Resolver) {
		r.strategy = s
	}
}

// WithOverride pins a semantic name to an exact header, bypassing the strategy.
func WithOverride(semantic, column string) ResolverOption {
	return func(r *Resolver) {
		if r.overrides == nil {
			r.overrides = make(map[string]string)
		}
		r.overrides[semantic] = column
	}
}

// NewResolver creates a Resolver. The default strategy is StrategySubstring.
func NewResolver(opts ...ResolverOption) Resolver {
	r := Resolver{strategy: StrategySubstring}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Resolve finds the header for a semantic name.
func (r Resolver) Resolve(columns []string, semantic string) Column {
	if name, ok := r.overrides[semantic]; ok {
		for _, c := range columns {
			if c == name {
				return Found(c)
			}
		}
		return NotFound()
	}

	needle := strings.ToLower(semantic)
	for _, c := range columns {
		lower := strings.ToLower(c)
		switch r.strategy {
		case StrategyExact:
			if lower == needle {
				return Found(c)
			}
		default:
			if strings.Contains(lower, needle) {
				return Found(c)
			}
		}
	}
	return NotFound()
}

// Coordinates holds the resolved coordinate and build columns of a table.
type Coordinates struct {
	Chrom Column
	Start Column
	End   Column
	Build Column
}

// PointRegions reports whether start is reused as end.
func (c Coordinates) PointRegions() bool {
	return c.Start.Name() == c.End.Name()
}

// Names returns the distinct coordinate header names in chrom, start, end order.
func (c Coordinates) Names() []string {
	names := []string{c.Chrom.Name(), c.Start.Name()}
	if !c.PointRegions() {
		names = append(names, c.End.Name())
	}
	return names
}

// Coordinates resolves chrom, start, end and build columns. A missing end
// column falls back to the start column. Missing chrom or start columns are
// an error; a missing build column is not.
func (r Resolver) Coordinates(columns []string) (Coordinates, error) {
	coords := Coordinates{
		Chrom: r.Resolve(columns, Chrom),
		Start: r.Resolve(columns, Start),
		End:   r.Resolve(columns, End),
		Build: r.Resolve(columns, Build),
	}
	if !coords.Chrom.Found() {
		return Coordinates{}, fmt.Errorf("%w: no chromosome column in %v", ErrMissingColumn, columns)
	}
	if !coords.Start.Found() {
		return Coordinates{}, fmt.Errorf("%w: no start column in %v", ErrMissingColumn, columns)
	}
	if !coords.End.Found() {
		coords.End = coords.Start
	}
	return coords, nil
}
