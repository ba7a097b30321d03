// Package genome defines reference-genome builds and coordinate types.
package genome

import (
	"errors"
	"fmt"
)

// ErrInvalidBuild indicates a build token outside the supported set.
var ErrInvalidBuild = errors.New("invalid build")

// Build identifies a reference-genome assembly.
type Build string

// Supported builds. Tokens are lowercase and case-sensitive.
const (
	GRCh37 Build = "grch37"
	GRCh38 Build = "grch38"
	HG19   Build = "hg19"
	HG38   Build = "hg38"
)

// labels maps each build to the name written into build-label columns.
var labels = map[Build]string{
	GRCh37: "GRCh37",
	GRCh38: "GRCh38",
	HG19:   "hg19",
	HG38:   "hg38",
}

// Builds returns every supported build in a stable order.
func Builds() []Build {
	return []Build{GRCh37, GRCh38, HG19, HG38}
}

// ParseBuild validates a build token.
func ParseBuild(s string) (Build, error) {
	b := Build(s)
	if !b.Valid() {
		if s == "" {
			return "", fmt.Errorf("%w: build is unset", ErrInvalidBuild)
		}
		return "", fmt.Errorf("%w: %q (valid: grch37, grch38, hg19, hg38)", ErrInvalidBuild, s)
	}
	return b, nil
}

// Valid reports whether b is a supported build.
func (b Build) Valid() bool {
	_, ok := labels[b]
	return ok
}

// Label returns the display name used for build-label columns.
func (b Build) Label() string {
	return labels[b]
}

// String returns the build token.
func (b Build) String() string {
	return string(b)
}
