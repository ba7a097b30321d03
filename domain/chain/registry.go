// Package chain resolves the sequence of chain (mapping) files needed to move
// coordinates from one build to another.
package chain

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"gopkg.in/yaml.v3"
)

// Errors returned by chain resolution.
var (
	ErrSameBuild             = errors.New("source and target build are the same")
	ErrMissingChainParameter = errors.New("at least one chain file is required")
	ErrUnknownPair           = errors.New("no chain defined for build pair")
)

//go:embed chains.yaml
var defaultDefinition []byte

// Registry maps (source, target) build pairs to ordered chain file names.
// A Registry is immutable once built.
type Registry struct {
	hops map[genome.Build]map[genome.Build][]string
}

// Default returns the built-in registry covering every ordered pair of
// supported builds.
func Default() Registry {
	r, err := Parse(defaultDefinition)
	if err != nil {
		panic(fmt.Sprintf("embedded chain definition: %v", err))
	}
	return r
}

// Parse builds a Registry from a YAML document of the form
// source -> target -> [chain files].
func Parse(data []byte) (Registry, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Registry{}, fmt.Errorf("parse chain definition: %w", err)
	}

	hops := make(map[genome.Build]map[genome.Build][]string, len(raw))
	for src, targets := range raw {
		source, err := genome.ParseBuild(src)
		if err != nil {
			return Registry{}, fmt.Errorf("chain definition source: %w", err)
		}
		hops[source] = make(map[genome.Build][]string, len(targets))
		for tgt, files := range targets {
			target, err := genome.ParseBuild(tgt)
			if err != nil {
				return Registry{}, fmt.Errorf("chain definition target: %w", err)
			}
			if len(files) == 0 {
				return Registry{}, fmt.Errorf("%s -> %s: %w", source, target, ErrMissingChainParameter)
			}
			hops[source][target] = append([]string(nil), files...)
		}
	}
	return Registry{hops: hops}, nil
}

// Resolve returns the ordered chain file names for converting source to
// target. The returned slice is a copy and may be modified by the caller.
func (r Registry) Resolve(source, target string) ([]string, error) {
	src, err := genome.ParseBuild(source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	tgt, err := genome.ParseBuild(target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	return r.ResolveBuilds(src, tgt)
}

// ResolveBuilds is Resolve for already-validated builds.
func (r Registry) ResolveBuilds(source, target genome.Build) ([]string, error) {
	if source == target {
		return nil, fmt.Errorf("%w: %s", ErrSameBuild, source)
	}
	files, ok := r.hops[source][target]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownPair, source, target)
	}
	if len(files) == 0 {
		return nil, ErrMissingChainParameter
	}
	return append([]string(nil), files...), nil
}

// Files returns every distinct chain file name referenced by the registry,
// sorted by name.
func (r Registry) Files() []string {
	seen := make(map[string]struct{})
	for _, targets := range r.hops {
		for _, files := range targets {
			for _, f := range files {
				seen[f] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for f := range seen {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// Pair is one source/target entry of the registry.
type Pair struct {
	Source genome.Build `yaml:"source" json:"source"`
	Target genome.Build `yaml:"target" json:"target"`
	Chains []string     `yaml:"chains" json:"chains"`
}

// Pairs lists every defined pair in build order.
func (r Registry) Pairs() []Pair {
	var pairs []Pair
	for _, src := range genome.Builds() {
		for _, tgt := range genome.Builds() {
			files, ok := r.hops[src][tgt]
			if !ok {
				continue
			}
			pairs = append(pairs, Pair{Source: src, Target: tgt, Chains: append([]string(nil), files...)})
		}
	}
	return pairs
}
