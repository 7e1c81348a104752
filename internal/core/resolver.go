package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/types"
)

// Resolver computes dependency closures over a catalog.
type Resolver struct {
	Catalog ports.CatalogPort
}

func NewResolver(catalog ports.CatalogPort) Resolver {
	return Resolver{Catalog: catalog}
}

type pending struct {
	name       string
	requiredBy string
}

// Resolve returns the roots together with every package reachable from them
// through dependencies of the requested kinds.  A name missing from the
// catalog fails the whole request with an UnknownPackageError.
func (r Resolver) Resolve(ctx context.Context, req types.ResolutionRequest) (types.ResolutionResult, error) {
	if r.Catalog == nil {
		return types.ResolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a catalog")
	}
	kinds, err := kindSet(req.Kinds)
	if err != nil {
		return types.ResolutionResult{}, err
	}
	roots, err := normalizeRoots(req.Roots)
	if err != nil {
		return types.ResolutionResult{}, err
	}

	visited := make(map[string]struct{}, len(roots))
	queue := make([]pending, 0, len(roots))
	for _, root := range roots {
		visited[root] = struct{}{}
		queue = append(queue, pending{name: root})
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		record, err := r.lookup(next)
		if err != nil {
			return types.ResolutionResult{}, err
		}
		for _, dep := range record.DependenciesOf(kinds) {
			if _, seen := visited[dep]; seen {
				continue
			}
			visited[dep] = struct{}{}
			queue = append(queue, pending{name: dep, requiredBy: next.name})
		}
	}

	names := make([]string, 0, len(visited))
	for name := range visited {
		names = append(names, name)
	}
	sort.Strings(names)
	log.Ctx(ctx).Debug().
		Str("distribution", r.Catalog.Name()).
		Int("roots", len(roots)).
		Int("resolved", len(names)).
		Msg("dependency closure computed")
	return types.ResolutionResult{Names: names}, nil
}

// DependsOn returns every package that transitively depends on one of the
// roots through dependencies of the requested kinds.  Roots are excluded
// from the result and must exist in the catalog.
func (r Resolver) DependsOn(ctx context.Context, req types.ResolutionRequest) (types.ResolutionResult, error) {
	if r.Catalog == nil {
		return types.ResolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a catalog")
	}
	kinds, err := kindSet(req.Kinds)
	if err != nil {
		return types.ResolutionResult{}, err
	}
	roots, err := normalizeRoots(req.Roots)
	if err != nil {
		return types.ResolutionResult{}, err
	}
	for _, root := range roots {
		if _, err := r.lookup(pending{name: root}); err != nil {
			return types.ResolutionResult{}, err
		}
	}

	dependents := map[string][]string{}
	for _, name := range r.Catalog.Names() {
		record, err := r.Catalog.Lookup(name)
		if err != nil {
			return types.ResolutionResult{}, err
		}
		for _, dep := range record.DependenciesOf(kinds) {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	visited := make(map[string]struct{}, len(roots))
	queue := make([]string, 0, len(roots))
	for _, root := range roots {
		visited[root] = struct{}{}
		queue = append(queue, root)
	}
	var names []string
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, parent := range dependents[next] {
			if _, seen := visited[parent]; seen {
				continue
			}
			visited[parent] = struct{}{}
			names = append(names, parent)
			queue = append(queue, parent)
		}
	}
	sort.Strings(names)
	log.Ctx(ctx).Debug().
		Str("distribution", r.Catalog.Name()).
		Int("roots", len(roots)).
		Int("dependents", len(names)).
		Msg("reverse dependencies computed")
	return types.ResolutionResult{Names: names}, nil
}

func (r Resolver) lookup(next pending) (types.PackageRecord, error) {
	record, err := r.Catalog.Lookup(next.name)
	if err == nil {
		return record, nil
	}
	var unknown *types.UnknownPackageError
	if errors.As(err, &unknown) {
		return types.PackageRecord{}, &types.UnknownPackageError{Name: next.name, RequiredBy: next.requiredBy}
	}
	return types.PackageRecord{}, err
}

func kindSet(kinds []types.DependencyKind) (map[types.DependencyKind]struct{}, error) {
	set := make(map[types.DependencyKind]struct{}, len(kinds))
	for _, kind := range kinds {
		if !kind.Valid() {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown dependency kind %q", kind))
		}
		set[kind] = struct{}{}
	}
	return set, nil
}

// normalizeRoots trims and deduplicates root names, keeping first-seen order.
func normalizeRoots(values []string) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	roots := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("package name is empty")
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		roots = append(roots, name)
	}
	return roots, nil
}
