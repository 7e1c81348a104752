package app

import (
	"context"

	"rosinstall-gen/internal/core"
	"rosinstall-gen/internal/types"
)

// Deps returns the packages whose sources are needed to build and run the
// requested packages, the requested packages included.
func (s Service) Deps(ctx context.Context, req DepsRequest) (DepsResult, error) {
	catalog, request, err := s.prepareResolution(ctx, req.Source, req.Packages, req.Kinds)
	if err != nil {
		return DepsResult{}, err
	}
	result, err := core.NewResolver(catalog).Resolve(ctx, request)
	if err != nil {
		return DepsResult{}, err
	}
	return DepsResult{Distribution: catalog.Name(), Packages: result.Names}, nil
}

// DependsOn returns the packages that transitively depend on any of the
// requested packages.
func (s Service) DependsOn(ctx context.Context, req DepsRequest) (DepsResult, error) {
	catalog, request, err := s.prepareResolution(ctx, req.Source, req.Packages, req.Kinds)
	if err != nil {
		return DepsResult{}, err
	}
	result, err := core.NewResolver(catalog).DependsOn(ctx, request)
	if err != nil {
		return DepsResult{}, err
	}
	return DepsResult{Distribution: catalog.Name(), Packages: result.Names}, nil
}

func (s Service) prepareResolution(ctx context.Context, source CatalogSource, packages []string, kindNames []string) (core.Catalog, types.ResolutionRequest, error) {
	kinds, err := s.Kinds.ResolveKinds(kindNames)
	if err != nil {
		return core.Catalog{}, types.ResolutionRequest{}, err
	}
	catalog, err := s.LoadCatalog(ctx, source)
	if err != nil {
		return core.Catalog{}, types.ResolutionRequest{}, err
	}
	return catalog, types.ResolutionRequest{Roots: packages, Kinds: kinds}, nil
}
