package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosinstall-gen/internal/adapters"
	"rosinstall-gen/internal/core"
	"rosinstall-gen/internal/types"
)

// Generate resolves the requested packages and writes a rosinstall
// manifest for the closure.  A requested package may carry its own source
// selector (name@devel, name@latest, name@<version>); dependencies follow
// req.Variant.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	roots, selectors, err := s.Selectors.ParseRoots(req.Packages)
	if err != nil {
		return GenerateResult{}, err
	}
	catalog, request, err := s.prepareResolution(ctx, req.Source, roots, req.Kinds)
	if err != nil {
		return GenerateResult{}, err
	}
	var names []string
	if req.SkipDependencies {
		names, err = lookupRoots(catalog, request.Roots)
	} else {
		var result types.ResolutionResult
		result, err = core.NewResolver(catalog).Resolve(ctx, request)
		names = result.Names
	}
	if err != nil {
		return GenerateResult{}, err
	}

	for name, selector := range selectors {
		log.Ctx(ctx).Debug().
			Str("package", name).
			Str("selector", string(selector.Variant)).
			Str("version", selector.Version).
			Msg("package source pinned")
	}
	emitter := core.NewManifestEmitter(req.Variant).WithOverrides(selectors)
	manifest, err := emitter.Emit(ctx, catalog, names)
	if err != nil {
		return GenerateResult{}, err
	}
	data, err := core.Render(manifest)
	if err != nil {
		return GenerateResult{}, err
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	output := adapters.NewManifestOutputAdapter(outputPath, req.Stdout)
	if err := output.WriteManifest(data); err != nil {
		return GenerateResult{}, err
	}
	digest := core.Digest(data)
	log.Ctx(ctx).Info().
		Str("distribution", manifest.Distribution).
		Str("variant", string(manifest.Variant)).
		Int("entries", len(manifest.Entries)).
		Str("digest", digest).
		Msg("manifest generated")
	return GenerateResult{
		Distribution: manifest.Distribution,
		Count:        len(manifest.Entries),
		Digest:       digest,
		OutputPath:   outputPath,
	}, nil
}

func lookupRoots(catalog core.Catalog, roots []string) ([]string, error) {
	names := make([]string, 0, len(roots))
	for _, root := range roots {
		name := strings.TrimSpace(root)
		if name == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("package name is empty")
		}
		if _, err := catalog.Lookup(name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
