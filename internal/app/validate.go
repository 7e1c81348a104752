package app

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosinstall-gen/internal/core"
)

// Validate loads each requested distribution and reports dependency
// references that point outside its catalog.  A distribution that fails
// to load aborts validation with its CatalogLoadError.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if strings.TrimSpace(req.Source.File) != "" {
		catalog, err := s.LoadCatalog(ctx, req.Source)
		if err != nil {
			return ValidateResult{}, err
		}
		return ValidateResult{Reports: []DistributionReport{reportFor(ctx, catalog)}}, nil
	}

	distros, err := s.distributionsToValidate(ctx, req)
	if err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{Reports: make([]DistributionReport, 0, len(distros))}
	for _, distro := range distros {
		source := req.Source
		source.Distribution = distro
		catalog, err := s.LoadCatalog(ctx, source)
		if err != nil {
			return ValidateResult{}, err
		}
		result.Reports = append(result.Reports, reportFor(ctx, catalog))
	}
	return result, nil
}

func (s Service) distributionsToValidate(ctx context.Context, req ValidateRequest) ([]string, error) {
	var distros []string
	for _, name := range req.Distributions {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			distros = append(distros, trimmed)
		}
	}
	if single := strings.TrimSpace(req.Source.Distribution); single != "" {
		distros = append(distros, single)
	}
	if len(distros) > 0 {
		sort.Strings(distros)
		return slices.Compact(distros), nil
	}
	if s.Sources == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no distribution source configured")
	}
	source, err := s.source(req.Source.Config)
	if err != nil {
		return nil, err
	}
	return source.ListDistributions(ctx)
}

func reportFor(ctx context.Context, catalog core.Catalog) DistributionReport {
	dangling := catalog.DanglingReferences()
	for _, ref := range dangling {
		log.Ctx(ctx).Warn().
			Str("distribution", catalog.Name()).
			Str("package", ref.From).
			Str("dependency", ref.Name).
			Str("kind", string(ref.Kind)).
			Msg("dependency has no catalog entry")
	}
	return DistributionReport{
		Name:     catalog.Name(),
		Packages: catalog.Len(),
		Dangling: dangling,
	}
}
