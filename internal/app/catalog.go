package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosinstall-gen/internal/core"
	"rosinstall-gen/internal/types"
)

// LoadCatalog loads and validates one distribution.  Every failure past
// argument checking is reported as a *types.CatalogLoadError.
func (s Service) LoadCatalog(ctx context.Context, source CatalogSource) (core.Catalog, error) {
	distro := strings.TrimSpace(source.Distribution)
	file := strings.TrimSpace(source.File)
	if file != "" {
		return s.loadCatalogFile(ctx, distro, file)
	}
	if distro == "" {
		return core.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution name is required")
	}
	if strings.TrimSpace(source.Config.IndexURL) == "" {
		return core.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution index is required")
	}
	if s.Sources == nil {
		return core.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no distribution source configured")
	}
	sourcePort, err := s.source(source.Config)
	if err != nil {
		return core.Catalog{}, &types.CatalogLoadError{Distribution: distro, Reason: "source unavailable", Err: err}
	}
	snapshot, err := sourcePort.LoadDistribution(ctx, distro)
	if err != nil {
		return core.Catalog{}, &types.CatalogLoadError{Distribution: distro, Reason: loadFailureReason(err), Err: err}
	}
	catalog, err := core.NewCatalog(snapshot)
	if err != nil {
		return core.Catalog{}, &types.CatalogLoadError{Distribution: distro, Reason: "invalid metadata", Err: err}
	}
	log.Ctx(ctx).Info().
		Str("distribution", catalog.Name()).
		Int("packages", catalog.Len()).
		Msg("catalog loaded")
	return catalog, nil
}

func (s Service) loadCatalogFile(ctx context.Context, distro string, path string) (core.Catalog, error) {
	label := distro
	if label == "" {
		label = path
	}
	if s.DistributionFiles == nil {
		return core.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no distribution file reader configured")
	}
	file, err := s.DistributionFiles.Read(path)
	if err != nil {
		return core.Catalog{}, &types.CatalogLoadError{Distribution: label, Reason: loadFailureReason(err), Err: err}
	}
	if distro != "" && file.Name != "" && file.Name != distro {
		return core.Catalog{}, &types.CatalogLoadError{
			Distribution: label,
			Reason:       "file describes distribution " + file.Name,
		}
	}
	catalog, err := core.NewCatalog(types.DistributionSnapshot{Name: distro, Release: file})
	if err != nil {
		return core.Catalog{}, &types.CatalogLoadError{Distribution: label, Reason: "invalid metadata", Err: err}
	}
	log.Ctx(ctx).Info().
		Str("distribution", catalog.Name()).
		Str("file", path).
		Int("packages", catalog.Len()).
		Msg("catalog loaded")
	return catalog, nil
}

func loadFailureReason(err error) string {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeNotFound:
		return "not found"
	case errbuilder.CodeInvalidArgument:
		return "malformed metadata"
	case errbuilder.CodePermissionDenied:
		return "access denied"
	default:
		return "metadata unreachable"
	}
}
