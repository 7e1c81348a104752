package app

import (
	"sync"

	"rosinstall-gen/internal/adapters"
	"rosinstall-gen/internal/policies"
	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/types"
)

// SourceFactory builds the distribution source for one catalog
// configuration.
type SourceFactory func(config types.CatalogConfig) (ports.DistributionSourcePort, error)

type Service struct {
	Sources           SourceFactory
	Workspace         ports.WorkspacePort
	PackageXML        ports.PackageXMLPort
	DistributionFiles ports.DistributionFilePort
	Kinds             policies.KindPolicy
	Selectors         policies.SelectorPolicy

	// sources keeps one source per configuration so documents fetched by
	// one operation are served from the fetcher cache to the next.
	sources *sourceCache
}

func NewService() Service {
	return Service{
		Sources:           NewIndexSource,
		Workspace:         adapters.NewWorkspaceAdapter(),
		PackageXML:        adapters.NewPackageXMLAdapter(),
		DistributionFiles: adapters.NewDistributionFileAdapter(),
		Kinds:             policies.NewKindPolicy(),
		Selectors:         policies.NewSelectorPolicy(),
		sources:           newSourceCache(),
	}
}

// NewIndexSource reads distributions through the index at
// config.IndexURL, fetching local paths from disk and http(s) locations
// over the network.
func NewIndexSource(config types.CatalogConfig) (ports.DistributionSourcePort, error) {
	fetcher, err := adapters.NewLocationFetcherAdapter(config)
	if err != nil {
		return nil, err
	}
	return adapters.NewDistributionIndexAdapter(config.IndexURL, fetcher), nil
}

type sourceCache struct {
	mu       sync.Mutex
	byConfig map[types.CatalogConfig]ports.DistributionSourcePort
}

func newSourceCache() *sourceCache {
	return &sourceCache{byConfig: map[types.CatalogConfig]ports.DistributionSourcePort{}}
}

// source returns the distribution source for config, building it on first
// use.  A Service without a cache builds a fresh source on every call.
func (s Service) source(config types.CatalogConfig) (ports.DistributionSourcePort, error) {
	if s.sources == nil {
		return s.Sources(config)
	}
	s.sources.mu.Lock()
	defer s.sources.mu.Unlock()
	if source, ok := s.sources.byConfig[config]; ok {
		return source, nil
	}
	source, err := s.Sources(config)
	if err != nil {
		return nil, err
	}
	s.sources.byConfig[config] = source
	return source, nil
}
