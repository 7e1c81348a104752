package ports

import (
	"context"

	"rosinstall-gen/internal/types"
)

// DocumentFetcherPort retrieves raw metadata documents by location.
type DocumentFetcherPort interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// DistributionSourcePort loads the raw metadata of a named distribution.
type DistributionSourcePort interface {
	LoadDistribution(ctx context.Context, name string) (types.DistributionSnapshot, error)
	ListDistributions(ctx context.Context) ([]string, error)
}

// DistributionFilePort reads and persists standalone distribution files.
type DistributionFilePort interface {
	Read(path string) (types.DistributionFile, error)
	Write(path string, file types.DistributionFile) error
}
