package ports

import "rosinstall-gen/internal/types"

// CatalogPort is a read-only package lookup.
type CatalogPort interface {
	Name() string
	Lookup(name string) (types.PackageRecord, error)
	Names() []string
}
