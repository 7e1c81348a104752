package ports

import (
	"context"

	"rosinstall-gen/internal/types"
)

// PackageXMLPort parses package.xml files.
type PackageXMLPort interface {
	// ParsePackages reads name, version, repository url and the standard
	// dependency tags from each file.
	ParsePackages(ctx context.Context, paths []string) ([]types.WorkspacePackage, error)
}

// WorkspacePort discovers package.xml files within workspace roots.
type WorkspacePort interface {
	FindPackageXML(root string) ([]string, error)
}
