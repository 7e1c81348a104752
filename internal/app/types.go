package app

import (
	"io"

	"rosinstall-gen/internal/core"
	"rosinstall-gen/internal/types"
)

// CatalogSource selects the distribution a request operates on.
type CatalogSource struct {
	Config       types.CatalogConfig
	Distribution string

	// File loads a single local distribution file instead of going
	// through the index.
	File string
}

type GenerateRequest struct {
	Source CatalogSource

	// Packages are package names, each optionally suffixed with
	// @devel, @latest, @master or @<version>.
	Packages []string
	Kinds    []string
	Variant  types.ManifestVariant

	// SkipDependencies emits only the requested packages.
	SkipDependencies bool

	OutputPath string
	Stdout     io.Writer
}

type GenerateResult struct {
	Distribution string
	Count        int
	Digest       string
	OutputPath   string
}

type DepsRequest struct {
	Source   CatalogSource
	Packages []string
	Kinds    []string
}

type DepsResult struct {
	Distribution string
	Packages     []string
}

type ValidateRequest struct {
	Source CatalogSource

	// Distributions to check; empty means every distribution in the index.
	Distributions []string
}

type DistributionReport struct {
	Name     string
	Packages int
	Dangling []core.DanglingReference
}

type ValidateResult struct {
	Reports []DistributionReport
}

// Dangling counts dangling references across all reports.
func (r ValidateResult) Dangling() int {
	total := 0
	for _, report := range r.Reports {
		total += len(report.Dangling)
	}
	return total
}

type ImportRequest struct {
	Workspace []string
	Name      string
	Output    string

	// Base is an optional distribution file the workspace packages are
	// layered on top of.
	Base string

	// Branch pins every imported package to this branch instead of its
	// version tag.
	Branch string

	// URLPrefix builds <prefix><name>.git for packages without a
	// repository url.
	URLPrefix string
}

type ImportResult struct {
	OutputPath string
	Imported   []string
	Total      int
	Dangling   int
}
