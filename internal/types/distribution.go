package types

// IndexFile is the top-level structure of a distribution index.  It maps
// distribution names to the metadata files describing them.
type IndexFile struct {
	Type          string                `yaml:"type"`
	Version       int                   `yaml:"version"`
	Distributions map[string]IndexEntry `yaml:"distributions"`
}

type IndexEntry struct {
	// Release is the location of the release distribution file.  Relative
	// paths resolve against the index location.
	Release string `yaml:"release"`

	// Devel optionally points at a devel file carrying development
	// branches for the distribution's packages.
	Devel string `yaml:"devel,omitempty"`
}

type SourceEntry struct {
	Type    SourceType `yaml:"type"`
	URL     string     `yaml:"url"`
	Version string     `yaml:"version,omitempty"`
}

type PackageEntry struct {
	Version string      `yaml:"version"`
	Source  SourceEntry `yaml:"source"`

	// Dependencies maps a dependency kind to the ordered list of package
	// names of that kind.
	Dependencies map[DependencyKind][]string `yaml:"dependencies,omitempty"`
}

// DistributionFile is a release distribution description.
type DistributionFile struct {
	Type     string                  `yaml:"type"`
	Name     string                  `yaml:"name"`
	Packages map[string]PackageEntry `yaml:"packages"`
}

// DevelFile lists development sources per package.
type DevelFile struct {
	Type     string                 `yaml:"type"`
	Packages map[string]SourceEntry `yaml:"packages"`
}

// DistributionSnapshot is the raw metadata of one distribution as fetched
// from its source, before validation.
type DistributionSnapshot struct {
	Name    string
	Release DistributionFile
	Devel   *DevelFile
}

const (
	IndexFileType        = "index"
	DistributionFileType = "distribution"
	DevelFileType        = "devel"
)
