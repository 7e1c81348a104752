package types

type DependencyKind string

const (
	DependencyKindBuild       DependencyKind = "build"
	DependencyKindBuildtool   DependencyKind = "buildtool"
	DependencyKindBuildExport DependencyKind = "build_export"
	DependencyKindRun         DependencyKind = "run"
	DependencyKindTest        DependencyKind = "test"
	DependencyKindDoc         DependencyKind = "doc"
)

// DependencyKinds lists every known kind in canonical order.  Records keep
// their dependencies grouped in this order.
var DependencyKinds = []DependencyKind{
	DependencyKindBuild,
	DependencyKindBuildtool,
	DependencyKindBuildExport,
	DependencyKindRun,
	DependencyKindTest,
	DependencyKindDoc,
}

func (k DependencyKind) Valid() bool {
	for _, known := range DependencyKinds {
		if k == known {
			return true
		}
	}
	return false
}

type SourceType string

const (
	SourceTypeGit SourceType = "git"
	SourceTypeHg  SourceType = "hg"
	SourceTypeSvn SourceType = "svn"
	SourceTypeTar SourceType = "tar"
)

func (t SourceType) Valid() bool {
	switch t {
	case SourceTypeGit, SourceTypeHg, SourceTypeSvn, SourceTypeTar:
		return true
	default:
		return false
	}
}

// ManifestVariant selects which source descriptor a manifest pins.
type ManifestVariant string

const (
	ManifestVariantRelease ManifestVariant = "release"
	ManifestVariantDevel   ManifestVariant = "devel"

	// ManifestVariantLatest checks out the release repository's master
	// branch.
	ManifestVariantLatest ManifestVariant = "latest"

	// ManifestVariantVersion pins the release tag of an explicit version.
	// It needs a version and only appears in a SourceSelector.
	ManifestVariantVersion ManifestVariant = "version"
)

func (v ManifestVariant) Valid() bool {
	switch v {
	case ManifestVariantRelease, ManifestVariantDevel, ManifestVariantLatest, ManifestVariantVersion:
		return true
	default:
		return false
	}
}
