package types

// SourceLocation describes where a package's sources are checked out from.
type SourceLocation struct {
	Type SourceType
	URL  string

	// Revision is the pinned release tag, branch or commit.
	Revision string
}

type DependencyRef struct {
	Name string
	Kind DependencyKind
}

// PackageRecord is one validated catalog entry.  Records are built once at
// load time and never mutated afterwards.
type PackageRecord struct {
	Name    string
	Version string
	Release SourceLocation

	// Devel is nil when the distribution carries no development source for
	// the package.
	Devel *SourceLocation

	// Dependencies are grouped by kind in DependencyKinds order; within a
	// kind the declared order is kept.
	Dependencies []DependencyRef
}

// DependenciesOf returns the dependency names whose kind is in kinds.
func (r PackageRecord) DependenciesOf(kinds map[DependencyKind]struct{}) []string {
	var names []string
	for _, dep := range r.Dependencies {
		if _, ok := kinds[dep.Kind]; ok {
			names = append(names, dep.Name)
		}
	}
	return names
}

type ResolutionRequest struct {
	Roots []string
	Kinds []DependencyKind
}

// ResolutionResult holds the closure of a request, sorted by name.
type ResolutionResult struct {
	Names []string
}
