package types

// WorkspacePackage is the subset of a package.xml needed to describe the
// package in a distribution file.
type WorkspacePackage struct {
	Path          string
	Name          string
	Version       string
	RepositoryURL string
	Dependencies  []DependencyRef
}
