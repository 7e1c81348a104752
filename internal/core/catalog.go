package core

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/types"
)

// Catalog is the validated, read-only package index of one distribution
// snapshot.
type Catalog struct {
	name    string
	records map[string]types.PackageRecord
	names   []string
}

// DanglingReference is a dependency edge whose target has no catalog entry.
type DanglingReference struct {
	From string
	Name string
	Kind types.DependencyKind
}

// NewCatalog validates a distribution snapshot and builds its catalog.
// Dependency names are not required to exist; resolution reports them.
func NewCatalog(snapshot types.DistributionSnapshot) (Catalog, error) {
	distro := strings.TrimSpace(snapshot.Name)
	if distro == "" {
		distro = strings.TrimSpace(snapshot.Release.Name)
	}
	if distro == "" {
		return Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution name is empty")
	}
	if err := checkFileType(snapshot.Release.Type, types.DistributionFileType); err != nil {
		return Catalog{}, err
	}

	catalog := Catalog{
		name:    distro,
		records: make(map[string]types.PackageRecord, len(snapshot.Release.Packages)),
	}
	for _, name := range sortedKeys(snapshot.Release.Packages) {
		record, err := buildRecord(distro, name, snapshot.Release.Packages[name])
		if err != nil {
			return Catalog{}, err
		}
		catalog.records[name] = record
		catalog.names = append(catalog.names, name)
	}

	if snapshot.Devel != nil {
		if err := checkFileType(snapshot.Devel.Type, types.DevelFileType); err != nil {
			return Catalog{}, err
		}
		for _, name := range sortedKeys(snapshot.Devel.Packages) {
			record, ok := catalog.records[name]
			if !ok {
				return Catalog{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("devel source for unknown package %s", name))
			}
			devel, err := buildSource(name, snapshot.Devel.Packages[name], "")
			if err != nil {
				return Catalog{}, err
			}
			record.Devel = &devel
			catalog.records[name] = record
		}
	}
	return catalog, nil
}

func (c Catalog) Name() string {
	return c.name
}

func (c Catalog) Len() int {
	return len(c.records)
}

// Names returns every package name in lexicographic order.
func (c Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Lookup returns a copy of the named record or an UnknownPackageError.
func (c Catalog) Lookup(name string) (types.PackageRecord, error) {
	record, ok := c.records[name]
	if !ok {
		return types.PackageRecord{}, &types.UnknownPackageError{Name: name}
	}
	record.Dependencies = slices.Clone(record.Dependencies)
	if record.Devel != nil {
		devel := *record.Devel
		record.Devel = &devel
	}
	return record, nil
}

// DanglingReferences lists dependency edges pointing outside the catalog,
// ordered by referring package.
func (c Catalog) DanglingReferences() []DanglingReference {
	var dangling []DanglingReference
	for _, name := range c.names {
		for _, dep := range c.records[name].Dependencies {
			if _, ok := c.records[dep.Name]; ok {
				continue
			}
			dangling = append(dangling, DanglingReference{From: name, Name: dep.Name, Kind: dep.Kind})
		}
	}
	return dangling
}

// Newer reports whether candidate's version is newer than the catalog's
// entry for the same package. Unknown packages count as newer.
func (c Catalog) Newer(candidate types.PackageRecord) bool {
	current, ok := c.records[candidate.Name]
	if !ok {
		return true
	}
	return compareReleaseVersions(candidate.Version, current.Version) > 0
}

func buildRecord(distro string, name string, entry types.PackageEntry) (types.PackageRecord, error) {
	if err := validatePackageName(name); err != nil {
		return types.PackageRecord{}, err
	}
	version := strings.TrimSpace(entry.Version)
	if err := validateReleaseVersion(name, version); err != nil {
		return types.PackageRecord{}, err
	}
	release, err := buildSource(name, entry.Source, releaseTag(distro, name, version))
	if err != nil {
		return types.PackageRecord{}, err
	}
	deps, err := buildDependencies(name, entry.Dependencies)
	if err != nil {
		return types.PackageRecord{}, err
	}
	return types.PackageRecord{
		Name:         name,
		Version:      version,
		Release:      release,
		Dependencies: deps,
	}, nil
}

func buildSource(name string, entry types.SourceEntry, defaultRevision string) (types.SourceLocation, error) {
	sourceType := types.SourceType(strings.ToLower(strings.TrimSpace(string(entry.Type))))
	if sourceType == "" {
		sourceType = types.SourceTypeGit
	}
	if !sourceType.Valid() {
		return types.SourceLocation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has unsupported source type %q", name, entry.Type))
	}
	url := strings.TrimSpace(entry.URL)
	if url == "" {
		return types.SourceLocation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has no source url", name))
	}
	revision := strings.TrimSpace(entry.Version)
	if revision == "" {
		revision = defaultRevision
	}
	if revision == "" {
		return types.SourceLocation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has no source version", name))
	}
	return types.SourceLocation{Type: sourceType, URL: url, Revision: revision}, nil
}

func buildDependencies(name string, declared map[types.DependencyKind][]string) ([]types.DependencyRef, error) {
	for kind := range declared {
		if !kind.Valid() {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package %s declares unknown dependency kind %q", name, kind))
		}
	}
	var deps []types.DependencyRef
	for _, kind := range types.DependencyKinds {
		seen := map[string]struct{}{}
		for _, raw := range declared[kind] {
			dep := strings.TrimSpace(raw)
			if dep == "" {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("package %s has an empty %s dependency", name, kind))
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			deps = append(deps, types.DependencyRef{Name: dep, Kind: kind})
		}
	}
	return deps, nil
}

func validatePackageName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\n/") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package name %q", name))
	}
	return nil
}

func checkFileType(got string, want string) error {
	if got == "" || got == want {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unexpected file type %q (want %q)", got, want))
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.CatalogPort = Catalog{}
