package adapters

import (
	"context"
	"encoding/xml"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/sync/errgroup"

	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/types"
)

const packageXMLWorkers = 8

type PackageXMLAdapter struct {
	mu    sync.Mutex
	cache map[string]packageXMLCacheEntry
}

func NewPackageXMLAdapter() *PackageXMLAdapter {
	return &PackageXMLAdapter{cache: map[string]packageXMLCacheEntry{}}
}

type packageXML struct {
	Name    string       `xml:"name"`
	Version string       `xml:"version"`
	URLs    []packageURL `xml:"url"`

	// Format 1 and format 2/3 dependency tags (REP-127, REP-140, REP-149).
	Depend            []simpleDepend `xml:"depend"`
	BuildDepend       []simpleDepend `xml:"build_depend"`
	BuildtoolDepend   []simpleDepend `xml:"buildtool_depend"`
	BuildExportDepend []simpleDepend `xml:"build_export_depend"`
	ExecDepend        []simpleDepend `xml:"exec_depend"`
	RunDepend         []simpleDepend `xml:"run_depend"`
	TestDepend        []simpleDepend `xml:"test_depend"`
	DocDepend         []simpleDepend `xml:"doc_depend"`
}

type packageURL struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type simpleDepend struct {
	Value string `xml:",chardata"`
}

type packageXMLCacheEntry struct {
	modTime time.Time
	pkg     types.WorkspacePackage
}

// ParsePackages parses every file concurrently and returns the packages in
// the order of paths.
func (a *PackageXMLAdapter) ParsePackages(ctx context.Context, paths []string) ([]types.WorkspacePackage, error) {
	packages := make([]types.WorkspacePackage, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(packageXMLWorkers)
	for i, path := range paths {
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			pkg, err := a.loadPackageXML(path)
			if err != nil {
				return err
			}
			packages[i] = pkg
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return packages, nil
}

func (a *PackageXMLAdapter) loadPackageXML(path string) (types.WorkspacePackage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.WorkspacePackage{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.xml").
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry.pkg, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return types.WorkspacePackage{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.xml").
			WithCause(err)
	}
	var parsed packageXML
	if err := xml.Unmarshal(content, &parsed); err != nil {
		return types.WorkspacePackage{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package.xml").
			WithCause(err)
	}
	pkg := types.WorkspacePackage{
		Path:          path,
		Name:          strings.TrimSpace(parsed.Name),
		Version:       strings.TrimSpace(parsed.Version),
		RepositoryURL: repositoryURL(parsed.URLs),
		Dependencies:  collectDependencies(&parsed),
	}
	if pkg.Name == "" {
		return types.WorkspacePackage{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package.xml has no name: " + path)
	}

	a.mu.Lock()
	a.cache[path] = packageXMLCacheEntry{modTime: info.ModTime(), pkg: pkg}
	a.mu.Unlock()
	return pkg, nil
}

func repositoryURL(urls []packageURL) string {
	for _, candidate := range urls {
		if strings.TrimSpace(candidate.Type) == "repository" {
			return strings.TrimSpace(candidate.Value)
		}
	}
	return ""
}

// collectDependencies maps the package.xml tags onto dependency kinds.
// <depend> expands to build, build_export and run; format 1 <run_depend>
// and format 2 <exec_depend> are both run dependencies.
func collectDependencies(pkg *packageXML) []types.DependencyRef {
	var deps []types.DependencyRef
	add := func(tags []simpleDepend, kinds ...types.DependencyKind) {
		for _, tag := range tags {
			name := strings.TrimSpace(tag.Value)
			if name == "" {
				continue
			}
			for _, kind := range kinds {
				deps = append(deps, types.DependencyRef{Name: name, Kind: kind})
			}
		}
	}
	add(pkg.Depend, types.DependencyKindBuild, types.DependencyKindBuildExport, types.DependencyKindRun)
	add(pkg.BuildDepend, types.DependencyKindBuild)
	add(pkg.BuildtoolDepend, types.DependencyKindBuildtool)
	add(pkg.BuildExportDepend, types.DependencyKindBuildExport)
	add(pkg.ExecDepend, types.DependencyKindRun)
	add(pkg.RunDepend, types.DependencyKindRun)
	add(pkg.TestDepend, types.DependencyKindTest)
	add(pkg.DocDepend, types.DependencyKindDoc)
	return deps
}

var _ ports.PackageXMLPort = (*PackageXMLAdapter)(nil)
