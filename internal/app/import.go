package app

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosinstall-gen/internal/core"
	"rosinstall-gen/internal/types"
)

const defaultImportName = "workspace"

// Import scans workspaces for package.xml files and writes a distribution
// file describing them, optionally layered over a base distribution file.
func (s Service) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return ImportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	packages, err := s.scanWorkspaces(ctx, req.Workspace)
	if err != nil {
		return ImportResult{}, err
	}

	file := types.DistributionFile{
		Type:     types.DistributionFileType,
		Packages: map[string]types.PackageEntry{},
	}
	var baseFile *types.DistributionFile
	if basePath := strings.TrimSpace(req.Base); basePath != "" {
		read, err := s.DistributionFiles.Read(basePath)
		if err != nil {
			return ImportResult{}, err
		}
		baseFile = &read
		file.Name = read.Name
		maps.Copy(file.Packages, read.Packages)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		file.Name = name
	}
	if file.Name == "" {
		file.Name = defaultImportName
	}
	var base *core.Catalog
	if baseFile != nil {
		baseName := baseFile.Name
		if baseName == "" {
			baseName = file.Name
		}
		catalog, err := core.NewCatalog(types.DistributionSnapshot{Name: baseName, Release: *baseFile})
		if err != nil {
			return ImportResult{}, err
		}
		base = &catalog
		// Pin derived release tags so they survive a rename.
		for _, name := range catalog.Names() {
			record, _ := catalog.Lookup(name)
			entry := file.Packages[name]
			entry.Source.Version = record.Release.Revision
			file.Packages[name] = entry
		}
	}

	imported := make([]string, 0, len(packages))
	for _, pkg := range packages {
		entry, err := workspaceEntry(pkg, strings.TrimSpace(req.Branch), strings.TrimSpace(req.URLPrefix))
		if err != nil {
			return ImportResult{}, err
		}
		if base != nil && !base.Newer(types.PackageRecord{Name: pkg.Name, Version: entry.Version}) {
			current, _ := base.Lookup(pkg.Name)
			log.Ctx(ctx).Warn().
				Str("package", pkg.Name).
				Str("workspace_version", entry.Version).
				Str("base_version", current.Version).
				Msg("workspace package is not newer than base entry")
		}
		file.Packages[pkg.Name] = entry
		imported = append(imported, pkg.Name)
	}

	catalog, err := core.NewCatalog(types.DistributionSnapshot{Name: file.Name, Release: file})
	if err != nil {
		return ImportResult{}, err
	}
	if err := s.DistributionFiles.Write(output, file); err != nil {
		return ImportResult{}, err
	}
	dangling := catalog.DanglingReferences()
	log.Ctx(ctx).Info().
		Str("output", output).
		Int("imported", len(imported)).
		Int("packages", catalog.Len()).
		Int("dangling", len(dangling)).
		Msg("workspace imported")
	return ImportResult{
		OutputPath: output,
		Imported:   imported,
		Total:      catalog.Len(),
		Dangling:   len(dangling),
	}, nil
}

func (s Service) scanWorkspaces(ctx context.Context, roots []string) ([]types.WorkspacePackage, error) {
	var paths []string
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		found, err := s.Workspace.FindPackageXML(root)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no package.xml found in workspace")
	}
	packages, err := s.PackageXML.ParsePackages(ctx, paths)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(packages))
	for _, pkg := range packages {
		if previous, ok := seen[pkg.Name]; ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("package %s found at %s and %s", pkg.Name, previous, pkg.Path))
		}
		seen[pkg.Name] = pkg.Path
	}
	return packages, nil
}

// workspaceEntry describes a workspace package as a release entry.  The
// upstream version gets a zero debian increment and doubles as the source
// tag unless a branch is given.
func workspaceEntry(pkg types.WorkspacePackage, branch string, urlPrefix string) (types.PackageEntry, error) {
	version := strings.TrimSpace(pkg.Version)
	if version == "" {
		return types.PackageEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has no version in %s", pkg.Name, pkg.Path))
	}
	url := strings.TrimSpace(pkg.RepositoryURL)
	if url == "" && urlPrefix != "" {
		url = urlPrefix + pkg.Name + ".git"
	}
	if url == "" {
		return types.PackageEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has no repository url; set one in package.xml or pass a url prefix", pkg.Name))
	}
	revision := branch
	if revision == "" {
		revision = version
	}
	releaseVersion := version
	if !strings.Contains(releaseVersion, "-") {
		releaseVersion += "-0"
	}

	var deps map[types.DependencyKind][]string
	for _, dep := range pkg.Dependencies {
		if deps == nil {
			deps = map[types.DependencyKind][]string{}
		}
		if slices.Contains(deps[dep.Kind], dep.Name) {
			continue
		}
		deps[dep.Kind] = append(deps[dep.Kind], dep.Name)
	}
	return types.PackageEntry{
		Version: releaseVersion,
		Source: types.SourceEntry{
			Type:    types.SourceTypeGit,
			URL:     url,
			Version: revision,
		},
		Dependencies: deps,
	}, nil
}
