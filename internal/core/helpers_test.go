package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rosinstall-gen/internal/types"
)

type testPackage struct {
	build []string
	run   []string
	test  []string
}

func testCatalog(t *testing.T, packages map[string]testPackage) Catalog {
	t.Helper()
	file := types.DistributionFile{
		Type:     types.DistributionFileType,
		Name:     "hydro",
		Packages: map[string]types.PackageEntry{},
	}
	for name, pkg := range packages {
		deps := map[types.DependencyKind][]string{}
		if len(pkg.build) > 0 {
			deps[types.DependencyKindBuild] = pkg.build
		}
		if len(pkg.run) > 0 {
			deps[types.DependencyKindRun] = pkg.run
		}
		if len(pkg.test) > 0 {
			deps[types.DependencyKindTest] = pkg.test
		}
		file.Packages[name] = types.PackageEntry{
			Version: "1.0.0-0",
			Source: types.SourceEntry{
				Type: types.SourceTypeGit,
				URL:  "https://github.com/ros-gbp/" + name + "-release.git",
			},
			Dependencies: deps,
		}
	}
	catalog, err := NewCatalog(types.DistributionSnapshot{Name: "hydro", Release: file})
	require.NoError(t, err)
	return catalog
}
