// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// FixtureIndex returns the path of the sample distribution index.
func FixtureIndex(t *testing.T) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "fixtures", "distribution", "index.yaml")
}

// FixtureDistributionFiles lists every file of the sample distribution
// tree relative to its root.
func FixtureDistributionFiles(t *testing.T) []string {
	t.Helper()
	root := filepath.Join(RepoRoot(t), "fixtures", "distribution")
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}
