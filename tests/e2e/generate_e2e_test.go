package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rosinstall-gen/tests/testutil"
)

func TestGenerateCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	output := filepath.Join(t.TempDir(), "hydro.rosinstall")

	cmd := exec.Command("go", "run", "./cmd/rosinstall-gen", "generate",
		"--index", "fixtures/distribution/index.yaml",
		"--distribution", "hydro",
		"--output", output,
		"roscpp",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	require.FileExists(t, output)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, 10, strings.Count(string(data), "local-name:"))
	require.Contains(t, string(out), "wrote 10 entries for hydro")
}

func TestImportThenGenerateE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	distribution := filepath.Join(t.TempDir(), "my_robot.yaml")

	importCmd := exec.Command("go", "run", "./cmd/rosinstall-gen", "import",
		"--workspace", "fixtures/workspace",
		"--base", "fixtures/distribution/hydro/release.yaml",
		"--name", "my_robot",
		"--output", distribution,
	)
	importCmd.Dir = root
	out, err := importCmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "imported 2 packages")

	generateCmd := exec.Command("go", "run", "./cmd/rosinstall-gen", "generate",
		"--distribution-file", distribution,
		"my_robot_driver",
	)
	generateCmd.Dir = root
	manifest, err := generateCmd.Output()
	require.NoError(t, err)
	require.Contains(t, string(manifest), "local-name: my_robot_msgs")
	require.Contains(t, string(manifest), "uri: https://github.com/example/my_robot.git")
}

func TestGenerateUnknownPackageExitCodeE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	cmd := exec.Command("go", "run", "./cmd/rosinstall-gen", "generate",
		"--index", "fixtures/distribution/index.yaml",
		"--distribution", "hydro",
		"rosjava",
	)
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	require.Contains(t, string(out), `unknown package "rosjava"`)
}
