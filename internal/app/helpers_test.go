package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rosinstall-gen/internal/types"
)

func fixturesDir(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "fixtures"))
	require.NoError(t, err)
	return root
}

func fixtureSource(t *testing.T, distro string) CatalogSource {
	t.Helper()
	return CatalogSource{
		Config: types.CatalogConfig{
			IndexURL: filepath.Join(fixturesDir(t), "distribution", "index.yaml"),
		},
		Distribution: distro,
	}
}

// roscppClosure is the build+run closure of roscpp in the hydro fixture.
var roscppClosure = []string{
	"catkin",
	"cpp_common",
	"genmsg",
	"message_generation",
	"message_runtime",
	"roscpp",
	"roscpp_serialization",
	"roscpp_traits",
	"rostime",
	"std_msgs",
}
