package adapters

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosinstall-gen/internal/types"
)

const testIndexYAML = `type: index
version: 1
distributions:
  hydro:
    release: hydro/release.yaml
    devel: hydro/devel.yaml
  indigo:
    release: indigo/release.yaml
`

const testHydroRelease = `type: distribution
name: hydro
packages:
  catkin:
    version: 0.5.77-0
    source:
      type: git
      url: https://github.com/ros-gbp/catkin-release.git
  roscpp:
    version: 1.9.50-0
    source:
      type: git
      url: https://github.com/ros-gbp/ros_comm-release.git
    dependencies:
      build: [catkin]
      run: [catkin]
`

const testHydroDevel = `type: devel
packages:
  catkin:
    type: git
    url: https://github.com/ros/catkin.git
    version: groovy-devel
`

func writeTestIndex(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.yaml":         testIndexYAML,
		"hydro/release.yaml": testHydroRelease,
		"hydro/devel.yaml":   testHydroDevel,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return filepath.Join(dir, "index.yaml")
}

func TestDistributionIndexAdapterLoadsFromFiles(t *testing.T) {
	adapter := NewDistributionIndexAdapter(writeTestIndex(t), NewFileFetcherAdapter())

	snapshot, err := adapter.LoadDistribution(t.Context(), "hydro")
	require.NoError(t, err)
	assert.Equal(t, "hydro", snapshot.Name)
	assert.Len(t, snapshot.Release.Packages, 2)
	roscpp := snapshot.Release.Packages["roscpp"]
	if diff := cmp.Diff(map[types.DependencyKind][]string{
		types.DependencyKindBuild: {"catkin"},
		types.DependencyKindRun:   {"catkin"},
	}, roscpp.Dependencies); diff != "" {
		t.Fatalf("unexpected dependencies (-want +got):\n%s", diff)
	}
	require.NotNil(t, snapshot.Devel)
	assert.Equal(t, "groovy-devel", snapshot.Devel.Packages["catkin"].Version)
}

func TestDistributionIndexAdapterListDistributions(t *testing.T) {
	adapter := NewDistributionIndexAdapter(writeTestIndex(t), NewFileFetcherAdapter())
	names, err := adapter.ListDistributions(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"hydro", "indigo"}, names)
}

func TestDistributionIndexAdapterErrors(t *testing.T) {
	indexPath := writeTestIndex(t)
	tests := []struct {
		name     string
		index    string
		distro   string
		mutate   func(t *testing.T, dir string)
		wantCode errbuilder.ErrCode
	}{
		{
			name:     "unknown distribution",
			index:    indexPath,
			distro:   "kinetic",
			wantCode: errbuilder.CodeNotFound,
		},
		{
			name:     "missing release file",
			index:    indexPath,
			distro:   "indigo",
			wantCode: errbuilder.CodeNotFound,
		},
		{
			name:     "missing index",
			index:    filepath.Join(t.TempDir(), "index.yaml"),
			distro:   "hydro",
			wantCode: errbuilder.CodeNotFound,
		},
		{
			name:     "empty index location",
			index:    "",
			distro:   "hydro",
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:   "unknown field in release file",
			distro: "hydro",
			mutate: func(t *testing.T, dir string) {
				content := testHydroRelease + "maintainers: [nobody]\n"
				require.NoError(t, os.WriteFile(filepath.Join(dir, "hydro", "release.yaml"), []byte(content), 0644))
			},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:   "release file for another distribution",
			distro: "hydro",
			mutate: func(t *testing.T, dir string) {
				content := "type: distribution\nname: groovy\npackages: {}\n"
				require.NoError(t, os.WriteFile(filepath.Join(dir, "hydro", "release.yaml"), []byte(content), 0644))
			},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:   "empty devel file",
			distro: "hydro",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "hydro", "devel.yaml"), nil, 0644))
			},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:   "index of wrong type",
			distro: "hydro",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "index.yaml"), []byte("type: distribution\n"), 0644))
			},
			wantCode: errbuilder.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := tt.index
			if tt.mutate != nil {
				index = writeTestIndex(t)
				tt.mutate(t, filepath.Dir(index))
			}
			adapter := NewDistributionIndexAdapter(index, NewFileFetcherAdapter())
			_, err := adapter.LoadDistribution(t.Context(), tt.distro)
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDistributionIndexAdapterResolvesRemoteRelativeLocations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rosdistro/index.yaml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testIndexYAML))
	})
	mux.HandleFunc("/rosdistro/hydro/release.yaml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testHydroRelease))
	})
	mux.HandleFunc("/rosdistro/hydro/devel.yaml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testHydroDevel))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	fetcher, err := NewLocationFetcherAdapter(testFetcherConfig())
	require.NoError(t, err)
	adapter := NewDistributionIndexAdapter(server.URL+"/rosdistro/index.yaml", fetcher)
	snapshot, err := adapter.LoadDistribution(t.Context(), "hydro")
	require.NoError(t, err)
	assert.Len(t, snapshot.Release.Packages, 2)
	require.NotNil(t, snapshot.Devel)
}

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{name: "relative to local index", base: "/srv/rosdistro/index.yaml", ref: "hydro/release.yaml", want: "/srv/rosdistro/hydro/release.yaml"},
		{name: "absolute path kept", base: "/srv/rosdistro/index.yaml", ref: "/data/release.yaml", want: "/data/release.yaml"},
		{name: "relative to remote index", base: "https://example.org/rosdistro/index.yaml", ref: "hydro/release.yaml", want: "https://example.org/rosdistro/hydro/release.yaml"},
		{name: "remote ref kept", base: "/srv/index.yaml", ref: "https://example.org/hydro.yaml", want: "https://example.org/hydro.yaml"},
		{name: "file url base", base: "file:///srv/index.yaml", ref: "hydro.yaml", want: "/srv/hydro.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLocation(tt.base, tt.ref))
		})
	}
}
