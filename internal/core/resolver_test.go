package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"rosinstall-gen/internal/types"
)

var buildOnly = []types.DependencyKind{types.DependencyKindBuild}

func TestResolverClosureByKind(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{
		"a": {build: []string{"b"}},
		"b": {},
	})
	resolver := NewResolver(catalog)

	tests := []struct {
		name  string
		kinds []types.DependencyKind
		want  []string
	}{
		{name: "build edges followed", kinds: buildOnly, want: []string{"a", "b"}},
		{name: "run edges only", kinds: []types.DependencyKind{types.DependencyKindRun}, want: []string{"a"}},
		{name: "no kinds keeps roots", kinds: nil, want: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resolver.Resolve(t.Context(), types.ResolutionRequest{Roots: []string{"a"}, Kinds: tt.kinds})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, result.Names); diff != "" {
				t.Fatalf("unexpected closure (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolverTransitiveAcrossKinds(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{
		"roscpp":         {build: []string{"catkin", "cpp_common"}, run: []string{"rosconsole"}},
		"cpp_common":     {build: []string{"catkin"}},
		"rosconsole":     {build: []string{"catkin"}, run: []string{"log4cxx_vendor"}},
		"log4cxx_vendor": {},
		"catkin":         {test: []string{"gtest_vendor"}},
		"gtest_vendor":   {},
		"unrelated":      {},
	})
	result, err := NewResolver(catalog).Resolve(t.Context(), types.ResolutionRequest{
		Roots: []string{"roscpp"},
		Kinds: []types.DependencyKind{types.DependencyKindBuild, types.DependencyKindRun},
	})
	require.NoError(t, err)
	want := []string{"catkin", "cpp_common", "log4cxx_vendor", "rosconsole", "roscpp"}
	if diff := cmp.Diff(want, result.Names); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
}

func TestResolverCycleTerminates(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{
		"a": {build: []string{"b"}},
		"b": {build: []string{"a"}},
		"c": {build: []string{"c"}},
	})
	resolver := NewResolver(catalog)

	result, err := resolver.Resolve(t.Context(), types.ResolutionRequest{Roots: []string{"a"}, Kinds: buildOnly})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"a", "b"}, result.Names); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}

	result, err = resolver.Resolve(t.Context(), types.ResolutionRequest{Roots: []string{"c"}, Kinds: buildOnly})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"c"}, result.Names); diff != "" {
		t.Fatalf("unexpected self-dependency closure (-want +got):\n%s", diff)
	}
}

func TestResolverEmptyRoots(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{"a": {build: []string{"b"}}, "b": {}})
	result, err := NewResolver(catalog).Resolve(t.Context(), types.ResolutionRequest{Kinds: buildOnly})
	require.NoError(t, err)
	require.Empty(t, result.Names)
}

func TestResolverResultIsSupersetOfRoots(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{
		"a": {build: []string{"c"}},
		"b": {run: []string{"c"}},
		"c": {},
	})
	roots := []string{"b", "a", "b"}
	result, err := NewResolver(catalog).Resolve(t.Context(), types.ResolutionRequest{Roots: roots, Kinds: buildOnly})
	require.NoError(t, err)
	for _, root := range roots {
		require.Contains(t, result.Names, root)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, result.Names); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
}

func TestResolverMissingDependency(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{"a": {build: []string{"z"}}})
	_, err := NewResolver(catalog).Resolve(t.Context(), types.ResolutionRequest{Roots: []string{"a"}, Kinds: buildOnly})
	require.Error(t, err)
	var unknown *types.UnknownPackageError
	require.True(t, errors.As(err, &unknown))
	if diff := cmp.Diff(types.UnknownPackageError{Name: "z", RequiredBy: "a"}, *unknown); diff != "" {
		t.Fatalf("unexpected error (-want +got):\n%s", diff)
	}
}

func TestResolverMissingDependencyIgnoredForOtherKinds(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{"a": {test: []string{"z"}}})
	result, err := NewResolver(catalog).Resolve(t.Context(), types.ResolutionRequest{Roots: []string{"a"}, Kinds: buildOnly})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"a"}, result.Names); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
}

func TestResolverUnknownRoot(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{"a": {}})
	_, err := NewResolver(catalog).Resolve(t.Context(), types.ResolutionRequest{Roots: []string{"a", "ghost"}, Kinds: buildOnly})
	var unknown *types.UnknownPackageError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "ghost", unknown.Name)
	require.Empty(t, unknown.RequiredBy)
}

func TestResolverRejectsInvalidInput(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{"a": {}})
	tests := []struct {
		name string
		req  types.ResolutionRequest
	}{
		{name: "blank root", req: types.ResolutionRequest{Roots: []string{" "}, Kinds: buildOnly}},
		{name: "unknown kind", req: types.ResolutionRequest{Roots: []string{"a"}, Kinds: []types.DependencyKind{"exec"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(catalog).Resolve(t.Context(), tt.req)
			require.Error(t, err)
			if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
		})
	}

	_, err := Resolver{}.Resolve(t.Context(), types.ResolutionRequest{})
	require.Error(t, err)
}

func TestResolverDependsOn(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{
		"catkin":     {},
		"cpp_common": {build: []string{"catkin"}},
		"roscpp":     {build: []string{"cpp_common"}},
		"rospy":      {run: []string{"catkin"}},
		"rviz":       {test: []string{"roscpp"}},
		"leaf":       {build: []string{"ghost"}},
	})
	resolver := NewResolver(catalog)

	result, err := resolver.DependsOn(t.Context(), types.ResolutionRequest{Roots: []string{"catkin"}, Kinds: buildOnly})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"cpp_common", "roscpp"}, result.Names); diff != "" {
		t.Fatalf("unexpected dependents (-want +got):\n%s", diff)
	}

	result, err = resolver.DependsOn(t.Context(), types.ResolutionRequest{
		Roots: []string{"catkin"},
		Kinds: []types.DependencyKind{types.DependencyKindBuild, types.DependencyKindRun, types.DependencyKindTest},
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"cpp_common", "roscpp", "rospy", "rviz"}, result.Names); diff != "" {
		t.Fatalf("unexpected dependents (-want +got):\n%s", diff)
	}

	_, err = resolver.DependsOn(t.Context(), types.ResolutionRequest{Roots: []string{"ghost"}, Kinds: buildOnly})
	var unknown *types.UnknownPackageError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "ghost", unknown.Name)
}

func TestResolverDependsOnCycle(t *testing.T) {
	catalog := testCatalog(t, map[string]testPackage{
		"a": {build: []string{"b"}},
		"b": {build: []string{"a"}},
	})
	result, err := NewResolver(catalog).DependsOn(t.Context(), types.ResolutionRequest{Roots: []string{"a"}, Kinds: buildOnly})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"b"}, result.Names); diff != "" {
		t.Fatalf("unexpected dependents (-want +got):\n%s", diff)
	}
}
