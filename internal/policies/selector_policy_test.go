package policies

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"rosinstall-gen/internal/types"
)

func TestSelectorPolicyParseRoots(t *testing.T) {
	policy := NewSelectorPolicy()

	tests := []struct {
		name          string
		values        []string
		wantNames     []string
		wantSelectors map[string]types.SourceSelector
	}{
		{
			name:          "plain names",
			values:        []string{"roscpp", "catkin"},
			wantNames:     []string{"roscpp", "catkin"},
			wantSelectors: map[string]types.SourceSelector{},
		},
		{
			name:      "devel",
			values:    []string{"roscpp@devel"},
			wantNames: []string{"roscpp"},
			wantSelectors: map[string]types.SourceSelector{
				"roscpp": {Variant: types.ManifestVariantDevel},
			},
		},
		{
			name:      "latest and master are the same",
			values:    []string{"roscpp@latest", "catkin@MASTER"},
			wantNames: []string{"roscpp", "catkin"},
			wantSelectors: map[string]types.SourceSelector{
				"roscpp": {Variant: types.ManifestVariantLatest},
				"catkin": {Variant: types.ManifestVariantLatest},
			},
		},
		{
			name:      "explicit version",
			values:    []string{" roscpp@1.9.49-0 ", "std_msgs"},
			wantNames: []string{"roscpp", "std_msgs"},
			wantSelectors: map[string]types.SourceSelector{
				"roscpp": {Variant: types.ManifestVariantVersion, Version: "1.9.49-0"},
			},
		},
		{
			name:      "repeating the same selector",
			values:    []string{"roscpp@devel", "roscpp", "roscpp@devel"},
			wantNames: []string{"roscpp", "roscpp", "roscpp"},
			wantSelectors: map[string]types.SourceSelector{
				"roscpp": {Variant: types.ManifestVariantDevel},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, selectors, err := policy.ParseRoots(tt.values)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantNames, names); diff != "" {
				t.Fatalf("unexpected names (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantSelectors, selectors); diff != "" {
				t.Fatalf("unexpected selectors (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectorPolicyRejectsMalformedRoots(t *testing.T) {
	policy := NewSelectorPolicy()
	for _, values := range [][]string{
		{"@devel"},
		{"roscpp@"},
		{"roscpp@devel", "roscpp@latest"},
		{"roscpp@1.9.49-0", "roscpp@1.9.50-0"},
	} {
		_, _, err := policy.ParseRoots(values)
		require.Error(t, err, values)
		require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err), values)
	}
}
