package policies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosinstall-gen/internal/shared"
	"rosinstall-gen/internal/types"
)

const (
	KindPresetDefault = "default"
	KindPresetCompile = "compile"
	KindPresetAll     = "all"
)

// KindPolicy expands user supplied dependency kind names and presets into
// the concrete kinds a resolution traverses.
type KindPolicy struct {
	presets map[string][]types.DependencyKind
}

func NewKindPolicy() KindPolicy {
	return KindPolicy{
		presets: map[string][]types.DependencyKind{
			KindPresetDefault: {types.DependencyKindBuild, types.DependencyKindRun},
			KindPresetCompile: {types.DependencyKindBuild, types.DependencyKindBuildtool, types.DependencyKindBuildExport},
			KindPresetAll:     append([]types.DependencyKind(nil), types.DependencyKinds...),
		},
	}
}

// ResolveKinds returns the deduplicated kinds named by values, in canonical
// order.  An empty list selects the default preset.
func (p KindPolicy) ResolveKinds(values []string) ([]types.DependencyKind, error) {
	if len(values) == 0 {
		values = []string{KindPresetDefault}
	}
	selected := map[types.DependencyKind]struct{}{}
	for _, part := range shared.SplitList(values) {
		name := strings.ToLower(part)
		if preset, ok := p.presets[name]; ok {
			for _, kind := range preset {
				selected[kind] = struct{}{}
			}
			continue
		}
		kind := types.DependencyKind(name)
		if !kind.Valid() {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown dependency kind %q (known: %s)", name, strings.Join(p.knownNames(), ", ")))
		}
		selected[kind] = struct{}{}
	}
	if len(selected) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no dependency kinds selected")
	}
	var kinds []types.DependencyKind
	for _, kind := range types.DependencyKinds {
		if _, ok := selected[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

func (p KindPolicy) knownNames() []string {
	names := make([]string, 0, len(p.presets)+len(types.DependencyKinds))
	for name := range p.presets {
		names = append(names, name)
	}
	for _, kind := range types.DependencyKinds {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return names
}
