package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosinstall-gen/internal/types"
)

const selectorSeparator = "@"

// SelectorPolicy parses requested packages of the form name@selector, where
// selector is devel, latest (or master) or a release version.
type SelectorPolicy struct {
	keywords map[string]types.ManifestVariant
}

func NewSelectorPolicy() SelectorPolicy {
	return SelectorPolicy{
		keywords: map[string]types.ManifestVariant{
			"devel":  types.ManifestVariantDevel,
			"latest": types.ManifestVariantLatest,
			"master": types.ManifestVariantLatest,
		},
	}
}

// ParseRoots strips selectors from values and returns the package names in
// request order along with the selector of each package that named one.
// Naming one package with two different selectors is an error.
func (p SelectorPolicy) ParseRoots(values []string) ([]string, map[string]types.SourceSelector, error) {
	names := make([]string, 0, len(values))
	selectors := map[string]types.SourceSelector{}
	for _, value := range values {
		name, raw, found := strings.Cut(strings.TrimSpace(value), selectorSeparator)
		if !found {
			names = append(names, name)
			continue
		}
		name = strings.TrimSpace(name)
		raw = strings.TrimSpace(raw)
		if name == "" || raw == "" {
			return nil, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid package selector %q (want name@devel, name@latest or name@<version>)", value))
		}
		selector := p.selectorFor(raw)
		if previous, ok := selectors[name]; ok && previous != selector {
			return nil, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package %s requested with conflicting selectors", name))
		}
		selectors[name] = selector
		names = append(names, name)
	}
	return names, selectors, nil
}

func (p SelectorPolicy) selectorFor(raw string) types.SourceSelector {
	if variant, ok := p.keywords[strings.ToLower(raw)]; ok {
		return types.SourceSelector{Variant: variant}
	}
	return types.SourceSelector{Variant: types.ManifestVariantVersion, Version: raw}
}
