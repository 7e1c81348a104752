package core

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/types"
)

// latestRevision is the branch a release repository's newest sources live
// on.
const latestRevision = "master"

// ManifestEmitter turns a set of package names into checkout descriptors.
// Entries are ordered lexicographically by package name so repeated runs
// over the same inputs produce the same manifest.
type ManifestEmitter struct {
	Variant types.ManifestVariant

	// Overrides pin individual packages to their own source selector.
	Overrides map[string]types.SourceSelector
}

func NewManifestEmitter(variant types.ManifestVariant) ManifestEmitter {
	if variant == "" {
		variant = types.ManifestVariantRelease
	}
	return ManifestEmitter{Variant: variant}
}

// WithOverrides returns a copy of the emitter that pins the named packages
// to their selectors.  Other packages keep the emitter's variant.
func (e ManifestEmitter) WithOverrides(overrides map[string]types.SourceSelector) ManifestEmitter {
	e.Overrides = overrides
	return e
}

func (e ManifestEmitter) Emit(ctx context.Context, catalog ports.CatalogPort, names []string) (types.Manifest, error) {
	if catalog == nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("emitter requires a catalog")
	}
	if !e.Variant.Valid() || e.Variant == types.ManifestVariantVersion {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown manifest variant %q", e.Variant))
	}
	ordered := uniqueSorted(names)
	manifest := types.Manifest{
		Distribution: catalog.Name(),
		Variant:      e.Variant,
		Entries:      make([]types.ManifestEntry, 0, len(ordered)),
	}
	for _, name := range ordered {
		record, err := catalog.Lookup(name)
		if err != nil {
			return types.Manifest{}, err
		}
		selector, ok := e.Overrides[name]
		if !ok {
			selector = types.SourceSelector{Variant: e.Variant}
		}
		source, err := selectSource(catalog.Name(), record, selector)
		if err != nil {
			return types.Manifest{}, err
		}
		assert.NotEmpty(ctx, source.URL, "catalog source url must be set")
		assert.NotEmpty(ctx, source.Revision, "catalog source revision must be set")
		manifest.Entries = append(manifest.Entries, types.ManifestEntry{
			LocalName: record.Name,
			Type:      source.Type,
			URI:       source.URL,
			Version:   source.Revision,
		})
	}
	return manifest, nil
}

func selectSource(distro string, record types.PackageRecord, selector types.SourceSelector) (types.SourceLocation, error) {
	switch selector.Variant {
	case types.ManifestVariantRelease:
		return record.Release, nil
	case types.ManifestVariantDevel:
		if record.Devel == nil {
			return types.SourceLocation{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("no devel source for %s", record.Name))
		}
		return *record.Devel, nil
	case types.ManifestVariantLatest:
		source := record.Release
		source.Revision = latestRevision
		return source, nil
	case types.ManifestVariantVersion:
		if selector.Version == record.Version {
			return record.Release, nil
		}
		if err := validateReleaseVersion(record.Name, selector.Version); err != nil {
			return types.SourceLocation{}, err
		}
		source := record.Release
		source.Revision = releaseTag(distro, record.Name, selector.Version)
		return source, nil
	default:
		return types.SourceLocation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown source selector %q for %s", selector.Variant, record.Name))
	}
}

type rosinstallSource struct {
	LocalName string `yaml:"local-name"`
	URI       string `yaml:"uri"`
	Version   string `yaml:"version,omitempty"`
}

// Render encodes a manifest in rosinstall syntax, one single-key mapping
// per entry keyed by source type.  An empty manifest renders as no bytes.
func Render(manifest types.Manifest) ([]byte, error) {
	if len(manifest.Entries) == 0 {
		return []byte{}, nil
	}
	items := make([]map[string]rosinstallSource, 0, len(manifest.Entries))
	for _, entry := range manifest.Entries {
		items = append(items, map[string]rosinstallSource{
			string(entry.Type): {
				LocalName: entry.LocalName,
				URI:       entry.URI,
				Version:   entry.Version,
			},
		})
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(items); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode rosinstall manifest").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode rosinstall manifest").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

// Digest fingerprints rendered manifest bytes.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
