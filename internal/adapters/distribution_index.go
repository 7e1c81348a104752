package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/types"
)

// DistributionIndexAdapter locates distributions through an index file and
// fetches their release and devel documents.
type DistributionIndexAdapter struct {
	IndexLocation string
	Fetcher       ports.DocumentFetcherPort
}

func NewDistributionIndexAdapter(indexLocation string, fetcher ports.DocumentFetcherPort) DistributionIndexAdapter {
	return DistributionIndexAdapter{
		IndexLocation: indexLocation,
		Fetcher:       fetcher,
	}
}

func (a DistributionIndexAdapter) ListDistributions(ctx context.Context) ([]string, error) {
	index, err := a.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index.Distributions))
	for name := range index.Distributions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (a DistributionIndexAdapter) LoadDistribution(ctx context.Context, name string) (types.DistributionSnapshot, error) {
	index, err := a.loadIndex(ctx)
	if err != nil {
		return types.DistributionSnapshot{}, err
	}
	entry, ok := index.Distributions[name]
	if !ok {
		return types.DistributionSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown distribution %s", name))
	}
	if strings.TrimSpace(entry.Release) == "" {
		return types.DistributionSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("distribution %s has no release file", name))
	}

	snapshot := types.DistributionSnapshot{Name: name}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		location := resolveLocation(a.IndexLocation, entry.Release)
		data, err := a.Fetcher.Fetch(groupCtx, location)
		if err != nil {
			return err
		}
		return decodeDocument(data, location, &snapshot.Release)
	})
	if strings.TrimSpace(entry.Devel) != "" {
		devel := &types.DevelFile{}
		snapshot.Devel = devel
		group.Go(func() error {
			location := resolveLocation(a.IndexLocation, entry.Devel)
			data, err := a.Fetcher.Fetch(groupCtx, location)
			if err != nil {
				return err
			}
			return decodeDocument(data, location, devel)
		})
	}
	if err := group.Wait(); err != nil {
		return types.DistributionSnapshot{}, err
	}
	if snapshot.Release.Name != "" && snapshot.Release.Name != name {
		return types.DistributionSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("release file describes %s, not %s", snapshot.Release.Name, name))
	}
	log.Ctx(ctx).Debug().
		Str("distribution", name).
		Int("packages", len(snapshot.Release.Packages)).
		Bool("devel", snapshot.Devel != nil).
		Msg("distribution metadata loaded")
	return snapshot, nil
}

func (a DistributionIndexAdapter) loadIndex(ctx context.Context) (types.IndexFile, error) {
	if strings.TrimSpace(a.IndexLocation) == "" {
		return types.IndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution index location is required")
	}
	if a.Fetcher == nil {
		return types.IndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution index requires a document fetcher")
	}
	data, err := a.Fetcher.Fetch(ctx, a.IndexLocation)
	if err != nil {
		return types.IndexFile{}, err
	}
	var index types.IndexFile
	if err := decodeDocument(data, a.IndexLocation, &index); err != nil {
		return types.IndexFile{}, err
	}
	if index.Type != "" && index.Type != types.IndexFileType {
		return types.IndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s is not a distribution index (type %q)", a.IndexLocation, index.Type))
	}
	return index, nil
}

// decodeDocument strictly decodes a YAML document; unknown fields are
// rejected so typos in metadata surface at load time.
func decodeDocument(data []byte, location string, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("document %s is empty", location))
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid document %s", location)).
			WithCause(err)
	}
	return nil
}

// resolveLocation resolves ref relative to the location of base.  Absolute
// paths and URLs are returned unchanged.
func resolveLocation(base string, ref string) string {
	ref = strings.TrimSpace(ref)
	if isRemoteLocation(ref) || strings.HasPrefix(ref, "file://") || filepath.IsAbs(ref) {
		return ref
	}
	if isRemoteLocation(base) {
		parsedBase, err := url.Parse(base)
		if err != nil {
			return ref
		}
		parsedRef, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return parsedBase.ResolveReference(parsedRef).String()
	}
	return filepath.Join(filepath.Dir(strings.TrimPrefix(base, "file://")), ref)
}

var _ ports.DistributionSourcePort = DistributionIndexAdapter{}
