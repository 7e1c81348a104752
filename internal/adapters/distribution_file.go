package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/types"
)

type DistributionFileAdapter struct{}

func NewDistributionFileAdapter() DistributionFileAdapter {
	return DistributionFileAdapter{}
}

func (a DistributionFileAdapter) Read(path string) (types.DistributionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DistributionFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("distribution file not found").
			WithCause(err)
	}
	var file types.DistributionFile
	if err := decodeDocument(data, path, &file); err != nil {
		return types.DistributionFile{}, err
	}
	if file.Packages == nil {
		file.Packages = map[string]types.PackageEntry{}
	}
	return file, nil
}

func (a DistributionFileAdapter) Write(path string, file types.DistributionFile) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal distribution file").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create distribution file directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write distribution file").
			WithCause(err)
	}
	return nil
}

var _ ports.DistributionFilePort = DistributionFileAdapter{}
