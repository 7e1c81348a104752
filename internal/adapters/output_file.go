package adapters

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosinstall-gen/internal/ports"
)

// ManifestOutputAdapter writes a rendered manifest to Path, or to Stdout
// when no path is configured.
type ManifestOutputAdapter struct {
	Path   string
	Stdout io.Writer
}

func NewManifestOutputAdapter(path string, stdout io.Writer) ManifestOutputAdapter {
	return ManifestOutputAdapter{Path: path, Stdout: stdout}
}

func (a ManifestOutputAdapter) WriteManifest(data []byte) error {
	if a.Path == "" {
		if a.Stdout == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("no manifest destination configured")
		}
		if _, err := a.Stdout.Write(data); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write manifest").
				WithCause(err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write manifest").
			WithCause(err)
	}
	return nil
}

var _ ports.OutputPort = ManifestOutputAdapter{}
