package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
)

// validateReleaseVersion checks that a release version is a valid Debian
// version string, which is what the release tooling derives package
// versions and tags from.
func validateReleaseVersion(name string, version string) error {
	if version == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has no version", name))
	}
	if _, err := debversion.NewVersion(version); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has invalid version %q", name, version)).
			WithCause(err)
	}
	return nil
}

// compareReleaseVersions orders two already validated release versions.
// It returns 0 when either fails to parse.
func compareReleaseVersions(a string, b string) int {
	v1, err := debversion.NewVersion(a)
	if err != nil {
		return 0
	}
	v2, err := debversion.NewVersion(b)
	if err != nil {
		return 0
	}
	return v1.Compare(v2)
}

// releaseTag is the tag the release tooling pushes for a package version.
func releaseTag(distro string, name string, version string) string {
	return fmt.Sprintf("release/%s/%s/%s", distro, name, version)
}
