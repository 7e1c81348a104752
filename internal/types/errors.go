package types

import "fmt"

// CatalogLoadError reports that a distribution's metadata could not be
// loaded, either because the distribution is unknown or because its
// metadata is unreachable or malformed.
type CatalogLoadError struct {
	Distribution string
	Reason       string
	Err          error
}

func (e *CatalogLoadError) Error() string {
	msg := fmt.Sprintf("failed to load distribution %q", e.Distribution)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

// UnknownPackageError reports a package name without a catalog entry.
// RequiredBy names the package whose dependency list referenced it and is
// empty when the name was requested directly.
type UnknownPackageError struct {
	Name       string
	RequiredBy string
}

func (e *UnknownPackageError) Error() string {
	if e.RequiredBy != "" {
		return fmt.Sprintf("unknown package %q (required by %q)", e.Name, e.RequiredBy)
	}
	return fmt.Sprintf("unknown package %q", e.Name)
}
