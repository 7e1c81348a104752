package types

// ManifestEntry is a single source-checkout descriptor.
type ManifestEntry struct {
	LocalName string
	Type      SourceType
	URI       string
	Version   string
}

// Manifest is an ordered list of checkout descriptors, sorted by LocalName.
type Manifest struct {
	Distribution string
	Variant      ManifestVariant
	Entries      []ManifestEntry
}

// SourceSelector picks the source descriptor pinned for one package.
type SourceSelector struct {
	Variant ManifestVariant

	// Version is the release version for ManifestVariantVersion.
	Version string
}
