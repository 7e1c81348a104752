package ports

// OutputPort writes a rendered manifest to its destination.
type OutputPort interface {
	WriteManifest(data []byte) error
}
