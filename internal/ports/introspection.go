package ports

import "context"

// DependencyIntrospectorPort returns the raw dynamic-linker dependency
// listing of a binary in ldd format.
type DependencyIntrospectorPort interface {
	Dependencies(ctx context.Context, binaryPath string) (string, error)
}

// BinaryEnumeratorPort lists the shared objects that belong to a profile,
// in discovery order.
type BinaryEnumeratorPort interface {
	ListBinaries(ctx context.Context, profile string) ([]string, error)
}
