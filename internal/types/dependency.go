package types

// DependencyRecord is one entry of a dynamic-linker dependency listing.
// DeclaredName is empty for entries reported without a "=>" arrow, such
// as the vDSO or the dynamic loader itself. LoadAddress is kept for
// diagnostics only.
type DependencyRecord struct {
	DeclaredName string
	ResolvedPath string
	LoadAddress  string
}

type Classification string

const (
	ClassificationVirtual Classification = "virtual"
	ClassificationSystem  Classification = "system"
	ClassificationStore   Classification = "store"
	ClassificationForeign Classification = "foreign"
)

// Allowed reports whether the classification does not count as
// contamination.
func (c Classification) Allowed() bool {
	return c != ClassificationForeign
}

type EnumeratorKind string

const (
	EnumeratorKindCommand EnumeratorKind = "command"
	EnumeratorKindDir     EnumeratorKind = "dir"
)
