package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"link-audit/internal/policies"
	"link-audit/internal/types"
)

// Classifier decides whether each library in a listing is a system
// library, an artifact store library or a foreign one.
type Classifier struct {
	Allowlist policies.SystemLibraryAllowlist
	StoreRoot string
}

func NewClassifier(allowlist policies.SystemLibraryAllowlist, storeRoot string) Classifier {
	root := strings.TrimSpace(storeRoot)
	if len(root) > 1 {
		root = strings.TrimRight(root, "/")
	}
	return Classifier{Allowlist: allowlist, StoreRoot: root}
}

func (c Classifier) Classify(record types.DependencyRecord) types.Classification {
	if record.DeclaredName == "" {
		return types.ClassificationVirtual
	}
	if c.Allowlist.Allows(record.DeclaredName) {
		return types.ClassificationSystem
	}
	if c.underStoreRoot(strings.TrimSpace(record.ResolvedPath)) {
		return types.ClassificationStore
	}
	return types.ClassificationForeign
}

// underStoreRoot matches whole path components, so /opt/store does not
// claim /opt/store2.
func (c Classifier) underStoreRoot(path string) bool {
	switch {
	case c.StoreRoot == "" || path == "":
		return false
	case c.StoreRoot == "/":
		return strings.HasPrefix(path, "/")
	case path == c.StoreRoot:
		return true
	default:
		return strings.HasPrefix(path, c.StoreRoot+"/")
	}
}

// ClassifyBinary evaluates the raw ldd output of target. Offending
// entries keep the insertion order of the parsed listing.
func (c Classifier) ClassifyBinary(ctx context.Context, target string, raw string) types.BinaryVerdict {
	set := ParseLddOutput(raw)
	if set.Duplicates() > 0 {
		log.Ctx(ctx).Debug().
			Str("binary", target).
			Int("duplicates", set.Duplicates()).
			Msg("merged duplicate declared names")
	}
	verdict := types.BinaryVerdict{TargetPath: target}
	for _, record := range set.Records() {
		class := c.Classify(record)
		if class.Allowed() {
			continue
		}
		verdict.OffendingEntries = append(verdict.OffendingEntries, record)
	}
	log.Ctx(ctx).Debug().
		Str("binary", target).
		Int("libraries", set.Len()).
		Int("offending", len(verdict.OffendingEntries)).
		Msg("binary classified")
	return verdict
}
