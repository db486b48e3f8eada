package policies

import (
	"sort"
	"strings"
)

// DefaultSystemLibraries are library base names that may always be taken
// from the host. A declared name matches an entry when it starts with the
// entry followed by ".so", so "libc" covers "libc.so", "libc.so.6" and
// "libc.so.6.1".
var DefaultSystemLibraries = []string{
	"ld-linux",
	"ld-linux-x86-64",
	"libc",
	"libcrypt",
	"libdl",
	"libgcc_s",
	"libm",
	"libnsl",
	"libpthread",
	"libresolv",
	"librt",
	"libstdc++",
	"libutil",
	"libX11",
	"libXau",
	"libXdmcp",
	"libXext",
	"libxcb",
	"linux-gate",
	"linux-vdso",
}

type SystemLibraryAllowlist struct {
	entries []string
}

// NewSystemLibraryAllowlist returns the default allowlist extended with
// extra. Blank and duplicate names are dropped.
func NewSystemLibraryAllowlist(extra []string) SystemLibraryAllowlist {
	seen := map[string]struct{}{}
	var entries []string
	for _, name := range append(append([]string{}, DefaultSystemLibraries...), extra...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, name)
	}
	sort.Strings(entries)
	return SystemLibraryAllowlist{entries: entries}
}

// Allows reports whether declaredName is a system library. The empty
// name stands for kernel-provided objects and is always allowed.
func (a SystemLibraryAllowlist) Allows(declaredName string) bool {
	if declaredName == "" {
		return true
	}
	for _, lib := range a.entries {
		if strings.HasPrefix(declaredName, lib+".so") {
			return true
		}
	}
	return false
}

func (a SystemLibraryAllowlist) Entries() []string {
	return append([]string(nil), a.entries...)
}
