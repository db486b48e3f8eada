// Package shared provides small helpers used by several adapters.
package shared

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", trimmed, err)
}

// IsSharedLibrary reports whether a file name looks like an ELF shared
// object, versioned or not.
func IsSharedLibrary(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".so") || strings.Contains(name, ".so.")
}
