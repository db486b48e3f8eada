package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"link-audit/internal/ports"
	"link-audit/internal/types"
)

type AllowlistFileAdapter struct{}

func NewAllowlistFileAdapter() AllowlistFileAdapter {
	return AllowlistFileAdapter{}
}

// LoadAllowlist reads extra system library names. An empty path yields
// no extra names.
func (a AllowlistFileAdapter) LoadAllowlist(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("allowlist file not found").
			WithCause(err)
	}
	var file types.AllowlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse allowlist yaml").
			WithCause(err)
	}
	var names []string
	for _, name := range file.SystemLibs {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(name, ".so") {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("allowlist entries must be base names without .so: " + name)
		}
		names = append(names, name)
	}
	return names, nil
}

var _ ports.AllowlistSourcePort = AllowlistFileAdapter{}
