package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"link-audit/internal/ports"
	"link-audit/internal/shared"
)

// DefaultEnumeratorCommand lists the shared objects installed by a
// profile. The profile name is appended as the last argument.
var DefaultEnumeratorCommand = []string{"hit", "list-so"}

// CommandEnumeratorAdapter asks an external command for the shared
// objects of a profile. The command prints whitespace separated paths.
type CommandEnumeratorAdapter struct {
	Command []string
}

func NewCommandEnumeratorAdapter(command []string) CommandEnumeratorAdapter {
	var cleaned []string
	for _, arg := range command {
		if strings.TrimSpace(arg) != "" {
			cleaned = append(cleaned, arg)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultEnumeratorCommand...)
	}
	return CommandEnumeratorAdapter{Command: cleaned}
}

func (a CommandEnumeratorAdapter) ListBinaries(ctx context.Context, profile string) ([]string, error) {
	if strings.TrimSpace(profile) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("profile is required")
	}
	args := append(append([]string{}, a.Command[1:]...), profile)
	cmd := exec.CommandContext(ctx, a.Command[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to list shared libraries of profile %s", profile)).
			WithCause(shared.CommandError(stderr.Bytes(), err))
	}
	paths := strings.Fields(stdout.String())
	log.Ctx(ctx).Debug().
		Str("profile", profile).
		Strs("command", a.Command).
		Int("binaries", len(paths)).
		Msg("profile enumerated")
	if len(paths) == 0 {
		return nil, nil
	}
	return paths, nil
}

var _ ports.BinaryEnumeratorPort = CommandEnumeratorAdapter{}
