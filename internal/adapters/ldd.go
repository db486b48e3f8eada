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

const defaultLddPath = "ldd"

// LddAdapter runs ldd against a binary and returns its stdout untouched.
type LddAdapter struct {
	LddPath string
}

func NewLddAdapter(lddPath string) LddAdapter {
	if strings.TrimSpace(lddPath) == "" {
		lddPath = defaultLddPath
	}
	return LddAdapter{LddPath: lddPath}
}

func (a LddAdapter) Dependencies(ctx context.Context, binaryPath string) (string, error) {
	if strings.TrimSpace(binaryPath) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("binary path is empty")
	}
	lddPath, err := exec.LookPath(a.LddPath)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("ldd not found: %s", a.LddPath)).
			WithCause(err)
	}
	cmd := exec.CommandContext(ctx, lddPath, binaryPath)
	// Keep LD_PRELOAD and LD_LIBRARY_PATH of the caller out of the answer.
	cmd.Env = []string{}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("ldd failed for %s", binaryPath)).
			WithCause(shared.CommandError(append(stderr.Bytes(), stdout.Bytes()...), err))
	}
	log.Ctx(ctx).Debug().Str("binary", binaryPath).Int("bytes", stdout.Len()).Msg("ldd listing fetched")
	return stdout.String(), nil
}

var _ ports.DependencyIntrospectorPort = LddAdapter{}
