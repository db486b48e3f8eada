package adapters

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"link-audit/internal/ports"
	"link-audit/internal/shared"
)

// ProfileDirEnumeratorAdapter walks an installed profile directory and
// collects its shared objects. Profiles are looked up under ProfilesDir
// when it is set, otherwise the profile is taken as a path.
type ProfileDirEnumeratorAdapter struct {
	ProfilesDir string
}

func NewProfileDirEnumeratorAdapter(profilesDir string) ProfileDirEnumeratorAdapter {
	return ProfileDirEnumeratorAdapter{ProfilesDir: strings.TrimSpace(profilesDir)}
}

func (a ProfileDirEnumeratorAdapter) ListBinaries(ctx context.Context, profile string) ([]string, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("profile is required")
	}
	root := a.profileRoot(profile)
	info, err := os.Stat(root)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("profile directory not found: %s", root)).
			WithCause(err)
	}
	if !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("profile path is not a directory: %s", root))
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != root && shouldSkipProfileDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if shared.IsSharedLibrary(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan profile directory").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("profile", root).Int("binaries", len(paths)).Msg("profile enumerated")
	return paths, nil
}

func (a ProfileDirEnumeratorAdapter) profileRoot(profile string) string {
	if a.ProfilesDir == "" || filepath.IsAbs(profile) {
		return profile
	}
	return filepath.Join(a.ProfilesDir, profile)
}

func shouldSkipProfileDir(name string) bool {
	switch name {
	case ".git", "include", "share", "man", "doc":
		return true
	default:
		return false
	}
}

var _ ports.BinaryEnumeratorPort = ProfileDirEnumeratorAdapter{}
