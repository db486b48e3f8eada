package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"link-audit/internal/adapters"
	"link-audit/internal/core"
	"link-audit/internal/policies"
	"link-audit/internal/ports"
	"link-audit/internal/types"
)

// Audit enumerates the profile, classifies every shared object and
// writes the report. Contamination is reported through the result, not
// as an error.
func (s Service) Audit(ctx context.Context, req AuditRequest) (AuditResult, error) {
	profile := strings.TrimSpace(req.Profile)
	if profile == "" {
		return AuditResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("profile is required")
	}
	storeRoot := strings.TrimSpace(req.StoreRoot)
	if storeRoot == "" {
		return AuditResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifact store root is required")
	}
	if !filepath.IsAbs(storeRoot) {
		return AuditResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("artifact store root must be absolute: %s", storeRoot))
	}
	allowlist, err := s.systemAllowlist(req.AllowlistFile, req.ExtraSystemLibs)
	if err != nil {
		return AuditResult{}, err
	}
	enumerator, err := s.Enumerator(req)
	if err != nil {
		return AuditResult{}, err
	}
	binaries, err := enumerator.ListBinaries(ctx, profile)
	if err != nil {
		return AuditResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("profile", profile).
		Str("store_root", storeRoot).
		Int("binaries", len(binaries)).
		Msg("auditing profile")

	auditor := core.NewAuditor(core.NewClassifier(allowlist, storeRoot), s.Introspector(req.LddPath), req.Workers)
	result, err := auditor.AuditProfile(ctx, profile, binaries)
	if err != nil {
		return AuditResult{}, err
	}
	report := adapters.NewReportWriterAdapter(s.Out, req.Verbose)
	if err := report.WriteReport(result); err != nil {
		return AuditResult{}, err
	}
	return AuditResult{Result: result}, nil
}

// SystemAllowlist returns the effective system library allowlist.
func (s Service) SystemAllowlist(req AllowlistRequest) (AllowlistResult, error) {
	allowlist, err := s.systemAllowlist(req.AllowlistFile, req.ExtraSystemLibs)
	if err != nil {
		return AllowlistResult{}, err
	}
	return AllowlistResult{Entries: allowlist.Entries()}, nil
}

func (s Service) systemAllowlist(file string, extra []string) (policies.SystemLibraryAllowlist, error) {
	fromFile, err := s.Allowlist.LoadAllowlist(file)
	if err != nil {
		return policies.SystemLibraryAllowlist{}, err
	}
	return policies.NewSystemLibraryAllowlist(append(append([]string{}, extra...), fromFile...)), nil
}

func buildEnumerator(req AuditRequest) (ports.BinaryEnumeratorPort, error) {
	switch types.EnumeratorKind(strings.ToLower(strings.TrimSpace(req.Enumerator))) {
	case "", types.EnumeratorKindCommand:
		return adapters.NewCommandEnumeratorAdapter(req.EnumeratorCommand), nil
	case types.EnumeratorKindDir:
		return adapters.NewProfileDirEnumeratorAdapter(req.ProfilesDir), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported enumerator: %s", req.Enumerator))
	}
}
