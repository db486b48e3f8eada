package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"link-audit/internal/ports"
	"link-audit/internal/types"
)

// Auditor classifies every binary of a profile. A failed introspection
// call aborts the whole audit; there is no partial result.
type Auditor struct {
	Classifier   Classifier
	Introspector ports.DependencyIntrospectorPort
	Workers      int
}

func NewAuditor(classifier Classifier, introspector ports.DependencyIntrospectorPort, workers int) Auditor {
	return Auditor{Classifier: classifier, Introspector: introspector, Workers: workers}
}

func (a Auditor) AuditProfile(ctx context.Context, profile string, binaries []string) (types.ProfileAuditResult, error) {
	assert.NotEmpty(ctx, a.Classifier.StoreRoot, "store root must be set")
	if a.Introspector == nil {
		return types.ProfileAuditResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency introspector is required")
	}
	result := types.ProfileAuditResult{
		Profile:   profile,
		StoreRoot: a.Classifier.StoreRoot,
	}
	if len(binaries) == 0 {
		log.Ctx(ctx).Debug().Str("profile", profile).Msg("no binaries to audit")
		return result, nil
	}

	var (
		verdicts []types.BinaryVerdict
		err      error
	)
	if a.Workers <= 1 {
		verdicts, err = a.auditSequential(ctx, binaries)
	} else {
		verdicts, err = a.auditParallel(ctx, binaries)
	}
	if err != nil {
		return types.ProfileAuditResult{}, err
	}
	result.Verdicts = verdicts
	log.Ctx(ctx).Debug().
		Str("profile", profile).
		Int("binaries", len(verdicts)).
		Int("offending", result.OffendingCount()).
		Msg("profile audited")
	return result, nil
}

func (a Auditor) auditSequential(ctx context.Context, binaries []string) ([]types.BinaryVerdict, error) {
	verdicts := make([]types.BinaryVerdict, 0, len(binaries))
	for _, binary := range binaries {
		verdict, err := a.auditBinary(ctx, binary)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, verdict)
	}
	return verdicts, nil
}

// auditParallel writes each verdict into its enumeration slot so the
// report order does not depend on scheduling.
func (a Auditor) auditParallel(ctx context.Context, binaries []string) ([]types.BinaryVerdict, error) {
	verdicts := make([]types.BinaryVerdict, len(binaries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.Workers)
	for i, binary := range binaries {
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			verdict, err := a.auditBinary(groupCtx, binary)
			if err != nil {
				return err
			}
			verdicts[i] = verdict
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

func (a Auditor) auditBinary(ctx context.Context, binary string) (types.BinaryVerdict, error) {
	raw, err := a.Introspector.Dependencies(ctx, binary)
	if err != nil {
		return types.BinaryVerdict{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("dependency introspection failed for %s", binary)).
			WithCause(err)
	}
	return a.Classifier.ClassifyBinary(ctx, binary, raw), nil
}
