package core

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link-audit/internal/types"
)

type fakeIntrospector struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	delays  map[string]time.Duration
	calls   []string
}

func (f *fakeIntrospector) Dependencies(ctx context.Context, binaryPath string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, binaryPath)
	f.mu.Unlock()
	if delay := f.delays[binaryPath]; delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := f.errs[binaryPath]; err != nil {
		return "", err
	}
	return f.outputs[binaryPath], nil
}

func TestAuditProfileMixedVerdicts(t *testing.T) {
	introspector := &fakeIntrospector{outputs: map[string]string{
		"/opt/store/a/lib/liba.so": "libc.so.6 => /lib/libc.so.6 (0x1)\nlibb.so => /opt/store/b/lib/libb.so (0x2)\n",
		"/opt/store/c/lib/libc2.so": "libc.so.6 => /lib/libc.so.6 (0x1)\nlibssl.so.3 => /usr/lib/libssl.so.3 (0x3)\n",
	}}
	auditor := NewAuditor(newTestClassifier(), introspector, 1)
	result, err := auditor.AuditProfile(t.Context(), "default", []string{
		"/opt/store/a/lib/liba.so",
		"/opt/store/c/lib/libc2.so",
	})
	require.NoError(t, err)
	require.Len(t, result.Verdicts, 2)
	assert.False(t, result.AllClean())
	assert.Equal(t, 1, result.OffendingCount())
	assert.Equal(t, "/opt/store/a/lib/liba.so", result.Verdicts[0].TargetPath)
	assert.True(t, result.Verdicts[0].IsClean())
	assert.Equal(t, "/opt/store/c/lib/libc2.so", result.Verdicts[1].TargetPath)
	require.Len(t, result.DirtyVerdicts(), 1)
	if diff := cmp.Diff(types.DependencyRecord{
		DeclaredName: "libssl.so.3",
		ResolvedPath: "/usr/lib/libssl.so.3",
		LoadAddress:  "(0x3)",
	}, result.Verdicts[1].OffendingEntries[0]); diff != "" {
		t.Fatalf("unexpected offending entry (-want +got):\n%s", diff)
	}
	assert.Equal(t, "default", result.Profile)
	assert.Equal(t, "/opt/store", result.StoreRoot)
}

func TestAuditProfileEmptyIsClean(t *testing.T) {
	auditor := NewAuditor(newTestClassifier(), &fakeIntrospector{}, 1)
	result, err := auditor.AuditProfile(t.Context(), "empty", nil)
	require.NoError(t, err)
	assert.True(t, result.AllClean())
	assert.Empty(t, result.Verdicts)
}

func TestAuditProfileIntrospectionFailureIsFatal(t *testing.T) {
	introspector := &fakeIntrospector{
		outputs: map[string]string{"first.so": "libc.so.6 => /lib/libc.so.6 (0x1)"},
		errs:    map[string]error{"broken.so": fmt.Errorf("not a dynamic executable")},
	}
	auditor := NewAuditor(newTestClassifier(), introspector, 1)
	result, err := auditor.AuditProfile(t.Context(), "p", []string{"first.so", "broken.so", "never.so"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.so")
	assert.Empty(t, result.Verdicts)
	assert.NotContains(t, introspector.calls, "never.so")
}

func TestAuditProfileParallelPreservesOrder(t *testing.T) {
	binaries := make([]string, 0, 8)
	introspector := &fakeIntrospector{
		outputs: map[string]string{},
		delays:  map[string]time.Duration{},
	}
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("/opt/store/h%d/lib/lib%d.so", i, i)
		binaries = append(binaries, name)
		introspector.outputs[name] = fmt.Sprintf("libx%d.so => /usr/lib/libx%d.so (0x%d)", i, i, i)
		introspector.delays[name] = time.Duration(8-i) * time.Millisecond
	}
	auditor := NewAuditor(newTestClassifier(), introspector, 4)
	result, err := auditor.AuditProfile(t.Context(), "p", binaries)
	require.NoError(t, err)
	require.Len(t, result.Verdicts, len(binaries))
	for i, verdict := range result.Verdicts {
		assert.Equal(t, binaries[i], verdict.TargetPath)
		require.Len(t, verdict.OffendingEntries, 1)
		assert.Equal(t, fmt.Sprintf("libx%d.so", i), verdict.OffendingEntries[0].DeclaredName)
	}
	assert.Equal(t, 8, result.OffendingCount())
}

func TestAuditProfileParallelFailure(t *testing.T) {
	introspector := &fakeIntrospector{
		outputs: map[string]string{"a.so": "", "c.so": ""},
		errs:    map[string]error{"b.so": fmt.Errorf("permission denied")},
		delays:  map[string]time.Duration{"c.so": 50 * time.Millisecond},
	}
	auditor := NewAuditor(newTestClassifier(), introspector, 3)
	_, err := auditor.AuditProfile(t.Context(), "p", []string{"a.so", "b.so", "c.so"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.so")
}

func TestAuditProfileRequiresIntrospector(t *testing.T) {
	auditor := NewAuditor(newTestClassifier(), nil, 1)
	_, err := auditor.AuditProfile(t.Context(), "p", []string{"a.so"})
	require.Error(t, err)
}
