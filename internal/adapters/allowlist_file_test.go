package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowlistFileAdapterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowlist.yaml")
	content := "system_libs:\n  - libGL\n  - \" libasound \"\n  - \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	names, err := NewAllowlistFileAdapter().LoadAllowlist(path)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"libGL", "libasound"}, names); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestAllowlistFileAdapterEmptyPath(t *testing.T) {
	names, err := NewAllowlistFileAdapter().LoadAllowlist("")
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestAllowlistFileAdapterErrors(t *testing.T) {
	adapter := NewAllowlistFileAdapter()
	_, err := adapter.LoadAllowlist(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("system_libs: [unclosed"), 0644))
	_, err = adapter.LoadAllowlist(bad)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	versioned := filepath.Join(t.TempDir(), "versioned.yaml")
	require.NoError(t, os.WriteFile(versioned, []byte("system_libs: [libGL.so.1]"), 0644))
	_, err = adapter.LoadAllowlist(versioned)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "libGL.so.1")
}
