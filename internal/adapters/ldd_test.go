package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link-audit/internal/core"
	"link-audit/internal/types"
)

const fakeLddScript = `echo "	linux-vdso.so.1 (0x00007ffd)"
echo "	libc.so.6 => /lib/x86_64-linux-gnu/libc.so.6 (0x00007f00)"
echo "	libenv.so => ${LD_LIBRARY_PATH:-unset} (0x00007f01)"
echo "	target => $1 (0x00007f02)"
`

func TestLddAdapterDependencies(t *testing.T) {
	t.Setenv("LD_LIBRARY_PATH", "/usr/local/leaky")
	adapter := NewLddAdapter(writeScript(t, "ldd", fakeLddScript))
	raw, err := adapter.Dependencies(t.Context(), "/opt/store/h1/lib/libx.so")
	require.NoError(t, err)

	set := core.ParseLddOutput(raw)
	assert.Equal(t, 4, set.Len())
	resolved := resolvedByName(set.Records())
	assert.Equal(t, "unset", resolved["libenv.so"])
	assert.Equal(t, "/opt/store/h1/lib/libx.so", resolved["target"])
}

func resolvedByName(records []types.DependencyRecord) map[string]string {
	out := make(map[string]string, len(records))
	for _, record := range records {
		out[record.DeclaredName] = record.ResolvedPath
	}
	return out
}

func TestLddAdapterFailure(t *testing.T) {
	script := `echo "	not a dynamic executable" >&2
exit 1
`
	adapter := NewLddAdapter(writeScript(t, "ldd", script))
	_, err := adapter.Dependencies(t.Context(), "/opt/store/h1/lib/libx.so")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ldd failed for /opt/store/h1/lib/libx.so")
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestLddAdapterMissingTool(t *testing.T) {
	adapter := NewLddAdapter("/nonexistent/bin/ldd")
	_, err := adapter.Dependencies(t.Context(), "/opt/store/h1/lib/libx.so")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLddAdapterEmptyPath(t *testing.T) {
	_, err := NewLddAdapter("").Dependencies(t.Context(), " ")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestNewLddAdapterDefault(t *testing.T) {
	assert.Equal(t, "ldd", NewLddAdapter("").LddPath)
}
