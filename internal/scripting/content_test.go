package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dice/internal/scripting"
)

// repoRoot walks up from the test's working directory to find the module root.
func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatalf("could not find repo root from %s", wd)
		}
		root = parent
	}
}

// loadContentScripts loads the shipped content/scripts into the __global__ VM.
func loadContentScripts(t *testing.T, mgr *scripting.Manager) {
	t.Helper()
	require.NoError(t, mgr.LoadGlobal(filepath.Join(repoRoot(t), "content", "scripts"), 0))
}

func TestContent_AbilityScores(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadContentScripts(t, mgr)

	ret, err := mgr.CallHook("any", "ability_scores")
	require.NoError(t, err)
	tbl, ok := ret.(*lua.LTable)
	require.True(t, ok, "expected table, got %T", ret)
	assert.Equal(t, 6, tbl.Len())
	tbl.ForEach(func(_, v lua.LValue) {
		n := int(v.(lua.LNumber))
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 18)
	})
}

func TestProperty_Content_SuccessesBounded(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadContentScripts(t, mgr)

	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 20).Draw(rt, "size")
		threshold := rapid.IntRange(1, 7).Draw(rt, "threshold")
		ret, err := mgr.CallHook("any", "successes", lua.LNumber(size), lua.LNumber(threshold))
		require.NoError(rt, err)
		n := int(ret.(lua.LNumber))
		assert.GreaterOrEqual(rt, n, 0)
		assert.LessOrEqual(rt, n, size)
		if threshold == 1 {
			assert.Equal(rt, size, n)
		}
		if threshold == 7 {
			assert.Equal(rt, 0, n)
		}
	})
}

func TestContent_Hits(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadContentScripts(t, mgr)

	ret, err := mgr.CallHook("any", "hits", lua.LNumber(0), lua.LNumber(1))
	require.NoError(t, err)
	assert.Equal(t, lua.LTrue, ret)

	ret, err = mgr.CallHook("any", "hits", lua.LNumber(0), lua.LNumber(21))
	require.NoError(t, err)
	assert.Equal(t, lua.LFalse, ret)
}
