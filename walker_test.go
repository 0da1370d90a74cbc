package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (and their parent directories) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func walkPaths(t *testing.T, w *treeWalker, skip func(*dirLevel) bool) []string {
	t.Helper()
	var visited []string
	for w.Next() {
		level := w.Level()
		visited = append(visited, level.Path)
		if skip != nil && skip(level) {
			w.SkipDir()
		}
	}
	require.NoError(t, w.Err())
	return visited
}

func TestTreeWalker_TopDownOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.txt":       "",
		"a/a.txt":       "",
		"a/a1/deep.txt": "",
		"b/b.txt":       "",
	})

	visited := walkPaths(t, newTreeWalker(root, nil), nil)
	assert.Equal(t, []string{
		root,
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "a1"),
		filepath.Join(root, "b"),
	}, visited)
}

func TestTreeWalker_LevelSplitsEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"one.go":     "",
		"two.md":     "",
		"sub/x.txt":  "",
		"sub2/y.txt": "",
	})

	w := newTreeWalker(root, nil)
	require.True(t, w.Next())
	level := w.Level()
	assert.Equal(t, root, level.Path)
	assert.ElementsMatch(t, []string{"one.go", "two.md"}, level.Files)
	assert.ElementsMatch(t, []string{"sub", "sub2"}, level.Subdirs)
}

func TestTreeWalker_SkipDirPrunesSubtree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/inner/x.txt": "",
		"b/y.txt":       "",
	})

	visited := walkPaths(t, newTreeWalker(root, nil), func(l *dirLevel) bool {
		return filepath.Base(l.Path) == "a"
	})
	assert.Equal(t, []string{root, filepath.Join(root, "a"), filepath.Join(root, "b")}, visited)
}

func TestTreeWalker_SymlinkedDirectoryNotFollowed(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	writeTree(t, target, map[string]string{"outside.py": ""})
	writeTree(t, root, map[string]string{"real.py": ""})
	if err := os.Symlink(target, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "real.py"), filepath.Join(root, "alias.py")))

	w := newTreeWalker(root, nil)
	require.True(t, w.Next())
	level := w.Level()
	assert.ElementsMatch(t, []string{"real.py", "alias.py"}, level.Files)
	assert.Empty(t, level.Subdirs)
	assert.False(t, w.Next())
}

func TestTreeWalker_MissingRootStops(t *testing.T) {
	w := newTreeWalker(filepath.Join(t.TempDir(), "missing"), nil)
	assert.False(t, w.Next())
	assert.Error(t, w.Err())
}

func TestTreeWalker_OnErrorSkipsUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"locked/x.txt": "",
		"open/y.txt":   "",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	var failed []string
	w := newTreeWalker(root, func(path string, err error) error {
		failed = append(failed, path)
		return nil
	})
	visited := walkPaths(t, w, nil)
	assert.Equal(t, []string{root, filepath.Join(root, "open")}, visited)
	assert.Equal(t, []string{locked}, failed)
}

func TestTreeWalker_OnErrorStops(t *testing.T) {
	stop := errors.New("stop")
	w := newTreeWalker(filepath.Join(t.TempDir(), "missing"), func(string, error) error { return stop })
	assert.False(t, w.Next())
	assert.ErrorIs(t, w.Err(), stop)
	assert.False(t, w.Next())
}
