package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateDirs_SkipsExcluded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.go":            "",
		"src/pkg/b.go":        "",
		"node_modules/x/i.js": "",
		".git/HEAD":           "",
	})

	dirs, err := candidateDirs(root, mustCompile(t, defaultExcludePatterns))
	require.NoError(t, err)
	assert.Equal(t, []string{
		root,
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "pkg"),
	}, dirs)
}
