package main

import (
	"io"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// loadGitignore returns a matcher for root/.gitignore, or nil when the file
// is missing or cannot be parsed. Only the top-level file is honored.
// The matcher expects paths built from root, not paths relative to it.
func loadGitignore(root string, warn io.Writer) gitignore.IgnoreMatcher {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	matcher, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		warnf(warn, "could not parse .gitignore file %s: %v", path, err)
		return nil
	}
	return matcher
}
