package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL reports whether input names a remote repository rather than a
// local directory: a ".git" suffix or the scp-like "git@" form.
func isGitURL(input string) bool {
	if strings.HasPrefix(input, "git@") {
		return true
	}
	if !strings.HasSuffix(input, ".git") {
		return false
	}
	// A local ".git" directory is scanned, not cloned.
	_, err := os.Stat(input)
	return err != nil
}

// cloneGitRepo shallow-clones url into a new temporary directory and returns
// its path. The caller removes the directory.
func cloneGitRepo(url string, progress io.Writer) (string, error) {
	tempDir, err := os.MkdirTemp("", "projscan-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	infof(progress, "Cloning Git repository '%s' into '%s'...", url, tempDir)
	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}
	return tempDir, nil
}
