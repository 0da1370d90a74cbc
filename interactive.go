package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// errSelectionAborted is returned when the user leaves the finder without choosing.
var errSelectionAborted = errors.New("interactive selection aborted")

// candidateDirs lists root and every directory below it that the exclusion
// patterns would not prune.
func candidateDirs(root string, exclude []*regexp.Regexp) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if shouldExclude(path, exclude) {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return dirs, nil
}

// pickDirectory lets the user choose the scan root with a fuzzy finder.
func pickDirectory(root string, exclude []*regexp.Regexp) (string, error) {
	dirs, err := candidateDirs(root, exclude)
	if err != nil {
		return "", err
	}
	if len(dirs) == 0 {
		return "", fmt.Errorf("no directories found under %s", root)
	}

	idx, err := fuzzyfinder.Find(
		dirs,
		func(i int) string { return dirs[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to scan. Enter to confirm."
			}
			entries, readErr := os.ReadDir(dirs[i])
			if readErr != nil {
				return fmt.Sprintf("%s\nError listing directory: %v", dirs[i], readErr)
			}
			preview := dirs[i] + "\n"
			for _, e := range entries {
				name := e.Name()
				if e.IsDir() {
					name += "/"
				}
				preview += "  " + name + "\n"
			}
			return preview
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errSelectionAborted
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return dirs[idx], nil
}
