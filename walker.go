package main

import (
	"io/fs"
	"os"
	"path/filepath"
)

// dirLevel is one directory visited by treeWalker.
type dirLevel struct {
	Path    string   // root as given, children joined below it
	Subdirs []string // entry names
	Files   []string // entry names
}

// treeWalker visits directories top-down, one level per call to Next.
// Calling SkipDir before the following Next prevents descending into the
// current level's subdirectories.
type treeWalker struct {
	pending []string
	current *dirLevel
	skip    bool
	err     error

	// onError decides what happens when a directory cannot be listed.
	// Returning nil skips the directory; returning an error stops the walk.
	onError func(path string, err error) error
}

func newTreeWalker(root string, onError func(path string, err error) error) *treeWalker {
	if onError == nil {
		onError = func(_ string, err error) error { return err }
	}
	return &treeWalker{
		pending: []string{root},
		onError: onError,
	}
}

// Next advances to the next directory. It returns false once the tree is
// exhausted or the walk stopped on an error (see Err).
func (w *treeWalker) Next() bool {
	if w.err != nil {
		return false
	}
	if w.current != nil && !w.skip {
		// Push in reverse so the first subdirectory is visited next.
		for i := len(w.current.Subdirs) - 1; i >= 0; i-- {
			w.pending = append(w.pending, filepath.Join(w.current.Path, w.current.Subdirs[i]))
		}
	}
	w.current = nil
	w.skip = false

	for len(w.pending) > 0 {
		dir := w.pending[len(w.pending)-1]
		w.pending = w.pending[:len(w.pending)-1]

		level, err := readLevel(dir)
		if err != nil {
			if stop := w.onError(dir, err); stop != nil {
				w.err = stop
				return false
			}
			continue
		}
		w.current = level
		return true
	}
	return false
}

// Level returns the directory produced by the last successful Next.
func (w *treeWalker) Level() *dirLevel {
	return w.current
}

// SkipDir prunes the subdirectories of the current level.
func (w *treeWalker) SkipDir() {
	w.skip = true
}

// Err returns the error that stopped the walk, if any.
func (w *treeWalker) Err() error {
	return w.err
}

// readLevel lists dir and splits its entries into subdirectories and files.
// Symlinked directories are not followed; symlinked files count as files.
func readLevel(dir string) (*dirLevel, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	level := &dirLevel{Path: dir}
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			level.Subdirs = append(level.Subdirs, entry.Name())
		case entry.Type()&fs.ModeSymlink != 0:
			info, statErr := os.Stat(filepath.Join(dir, entry.Name()))
			if statErr == nil && info.IsDir() {
				continue
			}
			level.Files = append(level.Files, entry.Name())
		default:
			level.Files = append(level.Files, entry.Name())
		}
	}
	return level, nil
}
