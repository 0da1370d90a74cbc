package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	gitignore "github.com/monochromegane/go-gitignore"
)

// errInvalidUTF8 marks files whose content is not valid UTF-8 text.
var errInvalidUTF8 = errors.New("invalid UTF-8")

// scanDirectory walks opts.Root and writes the reference file to opts.Output.
// Only per-file read failures are recovered; every other error ends the scan
// and is returned.
func scanDirectory(opts ScanOptions) (Summary, error) {
	ro, err := opts.resolve()
	if err != nil {
		return Summary{}, err
	}

	info, err := os.Stat(ro.Root)
	if err != nil {
		return Summary{}, fmt.Errorf("error accessing path %s: %w", ro.Root, err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("%s is not a directory", ro.Root)
	}

	var ignore gitignore.IgnoreMatcher
	if ro.RespectGitignore {
		ignore = loadGitignore(ro.Root, ro.Warnings)
	}

	report, err := createTextReport(ro.Output)
	if err != nil {
		return Summary{}, err
	}
	defer report.Close()

	agg := &aggregator{
		opts:    ro,
		ignore:  ignore,
		report:  report,
		summary: newSummary(ro.Now()),
	}
	if ro.PDFOutput != "" {
		agg.extras = append(agg.extras, newPDFReport(ro.PDFOutput))
	}
	defer agg.closeExtras()

	if err := agg.begin(); err != nil {
		return agg.summary, err
	}

	walker := newTreeWalker(ro.Root, func(path string, err error) error {
		if path == ro.Root {
			return fmt.Errorf("error reading directory %s: %w", path, err)
		}
		warnf(ro.Warnings, "skipping unreadable directory %s: %v", path, err)
		return nil
	})
	for walker.Next() {
		level := walker.Level()
		if agg.excludedDir(level.Path) {
			walker.SkipDir()
			continue
		}
		if err := agg.visit(level); err != nil {
			return agg.summary, err
		}
	}
	if err := walker.Err(); err != nil {
		return agg.summary, err
	}

	if err := agg.end(); err != nil {
		return agg.summary, err
	}
	return agg.summary, report.Close()
}

// aggregator turns accepted files into report blocks and keeps the counts.
type aggregator struct {
	opts    *resolvedOptions
	ignore  gitignore.IgnoreMatcher
	report  reportSink
	extras  []reportSink // best effort; failures are warnings
	summary Summary
}

func (a *aggregator) begin() error {
	if a.opts.Tokenizer != nil {
		a.summary.TokensCounted = true
	}
	if err := a.report.Begin(a.summary.GeneratedAt); err != nil {
		return fmt.Errorf("error writing output file %s: %w", a.opts.Output, err)
	}
	a.eachExtra(func(s reportSink) error { return s.Begin(a.summary.GeneratedAt) })
	return nil
}

func (a *aggregator) end() error {
	if err := a.report.End(a.summary); err != nil {
		return fmt.Errorf("error writing output file %s: %w", a.opts.Output, err)
	}
	a.eachExtra(func(s reportSink) error { return s.End(a.summary) })
	return nil
}

func (a *aggregator) excludedDir(dir string) bool {
	if shouldExclude(dir, a.opts.exclude) {
		return true
	}
	return a.ignore != nil && dir != a.opts.Root && a.ignore.Match(dir, true)
}

// visit processes the files directly inside one directory level.
func (a *aggregator) visit(level *dirLevel) error {
	for _, name := range level.Files {
		key, ok := matchKey(name, a.opts.extensions)
		if !ok {
			continue
		}
		fullPath := filepath.Join(level.Path, name)
		relPath := relativePath(a.opts.Root, fullPath)
		if shouldExclude(relPath, a.opts.exclude) {
			continue
		}
		if a.ignore != nil && a.ignore.Match(fullPath, false) {
			continue
		}
		if a.isOutputFile(fullPath) {
			continue
		}

		a.summary.add(key)
		rec := FileRecord{Path: relPath, Key: key, Result: readText(fullPath)}
		if rec.Result.Err != nil {
			a.summary.ReadErrors++
		} else if a.opts.Tokenizer != nil {
			a.summary.TotalTokens += a.opts.Tokenizer.CountTokens(string(rec.Result.Content))
		}

		if err := a.report.WriteBlock(rec); err != nil {
			return fmt.Errorf("error writing output file %s: %w", a.opts.Output, err)
		}
		a.eachExtra(func(s reportSink) error { return s.WriteBlock(rec) })
	}
	return nil
}

// eachExtra applies fn to every optional sink, dropping a sink after its
// first failure.
func (a *aggregator) eachExtra(fn func(reportSink) error) {
	kept := a.extras[:0]
	for _, s := range a.extras {
		if err := fn(s); err != nil {
			warnf(a.opts.Warnings, "%v", err)
			_ = s.Close()
			continue
		}
		kept = append(kept, s)
	}
	a.extras = kept
}

func (a *aggregator) closeExtras() {
	for _, s := range a.extras {
		if err := s.Close(); err != nil {
			warnf(a.opts.Warnings, "%v", err)
		}
	}
	a.extras = nil
}

// isOutputFile reports whether path is the report being written, so a scan
// of a tree containing its own output never reads it.
func (a *aggregator) isOutputFile(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && abs == a.opts.outputAbs
}

// matchKey selects the counting key for a filename: Dockerfile first, then
// the first configured extension the name ends with.
func matchKey(name string, extensions []string) (string, bool) {
	if name == dockerfileKey {
		return dockerfileKey, true
	}
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(name, ext) {
			return ext, true
		}
	}
	return "", false
}

// relativePath returns path relative to root with forward slashes.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// readText reads the whole file and requires it to be valid UTF-8.
func readText(path string) readResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return readResult{Err: err}
	}
	if off := invalidUTF8Offset(content); off >= 0 {
		return readResult{Err: fmt.Errorf("%w: cannot decode byte 0x%02x at offset %d", errInvalidUTF8, content[off], off)}
	}
	return readResult{Content: content}
}

// invalidUTF8Offset returns the offset of the first byte that does not start
// a valid UTF-8 sequence, or -1.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
