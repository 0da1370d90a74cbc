package main

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// defaultExcludePatterns prune version control metadata, caches, virtual
// environments, test and deployment directories, dependencies and build output.
var defaultExcludePatterns = []string{
	`(^|/)\.git($|/)`,
	`(^|/)__pycache__($|/)`,
	`(^|/)venv($|/)`,
	`(^|/)env($|/)`,
	`(^|/)tests($|/)`,
	`(^|/)deploy($|/)`,
	`(^|/)node_modules($|/)`,
	`(^|/)target($|/)`,
}

// excludePatternsFromNames wraps bare names so they only match whole path
// segments: "test" matches "a/test/b" but not "a/testing".
// Names are not escaped and may carry regular expression syntax.
func excludePatternsFromNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	patterns := make([]string, 0, len(names))
	for _, name := range names {
		patterns = append(patterns, "(^|/)"+name+"($|/)")
	}
	return patterns
}

// compileExcludePatterns compiles patterns once for the whole run.
func compileExcludePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// shouldExclude reports whether path contains a match for any pattern.
// An empty pattern list excludes nothing.
func shouldExclude(path string, patterns []*regexp.Regexp) bool {
	if len(patterns) == 0 {
		return false
	}
	normalized := filepath.ToSlash(path)
	for _, re := range patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}
