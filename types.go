package main

import (
	"sort"
	"time"
)

// dockerfileKey is the literal filename accepted regardless of the extension set.
const dockerfileKey = "Dockerfile"

// readResult is the outcome of reading one accepted file as text.
// Exactly one of Content or Err is meaningful.
type readResult struct {
	Content []byte
	Err     error
}

// FileRecord describes one accepted file. It lives only for the duration of
// the write of its block.
type FileRecord struct {
	Path   string // relative to the scan root, forward slashes
	Key    string // matched extension or "Dockerfile"
	Result readResult
}

// Summary holds the counters rendered at the end of the report.
type Summary struct {
	GeneratedAt time.Time
	TotalFiles  int
	CountsByKey map[string]int
	ReadErrors  int // files counted but whose content could not be read

	TokensCounted bool
	TotalTokens   int
}

func newSummary(generatedAt time.Time) Summary {
	return Summary{
		GeneratedAt: generatedAt,
		CountsByKey: make(map[string]int),
	}
}

// add records one accepted file under key.
func (s *Summary) add(key string) {
	s.CountsByKey[key]++
	s.TotalFiles++
}

// Keys returns the counted keys in ascending lexicographic order.
func (s Summary) Keys() []string {
	keys := make([]string, 0, len(s.CountsByKey))
	for k := range s.CountsByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
