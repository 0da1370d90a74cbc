package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// summaryDocument is the YAML shape of the scan summary.
type summaryDocument struct {
	GeneratedAt string         `yaml:"generated_at"`
	Root        string         `yaml:"root"`
	Output      string         `yaml:"output"`
	TotalFiles  int            `yaml:"total_files"`
	ReadErrors  int            `yaml:"read_errors"`
	TotalTokens *int           `yaml:"total_tokens,omitempty"`
	FilesByType map[string]int `yaml:"files_by_type"`
}

func newSummaryDocument(s Summary, root, output string) summaryDocument {
	doc := summaryDocument{
		GeneratedAt: s.GeneratedAt.Format(timestampLayout),
		Root:        root,
		Output:      output,
		TotalFiles:  s.TotalFiles,
		ReadErrors:  s.ReadErrors,
		FilesByType: s.CountsByKey,
	}
	if s.TokensCounted {
		tokens := s.TotalTokens
		doc.TotalTokens = &tokens
	}
	return doc
}

// writeSummaryFile stores the summary as YAML at path.
func writeSummaryFile(path string, s Summary, root, output string) error {
	data, err := yaml.Marshal(newSummaryDocument(s, root, output))
	if err != nil {
		return fmt.Errorf("error encoding summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing summary file %s: %w", path, err)
	}
	return nil
}
