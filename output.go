package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
)

// reportSink receives the report as it is produced: a header, one block per
// accepted file, then the summary.
type reportSink interface {
	Begin(generatedAt time.Time) error
	WriteBlock(rec FileRecord) error
	End(summary Summary) error
	Close() error
}

// textReport writes the plain text reference file incrementally.
type textReport struct {
	f      *os.File
	w      *bufio.Writer
	closed bool
}

// createTextReport opens path for writing, truncating any existing content.
func createTextReport(path string) (*textReport, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating output file %s: %w", path, err)
	}
	return &textReport{f: f, w: bufio.NewWriter(f)}, nil
}

func (r *textReport) Begin(generatedAt time.Time) error {
	return writeHeader(r.w, generatedAt)
}

func (r *textReport) WriteBlock(rec FileRecord) error {
	return writeBlock(r.w, rec)
}

func (r *textReport) End(summary Summary) error {
	return writeSummary(r.w, summary)
}

// Close flushes and closes the file. It is safe to call more than once.
func (r *textReport) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	flushErr := r.w.Flush()
	closeErr := r.f.Close()
	if flushErr != nil {
		return fmt.Errorf("error writing output file %s: %w", r.f.Name(), flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("error closing output file %s: %w", r.f.Name(), closeErr)
	}
	return nil
}

func writeHeader(w io.Writer, generatedAt time.Time) error {
	_, err := fmt.Fprintf(w, "Project File Scan - Generated on %s\n%s\n\n",
		generatedAt.Format(timestampLayout), heavyRule)
	return err
}

// writeBlock renders one file. A failed read keeps the header and puts a
// single error line where the content would be.
func writeBlock(w io.Writer, rec FileRecord) error {
	if _, err := fmt.Fprintf(w, "File: %s\nType: %s\n%s\n", rec.Path, rec.Key, lightRule); err != nil {
		return err
	}
	if rec.Result.Err != nil {
		if _, err := fmt.Fprintf(w, "Error reading %s: %v", rec.Path, rec.Result.Err); err != nil {
			return err
		}
	} else if _, err := w.Write(rec.Result.Content); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n\n%s\n\n", heavyRule)
	return err
}

func writeSummary(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("\nScan Summary\n")
	b.WriteString(heavyRule + "\n")
	fmt.Fprintf(&b, "Total files scanned: %d\n", s.TotalFiles)
	if s.TokensCounted {
		fmt.Fprintf(&b, "Total tokens: %d\n", s.TotalTokens)
	}
	b.WriteString("\nFiles by type:\n")
	for _, key := range s.Keys() {
		fmt.Fprintf(&b, "%s: %d files\n", key, s.CountsByKey[key])
	}
	_, err := io.WriteString(w, b.String())
	return err
}
