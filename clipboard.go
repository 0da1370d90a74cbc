package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// copyFileToClipboard places the finished report on the system clipboard.
func copyFileToClipboard(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s for clipboard: %w", path, err)
	}
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("error writing to clipboard: %w", err)
	}
	return nil
}
