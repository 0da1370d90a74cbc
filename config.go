package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultOutputFile = "project_reference.txt"

// defaultExtensions is the accepted suffix list, in match priority order.
var defaultExtensions = []string{
	// web and general programming
	".txt", ".py", ".ts", ".js", ".html", ".css", ".md", ".tsx", ".jsx", ".go", ".rs", ".toml",
	// solidity
	".sol",
	// anchor/solana projects
	".json", ".yaml", ".lock",
	// tool configuration
	".config.js", ".config.ts",
}

// ScanOptions is the complete configuration of one scan.
// A nil Extensions or ExcludePatterns selects the defaults; a non-nil list
// replaces them entirely.
type ScanOptions struct {
	Root            string
	Output          string
	Extensions      []string
	ExcludePatterns []string

	// RespectGitignore additionally skips paths matched by Root/.gitignore.
	RespectGitignore bool

	// Tokenizer, when set, counts tokens of every readable file.
	Tokenizer Tokenizer

	// PDFOutput, when set, also renders the report as a PDF.
	PDFOutput string

	Now      func() time.Time
	Warnings io.Writer
}

// resolvedOptions is ScanOptions with defaults applied and patterns compiled.
type resolvedOptions struct {
	ScanOptions
	exclude    []*regexp.Regexp
	outputAbs  string
	extensions []string
}

func (o ScanOptions) resolve() (*resolvedOptions, error) {
	if o.Root == "" {
		return nil, fmt.Errorf("no directory to scan")
	}
	if o.Output == "" {
		o.Output = defaultOutputFile
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Warnings == nil {
		o.Warnings = os.Stderr
	}

	patterns := o.ExcludePatterns
	if patterns == nil {
		patterns = defaultExcludePatterns
	}
	exclude, err := compileExcludePatterns(patterns)
	if err != nil {
		return nil, err
	}

	extensions := o.Extensions
	if extensions == nil {
		extensions = defaultExtensions
	}

	outputAbs, err := filepath.Abs(o.Output)
	if err != nil {
		return nil, fmt.Errorf("error resolving output path %s: %w", o.Output, err)
	}

	return &resolvedOptions{
		ScanOptions: o,
		exclude:     exclude,
		outputAbs:   outputAbs,
		extensions:  extensions,
	}, nil
}

// splitList flattens flag or config values that may be comma or space
// separated into one list. Empty input yields nil so defaults still apply.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, field := range strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			out = append(out, field)
		}
	}
	return out
}

// listFlags accept several space separated values after one occurrence,
// as in "-e .rs .sol .py".
var listFlags = map[string]bool{
	"-e": true, "--extensions": true,
	"-x": true, "--exclude": true,
}

// expandListFlags rewrites "-e .rs .py" into "-e .rs -e .py" so that the
// values following a list flag are not taken for positional arguments.
// Consumption stops at the next argument starting with "-".
func expandListFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if !listFlags[arg] {
			out = append(out, arg)
			continue
		}
		consumed := false
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, arg, args[i])
			consumed = true
		}
		if !consumed {
			// Leave it for cobra to report the missing value.
			out = append(out, arg)
		}
	}
	return out
}

// initConfig reads the optional config file into v. Flags bound to v take
// precedence over file values, which take precedence over defaults.
func initConfig(v *viper.Viper, cfgFile string, warn io.Writer) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "projscan"))
		}
		v.AddConfigPath(".")
		// No SetConfigType: a built "projscan" binary in the working directory
		// would otherwise be read as a config file.
		v.SetConfigName("projscan")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	infof(warn, "Using config file: %s", v.ConfigFileUsed())
	return nil
}
