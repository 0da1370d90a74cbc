package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version = "dev"

// cliOptions holds flag values that are not routed through viper.
type cliOptions struct {
	cfgFile     string
	summaryFile string
	clipboard   bool
	interactive bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "projscan DIRECTORY",
		Short: "Combine a project's source files into a single reference file.",
		Long: `projscan walks DIRECTORY, selects files by extension (plus any file named
Dockerfile), skips excluded directories, and writes every selected file with a
short header into one text file followed by a summary of counts by type.

Lists given to --extensions and --exclude replace the defaults entirely.`,
		Version:      version,
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.interactive {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, opts.cfgFile, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default $HOME/.config/projscan/projscan.toml, then ./projscan.toml)")

	flags.StringP("output", "o", defaultOutputFile, "Output file path")
	flags.StringSliceP("extensions", "e", nil, "File extensions to include, replacing the defaults (e.g. -e .rs .sol .py)")
	flags.StringSliceP("exclude", "x", nil, "Directory names to exclude, replacing the defaults (e.g. -x build dist)")
	flags.Bool("gitignore", false, "Also skip paths matched by DIRECTORY/.gitignore")

	flags.Bool("tokens", false, "Count tokens of scanned content and add the total to the summary")
	flags.String("tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	flags.String("model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	flags.String("tokenizer-file", "", "Path to local tokenizer file")

	flags.String("pdf", "", "Also render the report as a PDF at this path")
	flags.StringVar(&opts.summaryFile, "summary-file", "", "Also write the scan summary as YAML to this path")
	flags.BoolVarP(&opts.clipboard, "clipboard", "c", false, "Copy the finished report to the clipboard")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Pick DIRECTORY with a fuzzy finder (starts at DIRECTORY or .)")

	for key, name := range map[string]string{
		"output":         "output",
		"extensions":     "extensions",
		"exclude":        "exclude",
		"gitignore":      "gitignore",
		"tokens":         "tokens",
		"tokenizer":      "tokenizer",
		"model":          "model",
		"tokenizer_file": "tokenizer-file",
		"pdf":            "pdf",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, opts *cliOptions, args []string) error {
	stderr := cmd.ErrOrStderr()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	excludePatterns := excludePatternsFromNames(splitList(v.GetStringSlice("exclude")))

	if opts.interactive {
		patterns := excludePatterns
		if patterns == nil {
			patterns = defaultExcludePatterns
		}
		compiled, err := compileExcludePatterns(patterns)
		if err != nil {
			return err
		}
		picked, err := pickDirectory(root, compiled)
		if errors.Is(err, errSelectionAborted) {
			infof(stderr, "Interactive selection aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		root = picked
	}

	if isGitURL(root) {
		tempDir, err := cloneGitRepo(root, stderr)
		if err != nil {
			return err
		}
		defer func() {
			infof(stderr, "Cleaning up temporary directory: %s", tempDir)
			_ = os.RemoveAll(tempDir)
		}()
		root = tempDir
	}

	scanOpts := ScanOptions{
		Root:             root,
		Output:           v.GetString("output"),
		Extensions:       splitList(v.GetStringSlice("extensions")),
		ExcludePatterns:  excludePatterns,
		RespectGitignore: v.GetBool("gitignore"),
		PDFOutput:        v.GetString("pdf"),
		Warnings:         stderr,
	}

	if v.GetBool("tokens") {
		tk, err := newTokenizer(TokenizerConfig{
			Type:  v.GetString("tokenizer"),
			Model: v.GetString("model"),
			File:  v.GetString("tokenizer_file"),
		}, stderr)
		if err != nil {
			warnf(stderr, "token counting disabled: %v", err)
		} else {
			scanOpts.Tokenizer = tk
		}
	}

	summary, err := scanDirectory(scanOpts)
	if err != nil {
		return err
	}

	if opts.summaryFile != "" {
		if err := writeSummaryFile(opts.summaryFile, summary, root, scanOpts.Output); err != nil {
			warnf(stderr, "%v", err)
		}
	}
	if opts.clipboard {
		if err := copyFileToClipboard(scanOpts.Output); err != nil {
			warnf(stderr, "%v", err)
		} else {
			infof(stderr, "Report copied to clipboard.")
		}
	}

	successColor.Fprintf(cmd.OutOrStdout(), "Scan complete. Reference file created at: %s\n", scanOpts.Output)
	return nil
}

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(expandListFlags(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
