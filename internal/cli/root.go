// Package cli wires configuration, logging and the converter into cobra commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/nconklindev/gridloc/internal/config"
	"github.com/nconklindev/gridloc/internal/converter"
	"github.com/nconklindev/gridloc/internal/logger"

	"github.com/spf13/cobra"
)

// Exit codes returned by Execute.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitPrecondition = 2
)

// BuildInfo is stamped at build time via -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type runFlags struct {
	inputDir    string
	input       string
	output      string
	versionFile string
	sheet       string
	metricsFile string
	logLevel    string
	logFormat   string
}

type app struct {
	cfg   *config.Config
	flags runFlags
}

// reportedError marks an error that has already been logged in full.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute runs the root command and returns the process exit code.
func Execute(cfg *config.Config, info BuildInfo, args []string) int {
	cmd := NewRootCmd(cfg, info)
	if args != nil {
		cmd.SetArgs(args)
	}

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to a process exit code: input precondition failures
// get ExitPrecondition, anything else ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case converter.IsPrecondition(err):
		return ExitPrecondition
	default:
		return ExitFailure
	}
}

// NewRootCmd builds the gridloc command tree with flag defaults taken from cfg.
func NewRootCmd(cfg *config.Config, info BuildInfo) *cobra.Command {
	a := &app{
		cfg: cfg,
		flags: runFlags{
			inputDir:    cfg.InputDir,
			output:      cfg.OutputFile,
			versionFile: cfg.VersionFile,
			sheet:       cfg.Sheet,
			metricsFile: cfg.MetricsFile,
			logLevel:    cfg.LogLevel,
			logFormat:   cfg.LogFormat,
		},
	}

	rootCmd := &cobra.Command{
		Use:   "gridloc",
		Short: "Convert the KMA forecast grid spreadsheet to location JSON",
		Long: `gridloc reads the Korea Meteorological Administration grid/coordinate
spreadsheet, validates every row and writes a versioned location JSON file
plus a version stamp.

Without a subcommand it runs "convert" on the newest spreadsheet in the
input directory.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConvert(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.inputDir, "input-dir", a.flags.inputDir, "Directory scanned for the newest spreadsheet")
	pf.StringVarP(&a.flags.input, "input", "i", "", "Spreadsheet to convert (skips discovery)")
	pf.StringVarP(&a.flags.output, "output", "o", a.flags.output, "Location JSON output path")
	pf.StringVar(&a.flags.versionFile, "version-file", a.flags.versionFile, "Version stamp output path")
	pf.StringVar(&a.flags.sheet, "sheet", a.flags.sheet, "Workbook sheet name (default: first sheet)")
	pf.StringVar(&a.flags.metricsFile, "metrics-file", a.flags.metricsFile, "Write run metrics in Prometheus textfile format")
	pf.StringVar(&a.flags.logLevel, "log-level", a.flags.logLevel, "Log level: trace, debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", a.flags.logFormat, "Log format: console or json")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "convert",
			Short: "Convert the newest (or given) spreadsheet to location JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runConvert(cmd)
			},
		},
		&cobra.Command{
			Use:   "tui",
			Short: "Pick a spreadsheet and convert it interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runTUI(cmd)
			},
		},
	)

	return rootCmd
}

func (a *app) logger(cmd *cobra.Command) logger.Logger {
	return logger.New(logger.Options{
		Level:  a.flags.logLevel,
		Format: a.flags.logFormat,
		Writer: cmd.ErrOrStderr(),
	})
}

// fail logs err with its diagnostic context and marks it as reported.
func (a *app) fail(log logger.Logger, err error) error {
	event := log.Error().Err(err)

	var convErr *converter.ConversionError
	if errors.As(err, &convErr) {
		event = event.Str("stage", convErr.Stage).Str("path", convErr.Path)
	}

	switch {
	case errors.Is(err, converter.ErrInputDirMissing):
		event = event.Str("hint", "create the input directory and place the KMA grid spreadsheet in it")
	case errors.Is(err, converter.ErrNoInputFile):
		event = event.Str("hint", "download the grid spreadsheet into the input directory")
	case errors.Is(err, converter.ErrSheetNotFound):
		event = event.Str("hint", "check --sheet against the workbook's sheet names")
	case errors.Is(err, converter.ErrInsufficientColumns):
		event = event.Str("hint", "the sheet does not match the KMA grid layout")
	}

	event.Bool("precondition", converter.IsPrecondition(err)).Msg("conversion failed")
	return &reportedError{err: err}
}
