package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clocklog/internal/config"
	"github.com/Tiliavir/clocklog/internal/logging"
	"github.com/Tiliavir/clocklog/internal/msgraph"
	"github.com/Tiliavir/clocklog/internal/parser"
	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/storage"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

var (
	flagConfig    string
	flagFile      string
	flagHistory   []string
	flagLogLevel  string
	flagLogFormat string
)

// current is the application state built from flags and config before any
// subcommand runs.
var current *app

var rootCmd = &cobra.Command{
	Use:   "clk",
	Short: "clk – reads and writes a plain-text work clock",
	Long: `clk keeps a work log in a small plain-text language:

  year=2024
  1/3
  	_project
  	jobA,9:00
  	-17:00

Dates, jobs and tags set context for the clock-ins that follow. clk start and
clk stop append lines to the log; report, list and export read it back.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (.json, .toml or .yaml); default ~/.clk/config.json")
	pf.StringVar(&flagFile, "file", "", "Clock file to read last and append to")
	pf.StringSliceVar(&flagHistory, "history", nil, "Older clock files, read in order before --file")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&flagLogFormat, "log-format", "", "text or json")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError{err}
	})

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(outlookCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var (
		cfg     config.Config
		warning string
		err     error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, warning, err = config.Load()
	}
	if err != nil {
		return err
	}
	if flagFile != "" {
		cfg.File = flagFile
	}
	if len(flagHistory) > 0 {
		cfg.History = flagHistory
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if warning != "" {
		log.Warn(warning)
	}
	current = &app{cfg: cfg, log: log, now: time.Now}
	return nil
}

// userError marks errors caused by input rather than the environment.
type userError struct{ error }

func (e userError) Unwrap() error { return e.error }

func userErrorf(format string, args ...interface{}) error {
	return userError{fmt.Errorf(format, args...)}
}

// userArgs turns argument validation failures into user errors.
func userArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return userError{err}
		}
		return nil
	}
}

// exitCode is 1 for bad input and 2 for storage or environment failures.
func exitCode(err error) int {
	var (
		ue userError
		pe *parser.ParseError
		ce *reader.ClockError
	)
	switch {
	case errors.As(err, &ue),
		errors.As(err, &pe),
		errors.As(err, &ce),
		errors.Is(err, storage.ErrOpenClockin),
		errors.Is(err, storage.ErrNotClockedIn),
		errors.Is(err, msgraph.ErrClockedIn),
		errors.Is(err, msgraph.ErrInvalidJob),
		errors.Is(err, timecalc.ErrDateNotValid):
		return 1
	}
	return 2
}
