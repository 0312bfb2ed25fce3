// Package commands implements the CLI commands for rig.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rig/cmd"
	"github.com/thoreinstein/rig/internal/config"
	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/internal/logging"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// settings is the loaded CLI configuration, set before any command runs.
var settings = &config.Config{Output: config.OutputText}

// logFileHandle is closed by Execute once the command finishes.
var logFileHandle io.Closer

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"settings file (default: ./.rig/config.yaml or $XDG_CONFIG_HOME/rig/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("rig version {{.Version}}\n")

	// Errors are printed by Execute together with their suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "rig",
	Short: "Resolve shared build configuration from rig packages",
	Long: `rig locates a project's config/rig.json, validates it, and resolves the
rig package and profile it names to a folder on disk.

A rig package is an installed package whose name ends in "-rig". It
provides one folder per profile under profiles/. Projects point at it
instead of copying configuration files around.`,
	Example: `  # Print the profile folder for the current project
  rig resolve

  # Check config/rig.json
  rig validate

  # Find a tool config in the project or its rig profile
  rig lookup config/jest.config.json

  See Also: rig init, rig show, rig profiles`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadSettings(); err != nil {
			return err
		}
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func loadSettings() error {
	cfg, err := config.Load(config.New(), configFile)
	if err != nil {
		return errors.NewUserError(err, "Check the settings file or pass --config")
	}
	settings = cfg
	return nil
}

// setupLogging configures the default logger based on verbosity flags and
// the settings file.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.Wrap(errors.ErrInvalidArgs, "cannot use --quiet and --verbose together"), "")
	}

	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbosity > 0:
		level = logging.LevelFromVerbosity(verbosity)
	case settings.LogLevel != "":
		if l, ok := logging.ParseLevel(settings.LogLevel); ok {
			level = l
		}
	}

	format := logging.Format(logFormat)
	if !cmd.Flags().Changed("log-format") && settings.LogFormat != "" {
		format = logging.Format(settings.LogFormat)
	}

	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{logging.NewFormatHandler(cmd.ErrOrStderr(), format, opts)}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		logFileHandle = f
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// newLoader returns a rig.json loader that logs through the command's logger.
func newLoader(cmd *cobra.Command) *rigconfig.Loader {
	return rigconfig.NewLoader(rigconfig.WithLogger(logging.FromContext(cmd.Context())))
}

// projectArg returns the project folder named by args, or the working directory.
func projectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// Execute runs the root command and prints any error with its suggestion.
func Execute() error {
	err := rootCmd.Execute()
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("Hint:"), exitErr.Suggestion)
	}
}
