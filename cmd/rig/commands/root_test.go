package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/rig/internal/config"
	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			settings = &config.Config{}
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_SettingsLevel(t *testing.T) {
	origVerbosity, origSettings := verbosity, settings
	defer func() { verbosity, settings = origVerbosity, origSettings }()

	verbosity = 0
	settings = &config.Config{LogLevel: "debug"}
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if !slog.Default().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("log_level from settings should enable debug")
	}

	verbosity = 1
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if slog.Default().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("-v should take precedence over log_level")
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity, quiet = 1, true
	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
	if !errors.Is(err, errors.ErrInvalidArgs) {
		t.Errorf("error should wrap ErrInvalidArgs: %v", err)
	}
	if got := errors.ExitCode(err); got != errors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", got, errors.ExitUser)
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rig.log")
	project := newProject(t, `{"rigPackageName": "example-rig"}`)
	installRig(t, project, "example-rig", "default")

	if _, _, err := execute(t, "-vv", "--log-file", logPath, "resolve", project); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"resolved rig profile"`) {
		t.Errorf("log file should contain the debug record, got:\n%s", data)
	}
}

func TestExecute_PrintsErrorAndHint(t *testing.T) {
	project := newProject(t, "")

	_, stderr, err := execute(t, "resolve", project)
	if err == nil {
		t.Fatal("expected an error for a project without rig.json")
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr should contain the error, got:\n%s", stderr)
	}
	if !strings.Contains(stderr, "Hint: Run: rig init") {
		t.Errorf("stderr should contain the hint, got:\n%s", stderr)
	}
}

func TestExecute_InvalidSettingsFile(t *testing.T) {
	resetFlags(rootCmd)
	bad := filepath.Join(t.TempDir(), "config.yaml")
	writeTestFile(t, bad, "output: xml\n")

	var stderr bytes.Buffer
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--config", bad, "schema"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("Execute() error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(stderr.String(), `unsupported value "xml"`) {
		t.Errorf("stderr should name the bad value, got:\n%s", stderr.String())
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version command should not return an error, got: %v", err)
	}
	for _, want := range []string{"rig version", "commit:", "built:", "go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q\nGot:\n%s", want, out)
		}
	}
}
