package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs rig with args against an isolated settings file and returns
// what the command wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	settingsFile := filepath.Join(t.TempDir(), "config.yaml")
	writeTestFile(t, settingsFile, "output: text\n")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", settingsFile}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// newProject creates a project folder, with config/rig.json when rigJSON is
// non-empty.
func newProject(t *testing.T, rigJSON string) string {
	t.Helper()
	dir := t.TempDir()
	if rigJSON != "" {
		writeTestFile(t, filepath.Join(dir, "config", "rig.json"), rigJSON)
	}
	return dir
}

// installRig creates node_modules/<pkg> under dir with the given profiles and
// returns the package folder.
func installRig(t *testing.T, dir, pkg string, profiles ...string) string {
	t.Helper()
	pkgFolder := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg))
	writeTestFile(t, filepath.Join(pkgFolder, "package.json"), `{"name": "`+pkg+`"}`)
	for _, p := range profiles {
		if err := os.MkdirAll(filepath.Join(pkgFolder, "profiles", p), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return pkgFolder
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
