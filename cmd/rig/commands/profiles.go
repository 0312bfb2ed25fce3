package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

// profilesPick holds the value of the --pick flag.
var profilesPick bool

// findProfile is the interactive picker, replaced in tests.
var findProfile = func(names []string, preview func(int) string) (int, error) {
	return fuzzyfinder.Find(
		names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(i)
		}),
	)
}

func init() {
	profilesCmd.Flags().BoolVar(&profilesPick, "pick", false,
		"choose a profile interactively and print its folder")
	rootCmd.AddCommand(profilesCmd)
}

var profilesCmd = &cobra.Command{
	Use:   "profiles [dir]",
	Short: "List the profiles provided by the configured rig package",
	Long: `List the folders under profiles/ in the rig package named by
config/rig.json. The profile the project uses is marked with "*".`,
	Example: `  rig profiles
  rig profiles apps/web --pick

  See Also: rig show, rig init`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfiles,
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := newLoader(cmd).Load(rigconfig.LoadOptions{ProjectFolderPath: projectArg(args)})
	if err != nil {
		return explain(err)
	}

	names, err := cfg.ProfileNames()
	if err != nil {
		return explain(err)
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(out, "%s provides no profiles.\n", cfg.PackageName())
		return nil
	}

	if profilesPick {
		return pickProfile(out, cfg, names)
	}

	for _, name := range names {
		if name == cfg.ProfileName() {
			fmt.Fprintf(out, "* %s\n", color.GreenString(name))
			continue
		}
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

func pickProfile(w io.Writer, cfg *rigconfig.RigConfig, names []string) error {
	packageFolder, err := profilesRoot(cfg)
	if err != nil {
		return explain(err)
	}

	idx, err := findProfile(names, func(i int) string {
		return fmt.Sprintf("Package: %s\nProfile: %s\nFolder:  %s",
			cfg.PackageName(), names[i], filepath.Join(packageFolder, names[i]))
	})
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive profile picker failed")
	}

	fmt.Fprintln(w, filepath.Join(packageFolder, names[idx]))
	return nil
}

// profilesRoot returns the profiles folder of the rig package, even when the
// configured profile itself is missing.
func profilesRoot(cfg *rigconfig.RigConfig) (string, error) {
	pkg, err := cfg.ResolvedPackageFolder()
	if err == nil {
		return filepath.Join(pkg, rigconfig.ProfilesFolder), nil
	}
	var missing *rigconfig.ProfileMissingError
	if errors.As(err, &missing) {
		return filepath.Dir(missing.Path), nil
	}
	return "", err
}
