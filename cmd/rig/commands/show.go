package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/rig/internal/config"
	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

// showOutput holds the value of the --output flag.
var showOutput string

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "",
		"output format: text, json, yaml, toml (default from settings)")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [dir]",
	Short: "Show the rig configuration of a project",
	Long: `Show the settings read from config/rig.json and where they resolve to.

Resolution failures are reported in the output rather than as an error,
so show also works for projects whose rig package is not installed yet.`,
	Example: `  rig show
  rig show apps/web --output yaml

  See Also: rig resolve, rig validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

// descriptor is the serialized form of a loaded rig configuration.
type descriptor struct {
	ProjectFolder       string `json:"projectFolder" yaml:"projectFolder" toml:"projectFolder"`
	Found               bool   `json:"found" yaml:"found" toml:"found"`
	FilePath            string `json:"filePath,omitempty" yaml:"filePath,omitempty" toml:"filePath,omitempty"`
	PackageName         string `json:"rigPackageName,omitempty" yaml:"rigPackageName,omitempty" toml:"rigPackageName,omitempty"`
	ProfileName         string `json:"rigProfile,omitempty" yaml:"rigProfile,omitempty" toml:"rigProfile,omitempty"`
	RelativeProfilePath string `json:"relativeProfilePath,omitempty" yaml:"relativeProfilePath,omitempty" toml:"relativeProfilePath,omitempty"`
	PackageFolder       string `json:"packageFolder,omitempty" yaml:"packageFolder,omitempty" toml:"packageFolder,omitempty"`
	ProfileFolder       string `json:"profileFolder,omitempty" yaml:"profileFolder,omitempty" toml:"profileFolder,omitempty"`
	ResolveError        string `json:"resolveError,omitempty" yaml:"resolveError,omitempty" toml:"resolveError,omitempty"`
}

func describe(cfg *rigconfig.RigConfig) descriptor {
	d := descriptor{
		ProjectFolder:       cfg.ProjectFolderPath(),
		Found:               cfg.Found(),
		FilePath:            cfg.FilePath(),
		PackageName:         cfg.PackageName(),
		ProfileName:         cfg.ProfileName(),
		RelativeProfilePath: cfg.RelativeProfilePath(),
	}
	if !cfg.Found() {
		return d
	}

	if _, err := cfg.GetResolvedProfileFolder(); err != nil {
		d.ResolveError = err.Error()
	}
	if loc, ok := cfg.ResolvedLocation(); ok {
		d.PackageFolder = loc.PackageFolder
		d.ProfileFolder = loc.ProfileFolder
	}
	return d
}

func runShow(cmd *cobra.Command, args []string) error {
	format := showOutput
	if format == "" {
		format = settings.Output
	}

	cfg, err := newLoader(cmd).Load(rigconfig.LoadOptions{ProjectFolderPath: projectArg(args)})
	if err != nil {
		return explain(err)
	}
	d := describe(cfg)

	out := cmd.OutOrStdout()
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(d), "encoding JSON")
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	case config.OutputTOML:
		enc := toml.NewEncoder(out)
		return errors.Wrap(enc.Encode(d), "encoding TOML")
	case "", config.OutputText:
		printDescriptor(out, d)
		return nil
	default:
		return errors.NewUserError(
			errors.Wrapf(errors.ErrInvalidArgs, "unsupported output format %q", format),
			"Use one of: text, json, yaml, toml")
	}
}

func printDescriptor(w io.Writer, d descriptor) {
	label := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", label("Project:"), d.ProjectFolder)
	if !d.Found {
		fmt.Fprintln(w, color.HiBlackString("  No config/rig.json found."))
		return
	}

	fmt.Fprintf(w, "  Config:   %s\n", d.FilePath)
	fmt.Fprintf(w, "  Package:  %s\n", d.PackageName)
	fmt.Fprintf(w, "  Profile:  %s\n", d.ProfileName)
	if d.PackageFolder != "" {
		fmt.Fprintf(w, "  Location: %s\n", d.PackageFolder)
	}
	if d.ProfileFolder != "" {
		fmt.Fprintf(w, "  Folder:   %s\n", color.GreenString(d.ProfileFolder))
	}
	if d.ResolveError != "" {
		fmt.Fprintf(w, "  %s %s\n", color.RedString("Error:"), d.ResolveError)
	}
}
