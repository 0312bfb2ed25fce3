package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

// lookupProject holds the value of the --project flag.
var lookupProject string

func init() {
	lookupCmd.Flags().StringVarP(&lookupProject, "project", "p", ".",
		"project folder")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <relpath>",
	Short: "Find a config file in the project or its rig profile",
	Long: `Print the absolute path of a config file, looking first in the project
folder and then in the resolved rig profile folder.

The project copy always wins, so a project can override a single file
the rig provides.`,
	Example: `  rig lookup config/jest.config.json
  rig lookup tsconfig-base.json --project apps/web

  See Also: rig resolve`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	relPath := args[0]

	cfg, err := newLoader(cmd).Load(rigconfig.LoadOptions{ProjectFolderPath: lookupProject})
	if err != nil {
		return explain(err)
	}

	found, err := cfg.TryResolveConfigFilePath(relPath)
	if err != nil {
		return explain(err)
	}
	if found == "" {
		hint := "Add the file to the project"
		if cfg.Found() {
			hint += " or to the " + cfg.RelativeProfilePath() + " folder of " + cfg.PackageName()
		}
		return errors.NewUserError(errors.Newf("%s not found", relPath), hint)
	}

	fmt.Fprintln(cmd.OutOrStdout(), found)
	return nil
}
