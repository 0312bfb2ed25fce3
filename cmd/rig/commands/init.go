package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/pkg/fileutil"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

// schemaURL is written to the $schema key of new rig.json files.
const schemaURL = "https://developer.microsoft.com/json-schemas/rig-package/rig.schema.json"

var (
	initPackage string
	initProfile string
	initForce   bool
)

func init() {
	initCmd.Flags().StringVar(&initPackage, "package", "",
		"rig package name, e.g. example-rig or @scope/example-rig")
	initCmd.Flags().StringVar(&initProfile, "profile", "",
		"profile name (default \"default\")")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite an existing config/rig.json")
	_ = initCmd.MarkFlagRequired("package")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create config/rig.json",
	Long: `Write a config/rig.json that points the project at a rig package.

The settings are validated before anything is written, and the file is
replaced atomically.`,
	Example: `  rig init --package example-rig
  rig init --package @acme/node-rig --profile library apps/web

  See Also: rig validate, rig profiles`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// rigFile is the on-disk layout written by init.
type rigFile struct {
	Schema      string `json:"$schema"`
	PackageName string `json:"rigPackageName"`
	Profile     string `json:"rigProfile,omitempty"`
}

func runInit(cmd *cobra.Command, args []string) error {
	return writeRigFile(cmd, afero.NewOsFs(), projectArg(args))
}

func writeRigFile(cmd *cobra.Command, fsys afero.Fs, dir string) error {
	obj := map[string]any{rigconfig.FieldPackageName: initPackage}
	if cmd.Flags().Changed("profile") {
		obj[rigconfig.FieldProfile] = initProfile
	}
	if _, err := rigconfig.ValidateRigJSON(obj); err != nil {
		return errors.NewUserError(err, "Run: rig schema, to see the accepted values")
	}

	project, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", dir)
	}
	configDir := filepath.Join(project, rigconfig.ConfigFolder)
	path := filepath.Join(configDir, rigconfig.ConfigFileName)

	exists, err := fileutil.Exists(fsys, path)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if exists && !initForce {
		return errors.NewUserError(errors.Newf("%s already exists", path), "Use --force to overwrite")
	}

	if err := fsys.MkdirAll(configDir, 0o755); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "creating %s", configDir), "")
	}
	if err := fileutil.AtomicWriteJSON(fsys, path, rigFile{
		Schema:      schemaURL,
		PackageName: initPackage,
		Profile:     initProfile,
	}); err != nil {
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
