package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema for rig.json",
	Long: `Print the JSON schema that describes config/rig.json. Save it next to
the file and reference it from "$schema" for editor validation.`,
	Example: `  rig schema > config/rig.schema.json`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(rigconfig.JSONSchemaBytes())
		return errors.Wrap(err, "writing schema")
	},
}
