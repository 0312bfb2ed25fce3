package commands

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/internal/validator"
	"github.com/thoreinstein/rig/pkg/fileutil"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

var (
	validateJSON   bool
	validateStrict bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output results as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"treat warnings as failures")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Validate config/rig.json",
	Long: `Validate rig.json files without resolving the rig package.

Each path may be a project folder, in which case config/rig.json inside it
is checked, or the rig.json file itself. Defaults to the current folder.

Use --strict to also fail on warnings, such as a $schema that does not
point at the rig.json schema.

Exit codes:
  0 - All files are valid
  1 - At least one file failed validation`,
	Example: `  rig validate
  rig validate apps/web apps/api --json

  See Also: rig init, rig schema`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	fsys := afero.NewOsFs()
	results := make([]*validator.Result, 0, len(paths))
	failed := false
	for _, p := range paths {
		res, err := validateRigFile(fsys, p)
		if err != nil {
			return err
		}
		failed = failed || res.HasErrors() || (validateStrict && res.HasWarnings())
		results = append(results, res)
	}

	format := validator.FormatText
	if validateJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(results...); err != nil {
		return err
	}

	if failed {
		return errors.NewExitError(errors.ErrValidationFailed, errors.ExitUser)
	}
	return nil
}

// validateRigFile checks one rig.json and collects every problem as an issue.
// Only unexpected I/O failures are returned as errors.
func validateRigFile(fsys afero.Fs, path string) (*validator.Result, error) {
	file, err := rigFilePath(fsys, path)
	if err != nil {
		return nil, err
	}
	res := &validator.Result{Path: file}

	obj, err := rigconfig.ReadRigJSONFile(fsys, file)
	if err != nil {
		var parseErr *rigconfig.ParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			res.AddError("", "file not found", nil)
		case errors.Is(err, fileutil.ErrFileTooLarge):
			res.AddError("", err.Error(), nil)
		case errors.As(err, &parseErr):
			res.AddError("", parseErr.Err.Error(), nil)
		default:
			return nil, errors.NewSystemError(err, "")
		}
		return res, nil
	}

	if _, err := rigconfig.ValidateRigJSON(obj); err != nil {
		var valErr *rigconfig.ValidationError
		if !errors.As(err, &valErr) {
			return nil, err
		}
		res.Add(validator.Issue{
			Severity: validator.SeverityError,
			Field:    valErr.Field,
			Message:  valErr.Message,
			Value:    valErr.Value,
			Context:  map[string]string{"rule": valErr.Err.Error()},
		})
	}

	switch schema, ok := obj[rigconfig.FieldSchema].(string); {
	case !ok:
		if _, present := obj[rigconfig.FieldSchema]; !present {
			res.AddInfo(rigconfig.FieldSchema, "no schema reference; run \"rig schema\" for editor support", nil)
		}
	case !strings.HasSuffix(schema, rigconfig.SchemaFileName):
		res.AddWarning(rigconfig.FieldSchema, "does not reference "+rigconfig.SchemaFileName, schema)
	}
	return res, nil
}

// rigFilePath maps a project folder to its config/rig.json and returns other
// paths unchanged.
func rigFilePath(fsys afero.Fs, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", path)
	}
	isDir, err := fileutil.IsDir(fsys, abs)
	if err != nil {
		return "", errors.NewSystemError(err, "")
	}
	if isDir {
		return filepath.Join(abs, rigconfig.ConfigFolder, rigconfig.ConfigFileName), nil
	}
	return abs, nil
}
