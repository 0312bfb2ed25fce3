package commands

import (
	"fmt"
	"io/fs"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

// explain attaches an exit code and a suggestion to errors returned by
// pkg/rigconfig. Errors that already carry an exit code are returned as is.
func explain(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var (
		loadErr    *rigconfig.LoadError
		resolveErr *rigconfig.ResolutionError
		missingErr *rigconfig.ProfileMissingError
	)
	switch {
	case errors.Is(err, rigconfig.ErrNoRigSpecified):
		return errors.NewUserError(err, "Run: rig init --package <name>-rig")
	case errors.As(err, &resolveErr):
		return errors.NewUserError(err,
			fmt.Sprintf("Install the rig package, e.g. npm install --save-dev %s", resolveErr.PackageName))
	case errors.As(err, &missingErr):
		return errors.NewUserError(err, "Run: rig profiles, to list the profiles the package provides")
	case errors.As(err, &loadErr):
		if errors.Is(err, fs.ErrPermission) {
			return errors.NewSystemError(err, "Check the permissions of "+loadErr.Path)
		}
		return errors.NewConfigError(err)
	case errors.Is(err, rigconfig.ErrAbsoluteConfigPath):
		return errors.NewUserError(err, "Pass a path relative to the project folder")
	case errors.Is(err, fs.ErrPermission):
		return errors.NewSystemError(err, "")
	}
	return err
}
