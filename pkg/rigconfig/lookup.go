package rigconfig

import (
	"context"
	"path"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/rig/pkg/fileutil"
)

// TryResolveConfigFilePath looks for a config file, first in the project
// folder and then in the rig profile folder. It returns "" with a nil error
// when neither provides the file. relPath must be relative, for example
// "config/jest.config.json".
func (c *RigConfig) TryResolveConfigFilePath(relPath string) (string, error) {
	if relPath == "" || filepath.IsAbs(relPath) || path.IsAbs(relPath) {
		return "", errors.Wrapf(ErrAbsoluteConfigPath, "%q", relPath)
	}
	rel := filepath.FromSlash(relPath)

	projectPath := filepath.Join(c.projectFolderPath, rel)
	ok, err := fileutil.Exists(c.fs, projectPath)
	if err != nil {
		return "", err
	}
	if ok {
		return projectPath, nil
	}

	if !c.found {
		return "", nil
	}

	profileFolder, err := c.GetResolvedProfileFolder()
	if err != nil {
		return "", err
	}

	rigPath := filepath.Join(profileFolder, rel)
	ok, err = fileutil.Exists(c.fs, rigPath)
	if err != nil {
		return "", err
	}
	if ok {
		return rigPath, nil
	}
	return "", nil
}

// TryResolveConfigFilePathAsync is the non-blocking form of TryResolveConfigFilePath.
func (c *RigConfig) TryResolveConfigFilePathAsync(ctx context.Context, relPath string) <-chan ResolveResult {
	return c.async(ctx, func() (string, error) {
		return c.TryResolveConfigFilePath(relPath)
	})
}
