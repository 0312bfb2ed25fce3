package rigconfig

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testProject = "/work/project"

// descriptorFields is a comparable snapshot of a RigConfig's public fields.
type descriptorFields struct {
	ProjectFolderPath   string
	Found               bool
	FilePath            string
	PackageName         string
	ProfileName         string
	RelativeProfilePath string
}

func fieldsOf(c *RigConfig) descriptorFields {
	return descriptorFields{
		ProjectFolderPath:   c.ProjectFolderPath(),
		Found:               c.Found(),
		FilePath:            c.FilePath(),
		PackageName:         c.PackageName(),
		ProfileName:         c.ProfileName(),
		RelativeProfilePath: c.RelativeProfilePath(),
	}
}

// newProjectFs returns an in-memory filesystem holding testProject and, when
// rigJSON is non-empty, its config/rig.json.
func newProjectFs(t *testing.T, rigJSON string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(testProject, 0o755))
	if rigJSON != "" {
		writeFile(t, fsys, filepath.Join(testProject, ConfigFolder, ConfigFileName), rigJSON)
	}
	return fsys
}

// installRig creates node_modules/<pkg> under dir with the given profile folders.
func installRig(t *testing.T, fsys afero.Fs, dir, pkg string, profiles ...string) string {
	t.Helper()
	pkgFolder := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg))
	writeFile(t, fsys, filepath.Join(pkgFolder, "package.json"), `{"name": "`+pkg+`"}`)
	for _, p := range profiles {
		require.NoError(t, fsys.MkdirAll(filepath.Join(pkgFolder, ProfilesFolder, p), 0o755))
	}
	return pkgFolder
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}
