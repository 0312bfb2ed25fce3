package pkgresolve

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, fsys afero.Fs, dir string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(dir, 0o755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "package.json"), []byte(`{"name":"x"}`), 0o644))
}

func TestSplitSpecifier(t *testing.T) {
	tests := []struct {
		specifier   string
		wantPkg     string
		wantSubpath string
		wantErr     bool
	}{
		{"example-rig", "example-rig", "", false},
		{"example-rig/package.json", "example-rig", "package.json", false},
		{"@scope/example-rig/package.json", "@scope/example-rig", "package.json", false},
		{"@scope/example-rig/profiles/default/x.json", "@scope/example-rig", "profiles/default/x.json", false},
		{"@scope", "", "", true},
		{"", "", "", true},
		{"./local", "", "", true},
		{"/abs/path", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			pkg, sub, err := SplitSpecifier(tt.specifier)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSpecifier))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPkg, pkg)
			assert.Equal(t, tt.wantSubpath, sub)
		})
	}
}

func TestNodeModules_Resolve(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeManifest(t, fsys, "/repo/node_modules/shared-rig")
	writeManifest(t, fsys, "/repo/apps/web/node_modules/@acme/web-rig")
	writeManifest(t, fsys, "/repo/apps/web/node_modules/shared-rig")
	require.NoError(t, fsys.MkdirAll("/repo/apps/api", 0o755))

	r := New(fsys)

	tests := []struct {
		name      string
		specifier string
		baseDir   string
		want      string
	}{
		{
			name:      "found in ancestor",
			specifier: "shared-rig/package.json",
			baseDir:   "/repo/apps/api",
			want:      "/repo/node_modules/shared-rig/package.json",
		},
		{
			name:      "nearest folder wins",
			specifier: "shared-rig/package.json",
			baseDir:   "/repo/apps/web",
			want:      "/repo/apps/web/node_modules/shared-rig/package.json",
		},
		{
			name:      "scoped package",
			specifier: "@acme/web-rig/package.json",
			baseDir:   "/repo/apps/web/src",
			want:      "/repo/apps/web/node_modules/@acme/web-rig/package.json",
		},
		{
			name:      "bare package resolves to folder",
			specifier: "shared-rig",
			baseDir:   "/repo",
			want:      "/repo/node_modules/shared-rig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.specifier, tt.baseDir)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestNodeModules_Resolve_SkipsNestedModulesFolder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeManifest(t, fsys, "/repo/node_modules/node_modules/odd-rig")
	require.NoError(t, fsys.MkdirAll("/repo/node_modules/foo", 0o755))

	_, err := New(fsys).Resolve("odd-rig/package.json", "/repo/node_modules/foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPackageNotFound))
}

func TestNodeModules_Resolve_NotFound(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/repo/app", 0o755))

	_, err := New(fsys).Resolve("missing-rig/package.json", "/repo/app")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPackageNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing-rig/package.json", nf.Specifier)
	assert.Contains(t, err.Error(), `cannot find module "missing-rig/package.json"`)
}

func TestNodeModules_Resolve_SkipsModulesFolderThatIsAFile(t *testing.T) {
	root := t.TempDir()
	fsys := afero.NewOsFs()
	project := filepath.Join(root, "apps", "web")

	// node_modules is a file in the project and @acme is a file one level up.
	require.NoError(t, fsys.MkdirAll(project, 0o755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(project, ModulesFolder), []byte("x"), 0o644))
	require.NoError(t, fsys.MkdirAll(filepath.Join(root, "apps", ModulesFolder), 0o755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, "apps", ModulesFolder, "@acme"), []byte("x"), 0o644))
	writeManifest(t, fsys, filepath.Join(root, ModulesFolder, "@acme", "node-rig"))

	got, err := New(fsys).Resolve("@acme/node-rig/package.json", project)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ModulesFolder, "@acme", "node-rig", "package.json"), got)
}
