package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/rig/internal/errors"
)

func TestResolveCommand(t *testing.T) {
	project := newProject(t, `{
		// shared build config
		"rigPackageName": "example-rig",
		"rigProfile": "library",
	}`)
	pkg := installRig(t, project, "example-rig", "default", "library")
	want := filepath.Join(pkg, "profiles", "library") + "\n"

	for _, mode := range [][]string{{"resolve"}, {"resolve", "--async"}} {
		t.Run(strings.Join(mode, " "), func(t *testing.T) {
			out, _, err := execute(t, append(mode, project)...)
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}

func TestResolveCommand_ManyProjectsKeepArgumentOrder(t *testing.T) {
	root := t.TempDir()
	installRig(t, root, "@acme/web-rig", "default", "app")

	var dirs []string
	var want strings.Builder
	for _, name := range []string{"c", "a", "b"} {
		dir := filepath.Join(root, "apps", name)
		writeTestFile(t, filepath.Join(dir, "config", "rig.json"),
			`{"rigPackageName": "@acme/web-rig", "rigProfile": "app"}`)
		dirs = append(dirs, dir)
		want.WriteString(dir + "\t" + filepath.Join(root, "node_modules", "@acme", "web-rig", "profiles", "app") + "\n")
	}

	out, _, err := execute(t, append([]string{"resolve"}, dirs...)...)
	require.NoError(t, err)
	assert.Equal(t, want.String(), out)
}

func TestResolveCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		rigJSON  string
		install  []string
		wantErr  string
		wantHint string
	}{
		{
			name:     "no rig.json",
			wantErr:  "no rig package specified",
			wantHint: "rig init",
		},
		{
			name:     "package not installed",
			rigJSON:  `{"rigPackageName": "missing-rig"}`,
			wantErr:  `unable to resolve rig package "missing-rig"`,
			wantHint: "npm install --save-dev missing-rig",
		},
		{
			name:     "profile missing",
			rigJSON:  `{"rigPackageName": "example-rig", "rigProfile": "app"}`,
			install:  []string{"default"},
			wantErr:  `the rig profile "app" is not defined`,
			wantHint: "rig profiles",
		},
		{
			name:     "invalid rig.json",
			rigJSON:  `{"rigPackageName": "example"}`,
			wantErr:  "while loading",
			wantHint: "rig validate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := newProject(t, tt.rigJSON)
			if tt.install != nil {
				installRig(t, project, "example-rig", tt.install...)
			}

			_, _, err := execute(t, "resolve", project)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

			var exitErr *errors.ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Contains(t, exitErr.Suggestion, tt.wantHint)
		})
	}
}
