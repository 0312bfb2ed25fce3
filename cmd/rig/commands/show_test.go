package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/rig/internal/errors"
)

func TestShowCommand_StructuredOutput(t *testing.T) {
	project := newProject(t, `{"rigPackageName": "example-rig"}`)
	pkg := installRig(t, project, "example-rig", "default")

	want := descriptor{
		ProjectFolder:       project,
		Found:               true,
		FilePath:            filepath.Join(project, "config", "rig.json"),
		PackageName:         "example-rig",
		ProfileName:         "default",
		RelativeProfilePath: "profiles/default",
		PackageFolder:       pkg,
		ProfileFolder:       filepath.Join(pkg, "profiles", "default"),
	}

	tests := []struct {
		format    string
		unmarshal func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
		{"toml", toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := execute(t, "show", project, "--output", tt.format)
			require.NoError(t, err)

			var got descriptor
			require.NoError(t, tt.unmarshal([]byte(out), &got))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("show --output %s mismatch (-want +got):\n%s", tt.format, diff)
			}
		})
	}
}

func TestShowCommand_Text(t *testing.T) {
	project := newProject(t, `{"rigPackageName": "example-rig", "rigProfile": "app"}`)
	installRig(t, project, "example-rig", "default")

	out, _, err := execute(t, "show", project)
	require.NoError(t, err, "resolution failures are reported, not returned")

	assert.Contains(t, out, "Package:  example-rig")
	assert.Contains(t, out, "Profile:  app")
	assert.Contains(t, out, `the rig profile "app" is not defined`)
}

func TestShowCommand_NotFound(t *testing.T) {
	project := newProject(t, "")

	out, _, err := execute(t, "show", project, "-o", "json")
	require.NoError(t, err)

	var got descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, descriptor{ProjectFolder: project}, got)
}

func TestShowCommand_UnsupportedFormat(t *testing.T) {
	project := newProject(t, "")

	_, _, err := execute(t, "show", project, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "xml"`)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgs))
}
