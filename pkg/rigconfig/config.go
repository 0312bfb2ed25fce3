package rigconfig

import (
	"log/slog"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"github.com/thoreinstein/rig/pkg/pkgresolve"
)

// ProfilesFolder is the folder inside a rig package that holds its profiles.
const ProfilesFolder = "profiles"

// RigConfig describes the rig (if any) configured for a project folder.
//
// The descriptor fields are fixed at load time. The resolved profile location
// is computed on first use and cached for the lifetime of the value; load a
// new RigConfig to observe changes on disk.
type RigConfig struct {
	projectFolderPath string
	found             bool
	filePath          string
	packageName       string
	profileName       string

	fs       afero.Fs
	resolver pkgresolve.Resolver
	logger   *slog.Logger

	mu       sync.Mutex
	location *Location
	flight   singleflight.Group
}

// Location is the resolved on-disk position of a rig profile.
type Location struct {
	// PackageFolder is the root folder of the installed rig package.
	PackageFolder string
	// ProfileFolder is PackageFolder joined with the relative profile path.
	ProfileFolder string
}

type rigConfigParams struct {
	projectFolderPath string
	filePath          string
	settings          *Settings // nil when no rig.json was found
	fs                afero.Fs
	resolver          pkgresolve.Resolver
	logger            *slog.Logger
}

func newRigConfig(p rigConfigParams) *RigConfig {
	c := &RigConfig{
		projectFolderPath: p.projectFolderPath,
		fs:                p.fs,
		resolver:          p.resolver,
		logger:            p.logger,
	}
	if p.settings != nil {
		c.found = true
		c.filePath = p.filePath
		c.packageName = p.settings.PackageName
		c.profileName = p.settings.ProfileName
	}
	return c
}

// ProjectFolderPath returns the absolute project folder the config was loaded for.
func (c *RigConfig) ProjectFolderPath() string { return c.projectFolderPath }

// Found reports whether a rig.json was found or an override object was supplied.
func (c *RigConfig) Found() bool { return c.found }

// FilePath returns the absolute path of config/rig.json, or "" when not found.
func (c *RigConfig) FilePath() string { return c.filePath }

// PackageName returns the rig package name, or "" when not found.
func (c *RigConfig) PackageName() string { return c.packageName }

// ProfileName returns the rig profile name, or "" when not found.
// It is "default" when rig.json omits rigProfile.
func (c *RigConfig) ProfileName() string { return c.profileName }

// RelativeProfilePath returns "profiles/<profile>" using forward slashes,
// or "" when not found.
func (c *RigConfig) RelativeProfilePath() string {
	if !c.found {
		return ""
	}
	return ProfilesFolder + "/" + c.profileName
}

// Settings returns the validated rig.json values, or false when not found.
func (c *RigConfig) Settings() (Settings, bool) {
	if !c.found {
		return Settings{}, false
	}
	return Settings{PackageName: c.packageName, ProfileName: c.profileName}, true
}
