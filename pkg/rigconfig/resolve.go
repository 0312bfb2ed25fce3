package rigconfig

import (
	"context"
	"path"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/thoreinstein/rig/pkg/fileutil"
)

const manifestFile = "package.json"

// ResolveResult is delivered by the asynchronous resolve variants.
type ResolveResult struct {
	Path string
	Err  error
}

// GetResolvedProfileFolder returns the absolute path of the rig profile
// folder. The package lookup runs once per RigConfig; later calls return the
// cached path.
func (c *RigConfig) GetResolvedProfileFolder() (string, error) {
	loc, err := c.resolve()
	if err != nil {
		return "", err
	}
	return loc.ProfileFolder, nil
}

// GetResolvedProfileFolderAsync is the non-blocking form of
// GetResolvedProfileFolder. Exactly one result is delivered. Cancelling ctx
// before the lookup starts delivers ctx.Err().
func (c *RigConfig) GetResolvedProfileFolderAsync(ctx context.Context) <-chan ResolveResult {
	return c.async(ctx, c.GetResolvedProfileFolder)
}

// ResolvedPackageFolder returns the root folder of the installed rig package,
// resolving the profile folder first if that has not happened yet.
func (c *RigConfig) ResolvedPackageFolder() (string, error) {
	loc, err := c.resolve()
	if err != nil {
		return "", err
	}
	return loc.PackageFolder, nil
}

// ResolvedLocation returns the cached location, if a resolve has succeeded.
func (c *RigConfig) ResolvedLocation() (Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.location == nil {
		return Location{}, false
	}
	return *c.location, true
}

func (c *RigConfig) async(ctx context.Context, fn func() (string, error)) <-chan ResolveResult {
	ch := make(chan ResolveResult, 1)
	go func() {
		if err := ctx.Err(); err != nil {
			ch <- ResolveResult{Err: err}
			return
		}
		p, err := fn()
		ch <- ResolveResult{Path: p, Err: err}
	}()
	return ch
}

// resolve returns the cached location or computes it. Concurrent callers
// share one in-flight lookup; only successful lookups are cached.
func (c *RigConfig) resolve() (Location, error) {
	if !c.found {
		return Location{}, errors.Wrapf(ErrNoRigSpecified, "no %s/%s in %s", ConfigFolder, ConfigFileName, c.projectFolderPath)
	}

	if loc, ok := c.ResolvedLocation(); ok {
		return loc, nil
	}

	v, err, _ := c.flight.Do("location", func() (any, error) {
		if loc, ok := c.ResolvedLocation(); ok {
			return loc, nil
		}

		loc, err := c.lookupLocation()
		if err != nil {
			return Location{}, err
		}

		c.mu.Lock()
		c.location = &loc
		c.mu.Unlock()
		return loc, nil
	})
	if err != nil {
		return Location{}, err
	}
	return v.(Location), nil
}

func (c *RigConfig) lookupLocation() (Location, error) {
	packageFolder, err := c.lookupPackageFolder()
	if err != nil {
		return Location{}, err
	}

	profileFolder := filepath.Join(packageFolder, filepath.FromSlash(c.RelativeProfilePath()))
	ok, err := fileutil.IsDir(c.fs, profileFolder)
	if err != nil {
		return Location{}, errors.Wrapf(err, "checking rig profile folder %s", profileFolder)
	}
	if !ok {
		return Location{}, &ProfileMissingError{
			ProfileName: c.profileName,
			PackageName: c.packageName,
			Path:        profileFolder,
		}
	}

	c.logger.Debug("resolved rig profile",
		"package", c.packageName,
		"profile", c.profileName,
		"folder", profileFolder,
	)
	return Location{PackageFolder: packageFolder, ProfileFolder: profileFolder}, nil
}

func (c *RigConfig) lookupPackageFolder() (string, error) {
	manifest, err := c.resolver.Resolve(path.Join(c.packageName, manifestFile), c.projectFolderPath)
	if err != nil {
		return "", &ResolutionError{
			PackageName:   c.packageName,
			ProjectFolder: c.projectFolderPath,
			Err:           err,
		}
	}
	return filepath.Dir(manifest), nil
}

// ProfileNames lists the profiles provided by the rig package, sorted. It
// works even when the configured profile is missing, which makes it useful
// for suggesting alternatives after a ProfileMissingError.
func (c *RigConfig) ProfileNames() ([]string, error) {
	if !c.found {
		return nil, errors.Wrapf(ErrNoRigSpecified, "no %s/%s in %s", ConfigFolder, ConfigFileName, c.projectFolderPath)
	}

	packageFolder := ""
	if loc, ok := c.ResolvedLocation(); ok {
		packageFolder = loc.PackageFolder
	} else {
		var err error
		if packageFolder, err = c.lookupPackageFolder(); err != nil {
			return nil, err
		}
	}

	profilesFolder := filepath.Join(packageFolder, ProfilesFolder)
	ok, err := fileutil.IsDir(c.fs, profilesFolder)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	entries, err := afero.ReadDir(c.fs, profilesFolder)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", profilesFolder)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
