package rigconfig

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/thoreinstein/rig/pkg/fileutil"
	"github.com/thoreinstein/rig/pkg/pkgresolve"
)

// Location of the rig config file relative to a project folder.
const (
	ConfigFolder   = "config"
	ConfigFileName = "rig.json"
)

// LoadOptions selects the project folder to load and optional overrides.
type LoadOptions struct {
	// ProjectFolderPath is the project folder; relative paths are made absolute.
	ProjectFolderPath string

	// OverrideRigJSON, when non-nil, is validated in place of config/rig.json
	// and the file is never read.
	OverrideRigJSON map[string]any

	// BypassCache skips the Loader cache for this call. It has no effect on
	// a Loader created without WithCache.
	BypassCache bool
}

// LoadResult is delivered by the asynchronous load variants.
type LoadResult struct {
	Config *RigConfig
	Err    error
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs sets the filesystem used for reading rig.json and checking profile folders.
func WithFs(fsys afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithResolver sets the package resolver. The default walks node_modules
// folders on the Loader's filesystem.
func WithResolver(r pkgresolve.Resolver) Option {
	return func(l *Loader) {
		l.resolver = r
	}
}

// WithLogger sets the logger for debug tracing of load and resolve steps.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithCache makes the Loader reuse the RigConfig previously loaded for the
// same project folder, including its resolved location.
func WithCache() Option {
	return func(l *Loader) {
		l.cache = make(map[string]*RigConfig)
	}
}

// Loader loads RigConfig values. A Loader is safe for concurrent use.
type Loader struct {
	fs       afero.Fs
	resolver pkgresolve.Resolver
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]*RigConfig // nil unless WithCache
}

// NewLoader creates a Loader over the OS filesystem unless overridden.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if l.resolver == nil {
		l.resolver = pkgresolve.New(l.fs, pkgresolve.WithLogger(l.logger))
	}
	return l
}

var defaultLoader = sync.OnceValue(func() *Loader {
	return NewLoader()
})

// LoadForProjectFolder loads config/rig.json for a project folder using the
// OS filesystem. A missing file yields a RigConfig with Found() == false.
func LoadForProjectFolder(opts LoadOptions) (*RigConfig, error) {
	return defaultLoader().Load(opts)
}

// LoadForProjectFolderAsync is the non-blocking form of LoadForProjectFolder.
func LoadForProjectFolderAsync(ctx context.Context, opts LoadOptions) <-chan LoadResult {
	return defaultLoader().LoadAsync(ctx, opts)
}

// Load reads and validates config/rig.json for opts.ProjectFolderPath.
func (l *Loader) Load(opts LoadOptions) (*RigConfig, error) {
	if opts.ProjectFolderPath == "" {
		return nil, errors.New("project folder path is required")
	}
	projectFolder, err := filepath.Abs(opts.ProjectFolderPath)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving project folder %s", opts.ProjectFolderPath)
	}

	useCache := l.cache != nil && opts.OverrideRigJSON == nil && !opts.BypassCache
	if useCache {
		if c := l.cached(projectFolder); c != nil {
			return c, nil
		}
	}

	c, err := l.load(projectFolder, opts.OverrideRigJSON)
	if err != nil {
		return nil, err
	}

	if useCache {
		c = l.store(projectFolder, c)
	}
	return c, nil
}

// LoadAsync runs Load on its own goroutine and delivers exactly one result
// on the returned channel. If ctx is already done, ctx.Err() is delivered
// without touching the filesystem.
func (l *Loader) LoadAsync(ctx context.Context, opts LoadOptions) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		if err := ctx.Err(); err != nil {
			ch <- LoadResult{Err: err}
			return
		}
		c, err := l.Load(opts)
		ch <- LoadResult{Config: c, Err: err}
	}()
	return ch
}

func (l *Loader) load(projectFolder string, override map[string]any) (*RigConfig, error) {
	filePath := filepath.Join(projectFolder, ConfigFolder, ConfigFileName)
	params := rigConfigParams{
		projectFolderPath: projectFolder,
		filePath:          filePath,
		fs:                l.fs,
		resolver:          l.resolver,
		logger:            l.logger,
	}

	obj := override
	if obj == nil {
		found, err := fileutil.IsFile(l.fs, filePath)
		if err != nil {
			return nil, &LoadError{Path: filePath, Err: err}
		}
		if !found {
			l.logger.Debug("no rig config", "project", projectFolder)
			return newRigConfig(params), nil
		}

		obj, err = ReadRigJSONFile(l.fs, filePath)
		if err != nil {
			return nil, &LoadError{Path: filePath, Err: err}
		}
	}

	settings, err := ValidateRigJSON(obj)
	if err != nil {
		return nil, &LoadError{Path: filePath, Err: err}
	}

	l.logger.Debug("loaded rig config",
		"project", projectFolder,
		"package", settings.PackageName,
		"profile", settings.ProfileName,
		"override", override != nil,
	)

	params.settings = &settings
	return newRigConfig(params), nil
}

// ReadRigJSONFile reads and parses a rig.json file without validating it.
// Comments and trailing commas are permitted.
func ReadRigJSONFile(fsys afero.Fs, path string) (map[string]any, error) {
	data, err := fileutil.ReadFileWithLimit(fsys, path)
	if err != nil {
		return nil, err
	}
	return parseRigJSON(data)
}

func (l *Loader) cached(projectFolder string) *RigConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache[projectFolder]
}

// store records c unless another goroutine stored first, in which case the
// earlier value is returned so callers share one resolution cache.
func (l *Loader) store(projectFolder string, c *RigConfig) *RigConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.cache[projectFolder]; ok {
		return existing
	}
	l.cache[projectFolder] = c
	return c
}
