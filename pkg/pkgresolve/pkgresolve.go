// Package pkgresolve maps a package specifier such as "@scope/name/package.json"
// and a base directory to an installed file, using the node_modules ancestor
// search that npm-style package managers rely on.
package pkgresolve

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/thoreinstein/rig/pkg/fileutil"
)

// ModulesFolder is the dependency installation folder searched in each ancestor.
const ModulesFolder = "node_modules"

var (
	// ErrPackageNotFound indicates no ancestor node_modules folder provides the package.
	ErrPackageNotFound = errors.New("package not found")

	// ErrInvalidSpecifier indicates the specifier is empty, relative, or absolute.
	ErrInvalidSpecifier = errors.New("invalid package specifier")
)

// Resolver resolves a bare package specifier relative to a base directory.
type Resolver interface {
	// Resolve returns the absolute path of the file named by specifier, searching
	// node_modules folders from baseDir upwards.
	Resolve(specifier, baseDir string) (string, error)
}

// NotFoundError reports a specifier that could not be located from a base directory.
type NotFoundError struct {
	Specifier string
	BaseDir   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find module %q from %q", e.Specifier, e.BaseDir)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPackageNotFound
}

// Option configures a NodeModules resolver.
type Option func(*NodeModules)

// WithLogger sets the logger used for lookup tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *NodeModules) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NodeModules walks ancestor node_modules folders on an afero filesystem.
type NodeModules struct {
	fs     afero.Fs
	logger *slog.Logger
}

var _ Resolver = (*NodeModules)(nil)

// New creates a NodeModules resolver over fsys.
func New(fsys afero.Fs, opts ...Option) *NodeModules {
	r := &NodeModules{
		fs:     fsys,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements Resolver.
func (r *NodeModules) Resolve(specifier, baseDir string) (string, error) {
	pkgName, subpath, err := SplitSpecifier(specifier)
	if err != nil {
		return "", err
	}

	dir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving base directory %s", baseDir)
	}

	for {
		// A node_modules folder never gets a nested node_modules appended
		if filepath.Base(dir) != ModulesFolder {
			candidate := filepath.Join(dir, ModulesFolder, filepath.FromSlash(pkgName))
			if subpath != "" {
				candidate = filepath.Join(candidate, filepath.FromSlash(subpath))
			}

			ok, err := r.exists(candidate, subpath == "")
			if err != nil {
				return "", err
			}
			if ok {
				r.logger.Debug("resolved package", "specifier", specifier, "path", candidate)
				return candidate, nil
			}
			r.logger.Debug("package not in folder", "specifier", specifier, "folder", filepath.Join(dir, ModulesFolder))
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &NotFoundError{Specifier: specifier, BaseDir: baseDir}
}

func (r *NodeModules) exists(path string, wantDir bool) (bool, error) {
	if wantDir {
		return fileutil.IsDir(r.fs, path)
	}
	return fileutil.IsFile(r.fs, path)
}

// SplitSpecifier splits a bare specifier into its package name and the
// remaining subpath. "@scope/pkg/a/b.json" yields ("@scope/pkg", "a/b.json").
func SplitSpecifier(specifier string) (pkgName, subpath string, err error) {
	if specifier == "" || strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") || filepath.IsAbs(specifier) {
		return "", "", errors.Wrapf(ErrInvalidSpecifier, "%q", specifier)
	}

	parts := strings.Split(specifier, "/")
	n := 1
	if strings.HasPrefix(specifier, "@") {
		if len(parts) < 2 || parts[1] == "" {
			return "", "", errors.Wrapf(ErrInvalidSpecifier, "%q: scoped package is missing a name", specifier)
		}
		n = 2
	}

	pkgName = strings.Join(parts[:n], "/")
	subpath = strings.Join(parts[n:], "/")
	return pkgName, subpath, nil
}
