package rigconfig

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Every error returned by this package matches one of them
// via errors.Is, or wraps an I/O failure.
var (
	// ErrNoRigSpecified is returned when resolving a config that has no rig.json.
	ErrNoRigSpecified = errors.New("no rig package specified")

	// ErrUnsupportedField indicates rig.json contains a key outside the allow-list.
	ErrUnsupportedField = errors.New("unsupported field")

	// ErrMissingField indicates a required rig.json key is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidFieldType indicates a rig.json value has the wrong JSON type.
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrInvalidPackageName indicates rigPackageName is not a valid package name.
	ErrInvalidPackageName = errors.New("invalid package name")

	// ErrMissingRigSuffix indicates rigPackageName does not end with "-rig".
	ErrMissingRigSuffix = errors.New("missing -rig suffix")

	// ErrInvalidProfileName indicates rigProfile is not a valid profile name.
	ErrInvalidProfileName = errors.New("invalid profile name")

	// ErrProfileMissing indicates the rig package has no folder for the profile.
	ErrProfileMissing = errors.New("profile not defined by rig package")

	// ErrAbsoluteConfigPath indicates a config lookup was given an absolute path.
	ErrAbsoluteConfigPath = errors.New("config file path must be relative")
)

// ValidationError describes a rig.json field that failed validation.
type ValidationError struct {
	Field   string // rig.json key
	Value   any    // offending value, nil when the field is absent
	Message string // human-readable explanation
	Err     error  // one of the sentinel errors above
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%v: %q: %s", e.Err, e.Field, e.Message)
	}
	return fmt.Sprintf("%v: %q (%v): %s", e.Err, e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParseError wraps a syntax error in a rig.json document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing rig.json: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadError attaches the path of the file being loaded to any read, parse or
// validation failure.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v (while loading %s)", e.Err, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ResolutionError reports that the rig package could not be found from the
// project folder, typically because it is not installed.
type ResolutionError struct {
	PackageName   string
	ProjectFolder string
	Err           error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unable to resolve rig package %q from %s: %v", e.PackageName, e.ProjectFolder, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ProfileMissingError reports a rig package that was found but does not
// provide the requested profile folder.
type ProfileMissingError struct {
	ProfileName string
	PackageName string
	Path        string // expected profile folder
}

func (e *ProfileMissingError) Error() string {
	return fmt.Sprintf("the rig profile %q is not defined by the rig package %q (expected folder %s)",
		e.ProfileName, e.PackageName, e.Path)
}

func (e *ProfileMissingError) Unwrap() error {
	return ErrProfileMissing
}
