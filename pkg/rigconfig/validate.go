package rigconfig

import (
	"regexp"
	"sort"
	"strings"
)

// rig.json keys.
const (
	FieldSchema      = "$schema"
	FieldPackageName = "rigPackageName"
	FieldProfile     = "rigProfile"
)

// DefaultProfile is used when rig.json omits rigProfile.
const DefaultProfile = "default"

var allowedFields = map[string]bool{
	FieldSchema:      true,
	FieldPackageName: true,
	FieldProfile:     true,
}

var (
	// packageNameRegex accepts "name" and "@scope/name" where each segment is
	// letters, digits, hyphen, underscore or dot.
	packageNameRegex = regexp.MustCompile(`^(@[A-Za-z0-9._-]+/)?[A-Za-z0-9._-]+$`)

	// rigSuffixRegex accepts the "-rig" suffix and the "-rig-test" alternate used by self-tests.
	rigSuffixRegex = regexp.MustCompile(`-rig(-test)?$`)

	// profileNameRegex accepts lowercase words separated by single hyphens.
	profileNameRegex = regexp.MustCompile(`^[a-z0-9_.]+(-[a-z0-9_.]+)*$`)
)

// Settings holds the validated values of a rig.json document.
type Settings struct {
	PackageName string
	ProfileName string
}

// ValidateRigJSON checks a decoded rig.json object and returns its settings
// with the profile defaulted. The first violation found is returned as a
// *ValidationError; unknown keys are reported in sorted order.
func ValidateRigJSON(obj map[string]any) (Settings, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !allowedFields[k] {
			return Settings{}, &ValidationError{
				Field:   k,
				Message: "rig.json only supports $schema, rigPackageName and rigProfile",
				Err:     ErrUnsupportedField,
			}
		}
	}

	if v, ok := obj[FieldSchema]; ok {
		if _, isString := v.(string); !isString {
			return Settings{}, &ValidationError{
				Field:   FieldSchema,
				Value:   v,
				Message: "must be a string",
				Err:     ErrInvalidFieldType,
			}
		}
	}

	raw, ok := obj[FieldPackageName]
	if !ok {
		return Settings{}, &ValidationError{
			Field:   FieldPackageName,
			Message: "the rig package name is required",
			Err:     ErrMissingField,
		}
	}
	packageName, ok := raw.(string)
	if !ok {
		return Settings{}, &ValidationError{
			Field:   FieldPackageName,
			Value:   raw,
			Message: "must be a string",
			Err:     ErrInvalidFieldType,
		}
	}
	if err := validatePackageName(packageName); err != nil {
		return Settings{}, err
	}

	profileName := DefaultProfile
	if raw, ok := obj[FieldProfile]; ok {
		s, isString := raw.(string)
		if !isString {
			return Settings{}, &ValidationError{
				Field:   FieldProfile,
				Value:   raw,
				Message: "must be a string",
				Err:     ErrInvalidFieldType,
			}
		}
		if err := validateProfileName(s); err != nil {
			return Settings{}, err
		}
		profileName = s
	}

	return Settings{PackageName: packageName, ProfileName: profileName}, nil
}

func validatePackageName(name string) error {
	if !packageNameRegex.MatchString(name) {
		msg := "must be a package name such as \"example-rig\" or \"@scope/example-rig\""
		if strings.Contains(name, "/") && !strings.HasPrefix(name, "@") {
			msg = "only scoped package names may contain a slash"
		}
		return &ValidationError{
			Field:   FieldPackageName,
			Value:   name,
			Message: msg,
			Err:     ErrInvalidPackageName,
		}
	}

	if !rigSuffixRegex.MatchString(name) {
		return &ValidationError{
			Field:   FieldPackageName,
			Value:   name,
			Message: "the rig package name must end with \"-rig\"",
			Err:     ErrMissingRigSuffix,
		}
	}

	return nil
}

func validateProfileName(name string) error {
	if profileNameRegex.MatchString(name) && name != "." && name != ".." {
		return nil
	}

	msg := "must be lowercase alphanumeric words separated by single hyphens"
	switch {
	case name == "":
		msg = "must not be empty; omit rigProfile to use \"default\""
	case strings.ToLower(name) != name:
		msg = "must be lowercase"
	case strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-"):
		msg = "cannot start or end with a hyphen"
	case strings.Contains(name, "--"):
		msg = "cannot contain consecutive hyphens"
	case name == "." || name == "..":
		msg = "cannot be a relative path segment"
	}

	return &ValidationError{
		Field:   FieldProfile,
		Value:   name,
		Message: msg,
		Err:     ErrInvalidProfileName,
	}
}
