package problemgen

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// IncompatibleVersionError is returned when a stored spec was produced by
// a generator with a different major version.
type IncompatibleVersionError struct {
	Spec    string
	Current string
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("spec version %q is incompatible with generator %s", e.Spec, e.Current)
}

// CheckVersion accepts specs whose major version matches Version.
func CheckVersion(v string) error {
	if !semver.IsValid(v) || semver.Major(v) != semver.Major(Version) {
		return &IncompatibleVersionError{Spec: v, Current: Version}
	}
	return nil
}
