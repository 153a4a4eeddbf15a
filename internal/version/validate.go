package version

import (
	"regexp"
	"strings"
)

// ValidationResult is an advisory shape check on user-supplied input, not
// detection logic. Invalid input gets an explanation the UI can show as-is.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

var (
	versionShapeRe = regexp.MustCompile(`^v?\d+(?:[._-]\w+)*$`)
	buildShapeRe   = regexp.MustCompile(`^(?:b|#)?\d+$`)
)

// ValidateVersionInput sanity-checks a version string before it is stored on
// a tracked game.
func ValidateVersionInput(s string) ValidationResult {
	s = strings.TrimSpace(s)
	if s == "" {
		return ValidationResult{Valid: false, Error: "Version is empty"}
	}
	if len(s) > 32 {
		return ValidationResult{Valid: false, Error: "Version seems too long"}
	}
	if !versionShapeRe.MatchString(strings.ToLower(s)) {
		return ValidationResult{Valid: false, Error: "Version should look like 1.0, v1.2.3 or 1.0-beta"}
	}
	return ValidationResult{Valid: true}
}

// ValidateBuildInput sanity-checks a build number string before it is stored
// on a tracked game.
func ValidateBuildInput(s string) ValidationResult {
	s = strings.TrimSpace(s)
	if s == "" {
		return ValidationResult{Valid: false, Error: "Build number is empty"}
	}
	if !buildShapeRe.MatchString(strings.ToLower(s)) {
		return ValidationResult{Valid: false, Error: "Build number must be digits"}
	}
	digits := strings.TrimLeft(strings.ToLower(s), "b#")
	if len(digits) < 4 {
		return ValidationResult{Valid: false, Error: "Build number seems too short"}
	}
	if len(digits) > 12 {
		return ValidationResult{Valid: false, Error: "Build number seems too long"}
	}
	return ValidationResult{Valid: true}
}
