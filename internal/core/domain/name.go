package domain

import (
	"regexp"
	"strings"
)

// validNameRegex matches package names as defined by PEP 508: they start and
// end with an ASCII letter or digit and may contain '-', '_' and '.' between.
var validNameRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// separatorRunRegex matches runs of the characters PEP 503 treats as equivalent.
var separatorRunRegex = regexp.MustCompile(`[-_.]+`)

// CanonicalName normalizes a package name per PEP 503: the name is lowercased
// and every run of '-', '_' and '.' collapses to a single '-'. Two names that
// canonicalize to the same string refer to the same package.
func CanonicalName(name string) string {
	return strings.ToLower(separatorRunRegex.ReplaceAllString(name, "-"))
}

// ValidName reports whether name is a well-formed package name.
func ValidName(name string) bool {
	return validNameRegex.MatchString(name)
}
