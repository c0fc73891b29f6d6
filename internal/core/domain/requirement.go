package domain

import "strconv"

// Requirement is a single dependency record parsed from a manifest line.
// This is the input representation before merging (e.g., from requirements.txt).
type Requirement struct {
	// Name is the package name as written in the manifest (e.g., "django-stubs").
	Name InternedString

	// Canonical is the PEP 503 canonical form of Name, used for all comparisons.
	Canonical InternedString

	// Extras are the optional extras requested for the package (e.g., "compatible-mypy").
	Extras []InternedString

	// Op is the version comparison operator. Only OpExact satisfies the
	// pinning contract; everything else is a validation violation.
	Op SpecifierOp

	// Version is the version string the requirement is constrained to.
	Version InternedString

	// Marker is the raw environment marker text after ';', if any.
	Marker InternedString

	// Source is the path of the manifest the requirement was parsed from.
	Source InternedString

	// Line is the 1-based line number within Source.
	Line int
}

// Pinned reports whether the requirement pins an exact version.
func (r *Requirement) Pinned() bool {
	return r.Op == OpExact && r.Version.String() != ""
}

// Ref returns the "file:line" location of the requirement for diagnostics.
func (r *Requirement) Ref() string {
	return r.Source.String() + ":" + strconv.Itoa(r.Line)
}

// Directive is an inclusion record: a -r line instructing the installer to
// process another manifest before the remaining entries of this one.
type Directive struct {
	// Path is the include target as written, relative to the including file.
	Path InternedString

	// Source is the path of the manifest containing the directive.
	Source InternedString

	// Line is the 1-based line number within Source.
	Line int
}

// Ref returns the "file:line" location of the directive for diagnostics.
func (d *Directive) Ref() string {
	return d.Source.String() + ":" + strconv.Itoa(d.Line)
}
