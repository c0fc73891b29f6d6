// Package domain contains the core domain models and business logic for
// pinned-requirements manifests.
package domain

import "go.trai.ch/zerr"

// StatementKind discriminates the parsed forms a manifest line can take.
type StatementKind uint8

const (
	// StatementBlank is an empty or whitespace-only line.
	StatementBlank StatementKind = iota
	// StatementComment is a full-line comment.
	StatementComment
	// StatementInclude is a -r inclusion directive.
	StatementInclude
	// StatementRequirement is a dependency record.
	StatementRequirement
)

// Statement is one parsed manifest line. Raw preserves the original text so
// that formatting can keep comments and blank lines intact.
type Statement struct {
	Kind        StatementKind
	Requirement *Requirement
	Directive   *Directive
	Raw         string
	Line        int
}

// Manifest is a single parsed requirements file.
type Manifest struct {
	// Path is the location the manifest was read from.
	Path InternedString

	// Statements holds every line of the file in order.
	Statements []Statement
}

// Requirements returns the dependency records of this file, in file order.
func (m *Manifest) Requirements() []*Requirement {
	var reqs []*Requirement
	for i := range m.Statements {
		if m.Statements[i].Kind == StatementRequirement {
			reqs = append(reqs, m.Statements[i].Requirement)
		}
	}
	return reqs
}

// Includes returns the inclusion directives of this file, in file order.
func (m *Manifest) Includes() []*Directive {
	var dirs []*Directive
	for i := range m.Statements {
		if m.Statements[i].Kind == StatementInclude {
			dirs = append(dirs, m.Statements[i].Directive)
		}
	}
	return dirs
}

// Set is the combined manifest set after include resolution. Records keep
// installer order: included files contribute before the including file's own
// entries. Package identity is the canonical name.
type Set struct {
	records []Requirement
	byName  map[InternedString]int
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{
		byName: make(map[InternedString]int),
	}
}

// Add merges a requirement into the set. A second pin of the same package at
// the same version is reported as a duplicate and otherwise ignored; a second
// pin at a different version is ErrConflictingPin with both source locations.
func (s *Set) Add(req Requirement) (duplicate bool, err error) {
	if idx, exists := s.byName[req.Canonical]; exists {
		prev := s.records[idx]
		if prev.Version != req.Version || prev.Op != req.Op {
			err := zerr.With(zerr.Wrap(ErrConflictingPin, ""), "package", req.Canonical.String())
			err = zerr.With(err, "first", prev.Ref()+" ("+string(prev.Op)+prev.Version.String()+")")
			err = zerr.With(err, "second", req.Ref()+" ("+string(req.Op)+req.Version.String()+")")
			return false, err
		}
		return true, nil
	}
	s.byName[req.Canonical] = len(s.records)
	s.records = append(s.records, req)
	return false, nil
}

// Records returns the merged requirements in installer order.
func (s *Set) Records() []Requirement {
	return s.records
}

// Len returns the number of distinct packages in the set.
func (s *Set) Len() int {
	return len(s.records)
}

// Get looks up a requirement by package name. The name is canonicalized
// before the lookup.
func (s *Set) Get(name string) (Requirement, bool) {
	idx, ok := s.byName[NewInternedString(CanonicalName(name))]
	if !ok {
		return Requirement{}, false
	}
	return s.records[idx], true
}
