package manifest

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader over the file system.
type Loader struct {
	Logger ports.Logger
	parser *Parser
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger: logger,
		parser: NewParser(),
	}
}

// Load parses the target manifests and resolves -r includes recursively.
// Included files contribute their records before the including file's
// remaining entries, matching installer processing order.
func (l *Loader) Load(ctx context.Context, targets []string) (*ports.LoadResult, error) {
	if len(targets) == 0 {
		targets = []string{domain.DefaultManifestName}
	}

	result := &ports.LoadResult{
		Graph: domain.NewGraph(),
		Set:   domain.NewSet(),
	}
	visiting := make(map[domain.InternedString]bool)

	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve target path"), "path", target)
		}
		if err := l.loadFile(ctx, domain.NewInternedString(abs), nil, visiting, result); err != nil {
			return nil, err
		}
	}

	// The DFS above already rejects cycles; Validate additionally computes
	// the processing order used by Walk and Roots.
	if err := result.Graph.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Parse parses a single manifest file without resolving its includes.
// Content violations are joined into the returned error.
func (l *Loader) Parse(path string) (*domain.Manifest, error) {
	m, violations, err := l.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return m, errors.Join(violations...)
	}
	return m, nil
}

// loadFile parses one manifest and merges it into the result, recursing into
// its includes at the position of each -r directive.
func (l *Loader) loadFile(
	ctx context.Context,
	path domain.InternedString,
	stack []domain.InternedString,
	visiting map[domain.InternedString]bool,
	result *ports.LoadResult,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if visiting[path] {
		return zerr.With(zerr.Wrap(domain.ErrIncludeCycle, ""), "cycle", cyclePath(stack, path))
	}
	if _, loaded := result.Graph.GetManifest(path); loaded {
		// Diamond include: the file's records are already merged once, which
		// is what the installer's deduplication would produce.
		return nil
	}

	visiting[path] = true
	defer delete(visiting, path)
	stack = append(stack, path)

	m, violations, err := l.parser.ParseFile(path.String())
	if err != nil {
		if len(stack) > 1 {
			// Attribute missing includes to the directive that referenced them.
			if errors.Is(err, domain.ErrManifestNotFound) {
				err = zerr.With(zerr.Wrap(domain.ErrIncludeNotFound, ""), "path", path.String())
				err = zerr.With(err, "included_from", stack[len(stack)-2].String())
			}
		}
		return err
	}
	result.Violations = append(result.Violations, violations...)

	if err := result.Graph.AddManifest(m); err != nil {
		return err
	}

	for i := range m.Statements {
		stmt := &m.Statements[i]
		switch stmt.Kind {
		case domain.StatementInclude:
			target := resolveInclude(path.String(), stmt.Directive.Path.String())
			targetKey := domain.NewInternedString(target)
			result.Graph.AddInclude(path, targetKey)
			if err := l.loadFile(ctx, targetKey, stack, visiting, result); err != nil {
				return err
			}
		case domain.StatementRequirement:
			l.mergeRequirement(stmt.Requirement, result)
		case domain.StatementBlank, domain.StatementComment:
		}
	}

	return nil
}

// mergeRequirement validates the pin contract and merges the record into the set.
func (l *Loader) mergeRequirement(req *domain.Requirement, result *ports.LoadResult) {
	if !req.Pinned() {
		err := zerr.With(zerr.Wrap(domain.ErrUnpinnedRequirement, ""), "package", req.Name.String())
		err = zerr.With(err, "specifier", string(req.Op)+req.Version.String())
		result.Violations = append(result.Violations, zerr.With(err, "ref", req.Ref()))
		return
	}

	duplicate, err := result.Set.Add(*req)
	if err != nil {
		result.Violations = append(result.Violations, err)
		return
	}
	if duplicate {
		l.Logger.Warn("duplicate pin for " + req.Canonical.String() + " at " + req.Ref())
		result.Duplicates = append(result.Duplicates, *req)
	}
}

// resolveInclude resolves an include target relative to the including file.
func resolveInclude(from, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(from), target)
}

// Format renders a manifest in canonical form.
func (l *Loader) Format(m *domain.Manifest) []byte {
	return Format(m)
}

func cyclePath(stack []domain.InternedString, repeat domain.InternedString) string {
	var b strings.Builder
	start := 0
	for i, p := range stack {
		if p == repeat {
			start = i
			break
		}
	}
	for _, p := range stack[start:] {
		b.WriteString(p.String())
		b.WriteString(" -> ")
	}
	b.WriteString(repeat.String())
	return b.String()
}
