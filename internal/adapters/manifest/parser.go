// Package manifest implements parsing and loading of pip-style requirements
// manifests: line-oriented text with # comments, -r inclusion directives and
// exact-version dependency records.
package manifest

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/zerr"
)

// Parser parses a single requirements file into domain statements.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses the manifest at path. The returned violations
// are content problems (malformed records, unsupported directives); the error
// is reserved for I/O failures.
func (p *Parser) ParseFile(path string) (*domain.Manifest, []error, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, ""), "path", path)
		}
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	m := &domain.Manifest{Path: domain.NewInternedString(path)}
	var violations []error

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		startLine := lineNo
		raw := scanner.Text()

		// Backslash continuation joins physical lines into one logical line.
		logical := raw
		for strings.HasSuffix(strings.TrimRight(logical, " \t"), `\`) && scanner.Scan() {
			lineNo++
			trimmed := strings.TrimRight(logical, " \t")
			logical = trimmed[:len(trimmed)-1] + " " + scanner.Text()
		}

		stmt, violation := p.parseLine(m.Path, logical, startLine)
		if violation != nil {
			violations = append(violations, violation)
			continue
		}
		m.Statements = append(m.Statements, stmt)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	return m, violations, nil
}

// parseLine classifies one logical line. A nil violation means the statement
// is valid; a non-nil violation means the line produced no statement.
func (p *Parser) parseLine(source domain.InternedString, line string, lineNo int) (domain.Statement, error) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return domain.Statement{Kind: domain.StatementBlank, Line: lineNo}, nil
	}
	if strings.HasPrefix(trimmed, "#") {
		return domain.Statement{Kind: domain.StatementComment, Raw: trimmed, Line: lineNo}, nil
	}

	// Inline comments start at an unquoted " #"; requirements files have no
	// quoting, so the first whitespace-preceded '#' ends the content.
	content := stripInlineComment(trimmed)

	if strings.HasPrefix(content, "-") {
		return p.parseDirective(source, content, lineNo)
	}
	return p.parseRequirement(source, content, lineNo)
}

func (p *Parser) parseDirective(source domain.InternedString, content string, lineNo int) (domain.Statement, error) {
	var target string
	switch {
	case strings.HasPrefix(content, "-r "), strings.HasPrefix(content, "-r\t"):
		target = strings.TrimSpace(content[2:])
	case strings.HasPrefix(content, "--requirement "):
		target = strings.TrimSpace(content[len("--requirement"):])
	case strings.HasPrefix(content, "--requirement="):
		target = strings.TrimSpace(content[len("--requirement="):])
	default:
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedDirective, ""), "directive", content)
		return domain.Statement{}, withRef(err, source, lineNo)
	}

	if target == "" {
		err := zerr.With(zerr.Wrap(domain.ErrMalformedLine, ""), "reason", "missing include path")
		return domain.Statement{}, withRef(err, source, lineNo)
	}

	return domain.Statement{
		Kind: domain.StatementInclude,
		Directive: &domain.Directive{
			Path:   domain.NewInternedString(target),
			Source: source,
			Line:   lineNo,
		},
		Raw:  content,
		Line: lineNo,
	}, nil
}

//nolint:cyclop // Line-format dispatch is clearer in one function
func (p *Parser) parseRequirement(source domain.InternedString, content string, lineNo int) (domain.Statement, error) {
	spec := content
	marker := ""
	if idx := strings.Index(content, ";"); idx >= 0 {
		spec = strings.TrimSpace(content[:idx])
		marker = strings.TrimSpace(content[idx+1:])
	}

	namePart := spec
	op := domain.OpNone
	version := ""
	if idx := strings.IndexAny(spec, "<>=!~"); idx >= 0 {
		namePart = strings.TrimSpace(spec[:idx])
		rest := spec[idx:]
		op = matchOp(rest)
		if op == domain.OpNone {
			err := zerr.With(zerr.Wrap(domain.ErrMalformedLine, ""), "reason", "unrecognized version operator")
			return domain.Statement{}, withRef(zerr.With(err, "line", content), source, lineNo)
		}
		version = strings.TrimSpace(rest[len(op):])
		if version == "" || strings.ContainsAny(version, " \t,") {
			err := zerr.With(zerr.Wrap(domain.ErrMalformedLine, ""), "reason", "malformed version")
			return domain.Statement{}, withRef(zerr.With(err, "line", content), source, lineNo)
		}
	}

	name := namePart
	var extras []domain.InternedString
	if idx := strings.Index(namePart, "["); idx >= 0 {
		if !strings.HasSuffix(namePart, "]") {
			err := zerr.With(zerr.Wrap(domain.ErrMalformedLine, ""), "reason", "unterminated extras")
			return domain.Statement{}, withRef(zerr.With(err, "line", content), source, lineNo)
		}
		name = strings.TrimSpace(namePart[:idx])
		for _, extra := range strings.Split(namePart[idx+1:len(namePart)-1], ",") {
			extras = append(extras, domain.NewInternedString(strings.TrimSpace(extra)))
		}
	}

	if !domain.ValidName(name) {
		err := zerr.With(zerr.Wrap(domain.ErrMalformedLine, ""), "reason", "invalid package name")
		return domain.Statement{}, withRef(zerr.With(err, "line", content), source, lineNo)
	}

	return domain.Statement{
		Kind: domain.StatementRequirement,
		Requirement: &domain.Requirement{
			Name:      domain.NewInternedString(name),
			Canonical: domain.NewInternedString(domain.CanonicalName(name)),
			Extras:    extras,
			Op:        op,
			Version:   domain.NewInternedString(version),
			Marker:    domain.NewInternedString(marker),
			Source:    source,
			Line:      lineNo,
		},
		Raw:  content,
		Line: lineNo,
	}, nil
}

// matchOp matches the longest known operator at the start of s.
func matchOp(s string) domain.SpecifierOp {
	for _, op := range domain.KnownOps {
		if strings.HasPrefix(s, string(op)) {
			return op
		}
	}
	return domain.OpNone
}

// stripInlineComment removes a trailing comment preceded by whitespace.
func stripInlineComment(s string) string {
	for i := 1; i < len(s); i++ {
		if s[i] == '#' && (s[i-1] == ' ' || s[i-1] == '\t') {
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}

// withRef attaches the file:line location to a violation.
func withRef(err error, source domain.InternedString, lineNo int) error {
	return zerr.With(err, "ref", source.String()+":"+strconv.Itoa(lineNo))
}
