package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/manifest"
	"go.trai.ch/pinset/internal/core/domain"
	"pgregory.net/rapid"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parseOne(t *testing.T, content string) (*domain.Manifest, []error) {
	t.Helper()
	path := writeManifest(t, t.TempDir(), "requirements.txt", content)
	m, violations, err := manifest.NewParser().ParseFile(path)
	require.NoError(t, err)
	return m, violations
}

func TestParser_ReferenceManifest(t *testing.T) {
	content := `# Development tooling requirements
# Linting
isort == 5.12.0
autoflake == 2.3.1
black == 24.4.2

# Type checking
mypy == 1.10.0
django-stubs == 5.0.2
djangorestframework-stubs == 3.15.0

# Test coverage
coverage == 7.5.3

-r boilerplate.requirements.txt
`
	m, violations := parseOne(t, content)
	require.Empty(t, violations)

	reqs := m.Requirements()
	require.Len(t, reqs, 7, "the reference manifest declares exactly 7 dependency records")

	incs := m.Includes()
	require.Len(t, incs, 1, "the reference manifest has exactly 1 inclusion directive")
	assert.Equal(t, "boilerplate.requirements.txt", incs[0].Path.String())

	// Every record is an exact pin.
	for _, req := range reqs {
		assert.True(t, req.Pinned(), "expected %s to be pinned", req.Name.String())
	}

	isort := reqs[0]
	assert.Equal(t, "isort", isort.Name.String())
	assert.Equal(t, domain.OpExact, isort.Op)
	assert.Equal(t, "5.12.0", isort.Version.String())
	assert.Equal(t, 3, isort.Line)
}

func TestParser_Lines(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantKind    domain.StatementKind
		wantName    string
		wantOp      domain.SpecifierOp
		wantVersion string
	}{
		{
			name:        "tight pin",
			line:        "black==24.4.2",
			wantKind:    domain.StatementRequirement,
			wantName:    "black",
			wantOp:      domain.OpExact,
			wantVersion: "24.4.2",
		},
		{
			name:        "spaced pin",
			line:        "coverage == 7.5.3",
			wantKind:    domain.StatementRequirement,
			wantName:    "coverage",
			wantOp:      domain.OpExact,
			wantVersion: "7.5.3",
		},
		{
			name:        "range operator parses but is not a pin",
			line:        "mypy >= 1.10.0",
			wantKind:    domain.StatementRequirement,
			wantName:    "mypy",
			wantOp:      domain.OpGreaterEqual,
			wantVersion: "1.10.0",
		},
		{
			name:     "bare name",
			line:     "isort",
			wantKind: domain.StatementRequirement,
			wantName: "isort",
			wantOp:   domain.OpNone,
		},
		{
			name:        "compatible release",
			line:        "autoflake ~= 2.3",
			wantKind:    domain.StatementRequirement,
			wantName:    "autoflake",
			wantOp:      domain.OpCompatible,
			wantVersion: "2.3",
		},
		{
			name:        "inline comment stripped",
			line:        "black == 24.4.2  # formatter",
			wantKind:    domain.StatementRequirement,
			wantName:    "black",
			wantOp:      domain.OpExact,
			wantVersion: "24.4.2",
		},
		{
			name:     "comment line",
			line:     "# just a comment",
			wantKind: domain.StatementComment,
		},
		{
			name:     "blank line",
			line:     "   ",
			wantKind: domain.StatementBlank,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, violations := parseOne(t, tt.line+"\n")
			require.Empty(t, violations)
			require.Len(t, m.Statements, 1)

			stmt := m.Statements[0]
			assert.Equal(t, tt.wantKind, stmt.Kind)
			if tt.wantKind != domain.StatementRequirement {
				return
			}
			require.NotNil(t, stmt.Requirement)
			assert.Equal(t, tt.wantName, stmt.Requirement.Name.String())
			assert.Equal(t, tt.wantOp, stmt.Requirement.Op)
			assert.Equal(t, tt.wantVersion, stmt.Requirement.Version.String())
		})
	}
}

func TestParser_ExtrasAndMarker(t *testing.T) {
	m, violations := parseOne(t, `django-stubs[compatible-mypy] == 5.0.2 ; python_version >= "3.10"`+"\n")
	require.Empty(t, violations)

	reqs := m.Requirements()
	require.Len(t, reqs, 1)
	req := reqs[0]

	assert.Equal(t, "django-stubs", req.Name.String())
	require.Len(t, req.Extras, 1)
	assert.Equal(t, "compatible-mypy", req.Extras[0].String())
	assert.Equal(t, "5.0.2", req.Version.String())
	assert.Equal(t, `python_version >= "3.10"`, req.Marker.String())
}

func TestParser_LineContinuation(t *testing.T) {
	m, violations := parseOne(t, "djangorestframework-stubs \\\n  == 3.15.0\n")
	require.Empty(t, violations)

	reqs := m.Requirements()
	require.Len(t, reqs, 1)
	assert.Equal(t, "djangorestframework-stubs", reqs[0].Name.String())
	assert.Equal(t, "3.15.0", reqs[0].Version.String())
	assert.Equal(t, 1, reqs[0].Line, "continued record keeps its first line number")
}

func TestParser_Violations(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{name: "unsupported option", line: "--index-url https://pypi.example.org/simple", wantErr: domain.ErrUnsupportedDirective},
		{name: "constraint file", line: "-c constraints.txt", wantErr: domain.ErrUnsupportedDirective},
		{name: "single equals", line: "black = 24.4.2", wantErr: domain.ErrMalformedLine},
		{name: "missing version", line: "black ==", wantErr: domain.ErrMalformedLine},
		{name: "missing include path", line: "-r", wantErr: domain.ErrUnsupportedDirective},
		{name: "invalid name", line: "-black == 1.0", wantErr: domain.ErrUnsupportedDirective},
		{name: "space in name", line: "my py == 1.0", wantErr: domain.ErrMalformedLine},
		{name: "unterminated extras", line: "black[d == 24.4.2", wantErr: domain.ErrMalformedLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, violations := parseOne(t, tt.line+"\n")
			require.Len(t, violations, 1)
			assert.ErrorIs(t, violations[0], tt.wantErr)
			assert.Empty(t, m.Statements, "violating line should not produce a statement")
		})
	}
}

func TestParser_MissingFile(t *testing.T) {
	_, _, err := manifest.NewParser().ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
}

// TestParser_FormatRoundTrip verifies that formatting a parsed pin and
// parsing it again yields the same record.
func TestParser_FormatRoundTrip(t *testing.T) {
	nameGen := rapid.StringMatching(`[a-z][a-z0-9]{0,10}(-[a-z0-9]{1,8}){0,2}`)
	versionGen := rapid.StringMatching(`[0-9]{1,2}\.[0-9]{1,3}(\.[0-9]{1,3})?`)

	rapid.Check(t, func(t *rapid.T) {
		name := nameGen.Draw(t, "name")
		version := versionGen.Draw(t, "version")

		dir, err := os.MkdirTemp("", "pinset-rapid-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "requirements.txt")
		line := name + " == " + version + "\n"
		if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}

		parser := manifest.NewParser()
		m1, violations, err := parser.ParseFile(path)
		if err != nil || len(violations) > 0 {
			t.Fatalf("unexpected parse failure: %v %v", err, violations)
		}

		formatted := manifest.Format(m1)
		if err := os.WriteFile(path, formatted, 0o644); err != nil {
			t.Fatalf("failed to rewrite manifest: %v", err)
		}

		m2, violations, err := parser.ParseFile(path)
		if err != nil || len(violations) > 0 {
			t.Fatalf("unexpected reparse failure: %v %v", err, violations)
		}

		r1 := m1.Requirements()
		r2 := m2.Requirements()
		if len(r1) != 1 || len(r2) != 1 {
			t.Fatalf("expected exactly one record, got %d and %d", len(r1), len(r2))
		}
		if r1[0].Name != r2[0].Name || r1[0].Version != r2[0].Version || r1[0].Op != r2[0].Op {
			t.Fatalf("round trip changed the record: %+v vs %+v", r1[0], r2[0])
		}
	})
}
