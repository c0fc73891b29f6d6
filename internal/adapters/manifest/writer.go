package manifest

import (
	"strings"

	"go.trai.ch/pinset/internal/core/domain"
)

// Format renders a manifest in canonical form: requirement lines collapse to
// "name==version" with no interior spaces, directives normalize to "-r path",
// and comments and blank lines pass through unchanged.
func Format(m *domain.Manifest) []byte {
	var b strings.Builder

	for i := range m.Statements {
		stmt := &m.Statements[i]
		switch stmt.Kind {
		case domain.StatementBlank:
		case domain.StatementComment:
			b.WriteString(stmt.Raw)
		case domain.StatementInclude:
			b.WriteString("-r ")
			b.WriteString(stmt.Directive.Path.String())
		case domain.StatementRequirement:
			b.WriteString(formatRequirement(stmt.Requirement))
		}
		b.WriteString("\n")
	}

	return []byte(b.String())
}

func formatRequirement(req *domain.Requirement) string {
	var b strings.Builder
	b.WriteString(req.Name.String())

	if len(req.Extras) > 0 {
		b.WriteString("[")
		for i, extra := range req.Extras {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(extra.String())
		}
		b.WriteString("]")
	}

	if req.Op != domain.OpNone {
		b.WriteString(string(req.Op))
		b.WriteString(req.Version.String())
	}

	if req.Marker.String() != "" {
		b.WriteString(" ; ")
		b.WriteString(req.Marker.String())
	}

	return b.String()
}
