package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/pinset/internal/app"
	"go.trai.ch/pinset/internal/ui/style"
	"go.trai.ch/zerr"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(style.Green)
	badStyle  = lipgloss.NewStyle().Foreground(style.Red)
	warnStyle = lipgloss.NewStyle().Foreground(style.Yellow)
	dimStyle  = lipgloss.NewStyle().Foreground(style.Slate)
)

// renderReport prints a human-readable check report.
func (c *CLI) renderReport(report *app.CheckReport) {
	for _, violation := range report.Violations {
		fmt.Fprintln(c.out, badStyle.Render(style.Cross)+" "+renderViolation(violation))
	}
	for i := range report.Duplicates {
		dup := &report.Duplicates[i]
		line := fmt.Sprintf("duplicate pin %s==%s at %s", dup.Name, dup.Version, dup.Ref())
		fmt.Fprintln(c.out, warnStyle.Render(style.Warning)+" "+line)
	}

	summary := fmt.Sprintf("%d packages pinned across %d manifests", len(report.Records), report.Manifests)
	if report.OK() {
		fmt.Fprintln(c.out, okStyle.Render(style.Check)+" "+summary)
		return
	}
	fmt.Fprintln(c.out, badStyle.Render(style.Cross)+" "+summary+
		dimStyle.Render(fmt.Sprintf(" (%d violations)", len(report.Violations))))
}

// renderViolation flattens a violation into a single line, pulling the
// file:line reference and remaining metadata out of the error chain.
func renderViolation(err error) string {
	var ze *zerr.Error
	if !errors.As(err, &ze) {
		return err.Error()
	}

	msg := ze.Message()
	meta := ze.Metadata()
	// A metadata-only wrapper has an empty message; the sentinel underneath
	// carries the text.
	if msg == "" {
		if cause := ze.Unwrap(); cause != nil {
			msg = cause.Error()
		}
	}

	if ref, ok := meta["ref"].(string); ok {
		msg = ref + ": " + msg
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		if k == "ref" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return msg
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}
