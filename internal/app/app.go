// Package app implements the application layer for pinset.
package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pinset/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader  ports.ManifestLoader
	hasher  ports.Hasher
	locks   ports.LockStore
	logger  ports.Logger
	tracer  ports.Tracer
	watcher ports.Watcher
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	hasher ports.Hasher,
	locks ports.LockStore,
	logger ports.Logger,
	tracer ports.Tracer,
	fsWatcher ports.Watcher,
) *App {
	return &App{
		loader:  loader,
		hasher:  hasher,
		locks:   locks,
		logger:  logger,
		tracer:  tracer,
		watcher: fsWatcher,
	}
}

// CheckReport summarizes the outcome of resolving and validating a manifest set.
type CheckReport struct {
	Manifests  int
	Includes   int
	Records    []domain.Requirement
	Violations []error
	Duplicates []domain.Requirement
}

// OK reports whether the manifest set satisfies the pin contract.
func (r *CheckReport) OK() bool {
	return len(r.Violations) == 0
}

// Check resolves the target manifests and validates the pin contract.
// A non-empty violation list yields domain.ErrValidationFailed alongside
// the report so callers can still render the findings.
func (a *App) Check(ctx context.Context, targets []string) (*CheckReport, error) {
	ctx, span := a.tracer.Start(ctx, "app.check")
	defer span.End()

	_, report, err := a.resolve(ctx, targets)
	if err != nil {
		span.RecordError(err)
		return report, err
	}

	span.SetAttribute("manifests", report.Manifests)
	span.SetAttribute("records", len(report.Records))
	return report, nil
}

// resolve loads the manifest set and enforces the pin contract. Content
// violations yield domain.ErrValidationFailed alongside the report.
func (a *App) resolve(ctx context.Context, targets []string) (*ports.LoadResult, *CheckReport, error) {
	result, err := a.loader.Load(ctx, targets)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to resolve manifest set")
	}

	report := buildReport(result)
	if !report.OK() {
		return result, report, zerr.With(zerr.Wrap(domain.ErrValidationFailed, ""), "violations", len(report.Violations))
	}

	return result, report, nil
}

// List resolves the target manifests and returns the combined records in
// installer order. Violations do not abort the listing; they are logged
// as warnings so the records remain inspectable.
func (a *App) List(ctx context.Context, targets []string) ([]domain.Requirement, error) {
	ctx, span := a.tracer.Start(ctx, "app.list")
	defer span.End()

	result, err := a.loader.Load(ctx, targets)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to resolve manifest set")
	}

	for _, violation := range result.Violations {
		a.logger.Warn(violation.Error())
	}

	span.SetAttribute("records", result.Set.Len())
	return result.Set.Records(), nil
}

// Lock resolves the target manifests and writes a lockfile capturing the
// pinned set and its digest. A set that fails the pin contract is never
// locked.
func (a *App) Lock(ctx context.Context, targets []string, output string) (*domain.Lockfile, error) {
	ctx, span := a.tracer.Start(ctx, "app.lock")
	defer span.End()

	result, report, err := a.resolve(ctx, targets)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	digest := a.hasher.DigestSet(result.Set)
	lockfile := domain.NewLockfile(result.Set, digest)

	if err := a.locks.Write(output, lockfile); err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to write lockfile")
	}

	span.SetAttribute("digest", digest)
	span.SetAttribute("packages", len(report.Records))
	return lockfile, nil
}

// Verify compares the current manifest set against an existing lockfile.
// It returns domain.ErrLockDrift when the set and the lockfile disagree.
func (a *App) Verify(ctx context.Context, targets []string, lockPath string) error {
	ctx, span := a.tracer.Start(ctx, "app.verify")
	defer span.End()

	lockfile, err := a.locks.Read(lockPath)
	if err != nil {
		span.RecordError(err)
		return err
	}

	result, _, err := a.resolve(ctx, targets)
	if err != nil {
		span.RecordError(err)
		return err
	}

	digest := a.hasher.DigestSet(result.Set)
	if err := lockfile.Verify(result.Set, digest); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// FormatResult is the outcome of canonical formatting for one manifest.
type FormatResult struct {
	Path      string
	Formatted []byte
	Changed   bool
}

// Format renders a manifest in canonical form. With write set, the file is
// rewritten in place when its content differs from the canonical form.
// A manifest with content violations is never formatted.
func (a *App) Format(ctx context.Context, path string, write bool) (*FormatResult, error) {
	_, span := a.tracer.Start(ctx, "app.format")
	defer span.End()

	m, err := a.loader.Parse(path)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "refusing to format manifest with violations")
	}

	original, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	formatted := a.loader.Format(m)
	result := &FormatResult{
		Path:      path,
		Formatted: formatted,
		Changed:   !bytes.Equal(original, formatted),
	}
	span.SetAttribute("changed", result.Changed)

	if write && result.Changed {
		if err := os.WriteFile(path, formatted, domain.FilePerm); err != nil {
			span.RecordError(err)
			return nil, zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", path)
		}
	}

	return result, nil
}

// Watch re-checks the target manifests whenever a manifest file under the
// working directory changes. Each re-check outcome is delivered through
// onReport. Watch blocks until the context is canceled.
func (a *App) Watch(ctx context.Context, targets []string, onReport func(*CheckReport, error)) error {
	ctx, span := a.tracer.Start(ctx, "app.watch")
	defer span.End()

	root, err := os.Getwd()
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to determine working directory")
	}

	if err := a.watcher.Start(ctx, root); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop file watcher: " + err.Error())
		}
	}()

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		for _, p := range paths {
			a.logger.Info("change detected: " + p)
		}
		report, err := a.Check(ctx, targets)
		onReport(report, err)
	})

	// Initial check before the first event arrives.
	report, err := a.Check(ctx, targets)
	onReport(report, err)

	for event := range a.watcher.Events() {
		if event.Operation == ports.OpCreate {
			if info, statErr := os.Stat(event.Path); statErr == nil && info.IsDir() {
				continue
			}
		}
		if !isManifestPath(event.Path) {
			continue
		}
		debouncer.Add(event.Path)
	}

	debouncer.Flush()
	return ctx.Err()
}

// isManifestPath reports whether a path looks like a requirements manifest.
func isManifestPath(path string) bool {
	base := filepath.Base(path)
	return base == domain.DefaultManifestName || strings.HasSuffix(base, ".txt")
}

func buildReport(result *ports.LoadResult) *CheckReport {
	report := &CheckReport{
		Records:    result.Set.Records(),
		Violations: result.Violations,
		Duplicates: result.Duplicates,
	}
	for m := range result.Graph.Walk() {
		report.Manifests++
		report.Includes += len(m.Includes())
	}
	return report
}
