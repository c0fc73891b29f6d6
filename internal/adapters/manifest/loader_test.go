package manifest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/manifest"
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/pinset/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestLoader(t *testing.T) *manifest.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	// Allow any warnings; duplicate reporting is asserted via LoadResult.
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return manifest.NewLoader(mockLogger)
}

func load(t *testing.T, targets ...string) (*ports.LoadResult, error) {
	t.Helper()
	return newTestLoader(t).Load(context.Background(), targets)
}

func TestLoader_Load_CombinedSet(t *testing.T) {
	dir := t.TempDir()

	writeManifest(t, dir, "boilerplate.requirements.txt", `# Boilerplate tooling
pip == 24.0
setuptools == 70.0.0
`)
	root := writeManifest(t, dir, "requirements.txt", `# Development tooling requirements
-r boilerplate.requirements.txt
isort == 5.12.0
autoflake == 2.3.1
black == 24.4.2
mypy == 1.10.0
coverage == 7.5.3
django-stubs == 5.0.2
djangorestframework-stubs == 3.15.0
`)

	result, err := load(t, root)
	require.NoError(t, err)
	require.Empty(t, result.Violations)

	// 7 local records + 2 included records.
	assert.Equal(t, 9, result.Set.Len())

	// Included file contributes before the including file's own entries.
	records := result.Set.Records()
	assert.Equal(t, "pip", records[0].Name.String())
	assert.Equal(t, "setuptools", records[1].Name.String())
	assert.Equal(t, "isort", records[2].Name.String())

	// Lookup is canonical.
	req, ok := result.Set.Get("Django_Stubs")
	require.True(t, ok)
	assert.Equal(t, "5.0.2", req.Version.String())
}

func TestLoader_Load_DefaultTarget(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "requirements.txt", "black == 24.4.2\n")
	t.Chdir(dir)

	result, err := newTestLoader(t).Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Set.Len())
}

func TestLoader_Load_MissingTarget(t *testing.T) {
	dir := t.TempDir()

	_, err := load(t, dir+"/absent.txt")
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestLoader_Load_MissingInclude(t *testing.T) {
	dir := t.TempDir()
	root := writeManifest(t, dir, "requirements.txt", "-r boilerplate.requirements.txt\n")

	_, err := load(t, root)
	require.ErrorIs(t, err, domain.ErrIncludeNotFound)
}

func TestLoader_Load_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	root := writeManifest(t, dir, "a.txt", "-r b.txt\nblack == 24.4.2\n")
	writeManifest(t, dir, "b.txt", "-r a.txt\n")

	_, err := load(t, root)
	require.ErrorIs(t, err, domain.ErrIncludeCycle)
}

func TestLoader_Load_DiamondInclude(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "shared.txt", "mypy == 1.10.0\n")
	writeManifest(t, dir, "a.txt", "-r shared.txt\nisort == 5.12.0\n")
	writeManifest(t, dir, "b.txt", "-r shared.txt\nblack == 24.4.2\n")
	root := writeManifest(t, dir, "requirements.txt", "-r a.txt\n-r b.txt\n")

	result, err := load(t, root)
	require.NoError(t, err)
	require.Empty(t, result.Violations)

	// shared.txt is merged once even though two files include it.
	assert.Equal(t, 3, result.Set.Len())
	assert.Empty(t, result.Duplicates)
}

func TestLoader_Load_UnpinnedViolations(t *testing.T) {
	dir := t.TempDir()
	root := writeManifest(t, dir, "requirements.txt", `isort >= 5.0
black
mypy == 1.10.0
`)

	result, err := load(t, root)
	require.NoError(t, err)

	require.Len(t, result.Violations, 2)
	assert.ErrorIs(t, result.Violations[0], domain.ErrUnpinnedRequirement)
	assert.ErrorIs(t, result.Violations[1], domain.ErrUnpinnedRequirement)

	// The pinned record still lands in the set.
	assert.Equal(t, 1, result.Set.Len())
}

func TestLoader_Load_ConflictingPinAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "boilerplate.requirements.txt", "coverage == 7.5.3\n")
	root := writeManifest(t, dir, "requirements.txt", `-r boilerplate.requirements.txt
coverage == 7.6.0
`)

	result, err := load(t, root)
	require.NoError(t, err)

	require.Len(t, result.Violations, 1)
	assert.ErrorIs(t, result.Violations[0], domain.ErrConflictingPin)

	// The first pin wins in the merged set.
	req, ok := result.Set.Get("coverage")
	require.True(t, ok)
	assert.Equal(t, "7.5.3", req.Version.String())
}

func TestLoader_Load_DuplicateIdenticalPin(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "boilerplate.requirements.txt", "mypy == 1.10.0\n")
	root := writeManifest(t, dir, "requirements.txt", `-r boilerplate.requirements.txt
mypy == 1.10.0
`)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	result, err := manifest.NewLoader(mockLogger).Load(context.Background(), []string{root})
	require.NoError(t, err)

	assert.Empty(t, result.Violations)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "mypy", result.Duplicates[0].Canonical.String())
	assert.Equal(t, 1, result.Set.Len())
}

func TestLoader_Load_GraphOrder(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "boilerplate.requirements.txt", "pip == 24.0\n")
	root := writeManifest(t, dir, "requirements.txt", "-r boilerplate.requirements.txt\nblack == 24.4.2\n")

	result, err := load(t, root)
	require.NoError(t, err)

	var order []string
	for m := range result.Graph.Walk() {
		order = append(order, m.Path.String())
	}
	require.Len(t, order, 2)
	assert.Contains(t, order[0], "boilerplate.requirements.txt")
	assert.Contains(t, order[1], "requirements.txt")

	roots := result.Graph.Roots()
	require.Len(t, roots, 1)
	assert.Contains(t, roots[0].String(), "requirements.txt")
	assert.NotContains(t, roots[0].String(), "boilerplate")
}

func TestLoader_Parse_JoinsViolations(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "requirements.txt", "black = 24.4.2\n")

	_, err := newTestLoader(t).Parse(path)
	require.ErrorIs(t, err, domain.ErrMalformedLine)
}

func TestLoader_Load_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	root := writeManifest(t, dir, "requirements.txt", "black == 24.4.2\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader(t).Load(ctx, []string{root})
	require.ErrorIs(t, err, context.Canceled)
}
