package recorder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/coldreach-backend/internal/model"
	"github.com/unclebandit/coldreach-backend/internal/recorder"
)

func sampleOutcomes() []model.RunOutcome {
	return []model.RunOutcome{
		{CompanyName: "Acme", Email: "a@acme.com", Status: model.OutcomeSent, Timestamp: "2026-09-01T10:00:00Z"},
		{CompanyName: "Beta", Email: "b@beta.io", Status: model.OutcomeFailed, Timestamp: "2026-09-01T10:01:00Z"},
	}
}

func TestCSVRecorder_PersistAndReadBack(t *testing.T) {
	dir := t.TempDir()
	rec := recorder.NewCSVRecorder(dir)

	path, err := rec.Persist(sampleOutcomes())
	require.NoError(t, err)
	assert.FileExists(t, path)

	src := recorder.NewResultsDirSource(dir)
	outcomes, err := src.LoadOutcomes()
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "a@acme.com", outcomes[0].Email)
	assert.Equal(t, model.OutcomeSent, outcomes[0].Status)
	assert.Equal(t, "Beta", outcomes[1].CompanyName)
}

func TestCSVRecorder_UniqueFilePerRun(t *testing.T) {
	dir := t.TempDir()
	rec := recorder.NewCSVRecorder(dir)

	first, err := rec.Persist(sampleOutcomes())
	require.NoError(t, err)
	second, err := rec.Persist(sampleOutcomes())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	src := recorder.NewResultsDirSource(dir)
	outcomes, err := src.LoadOutcomes()
	require.NoError(t, err)
	assert.Len(t, outcomes, 4)
}

func TestResultsDirSource_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	rec := recorder.NewCSVRecorder(dir)
	_, err := rec.Persist(sampleOutcomes())
	require.NoError(t, err)

	bad := filepath.Join(dir, "results_garbage.csv")
	require.NoError(t, os.WriteFile(bad, []byte("\"unterminated\n"), 0o644))

	src := recorder.NewResultsDirSource(dir)
	outcomes, err := src.LoadOutcomes()
	require.NoError(t, err)
	assert.Len(t, outcomes, 2, "the unreadable file is skipped, not fatal")
}

func TestResultsDirSource_EmptyDir(t *testing.T) {
	src := recorder.NewResultsDirSource(t.TempDir())

	outcomes, err := src.LoadOutcomes()
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
