package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unclebandit/coldreach-backend/internal/model"
	"github.com/unclebandit/coldreach-backend/internal/service"
)

// fakeHistory is an in-memory history source.
type fakeHistory struct {
	outcomes []model.RunOutcome
	err      error
}

func (f *fakeHistory) LoadOutcomes() ([]model.RunOutcome, error) {
	return f.outcomes, f.err
}

func outcome(email, status string) model.RunOutcome {
	return model.RunOutcome{Email: email, Status: status, Timestamp: "2026-09-01T10:00:00Z"}
}

func TestBuildSentSet_SentOnly(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		outcome("a@x.com", model.OutcomeSent),
		outcome("b@x.com", model.OutcomeFailed),
		outcome("c@x.com", model.OutcomeDryRun),
	}}

	set := service.BuildSentSet([]service.HistorySource{src}, false)

	assert.Contains(t, set, "a@x.com")
	assert.NotContains(t, set, "b@x.com")
	assert.NotContains(t, set, "c@x.com")
}

func TestBuildSentSet_IncludesDryRuns(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		outcome("a@x.com", model.OutcomeSent),
		outcome("c@x.com", model.OutcomeDryRun),
	}}

	set := service.BuildSentSet([]service.HistorySource{src}, true)

	assert.Contains(t, set, "a@x.com")
	assert.Contains(t, set, "c@x.com")
}

func TestBuildSentSet_CaseInsensitive(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		outcome("Alice@X.COM", model.OutcomeSent),
	}}

	set := service.BuildSentSet([]service.HistorySource{src}, false)

	assert.Contains(t, set, "alice@x.com")
}

func TestBuildSentSet_SkipsUnreadableSources(t *testing.T) {
	broken := &fakeHistory{err: errors.New("disk on fire")}
	good := &fakeHistory{outcomes: []model.RunOutcome{outcome("a@x.com", model.OutcomeSent)}}

	set := service.BuildSentSet([]service.HistorySource{broken, good}, false)

	assert.Len(t, set, 1)
	assert.Contains(t, set, "a@x.com")
}

func TestBuildSentSet_Idempotent(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		outcome("a@x.com", model.OutcomeSent),
		outcome("b@x.com", model.OutcomeDryRun),
	}}
	sources := []service.HistorySource{src}

	first := service.BuildSentSet(sources, true)
	second := service.BuildSentSet(sources, true)

	assert.Equal(t, first, second)
}
