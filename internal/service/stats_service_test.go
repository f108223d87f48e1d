package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/coldreach-backend/internal/model"
	"github.com/unclebandit/coldreach-backend/internal/service"
)

func TestAggregateStats_TalliesByStatusAndDate(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		{CompanyName: "Acme", Email: "a@x.com", Status: model.OutcomeSent, Timestamp: "2026-09-01T10:00:00Z"},
		{CompanyName: "Beta", Email: "b@x.com", Status: model.OutcomeSent, Timestamp: "2026-09-02T10:00:00Z"},
		{CompanyName: "Gamma", Email: "c@x.com", Status: model.OutcomeFailed, Timestamp: "2026-09-02T10:01:00Z"},
		{CompanyName: "Acme", Email: "a@x.com", Status: model.OutcomeDryRun, Timestamp: "2026-09-03T10:00:00Z"},
	}}

	stats := service.AggregateStats([]service.HistorySource{src})

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.DryRun)
	assert.Equal(t, 3, stats.UniqueEmails)
	assert.Equal(t, 3, stats.UniqueCompanies)
	assert.Equal(t, 1, stats.SentByDate["2026-09-01"])
	assert.Equal(t, 1, stats.SentByDate["2026-09-02"])
}

func TestResendList_FailedNeverSent(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		outcome("a@x.com", model.OutcomeFailed),
		outcome("b@x.com", model.OutcomeFailed),
		outcome("b@x.com", model.OutcomeSent), // recovered on a later run
		outcome("c@x.com", model.OutcomeSent),
	}}

	list := service.ResendList([]service.HistorySource{src})

	require.Len(t, list, 1)
	assert.Equal(t, "a@x.com", list[0].Email)
}

func TestResendList_DeduplicatesByAddress(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		outcome("a@x.com", model.OutcomeFailed),
		outcome("A@X.COM", model.OutcomeFailed),
	}}

	list := service.ResendList([]service.HistorySource{src})

	assert.Len(t, list, 1)
}

func TestSentList_UniqueSentAddresses(t *testing.T) {
	src := &fakeHistory{outcomes: []model.RunOutcome{
		outcome("a@x.com", model.OutcomeSent),
		outcome("a@x.com", model.OutcomeSent),
		outcome("b@x.com", model.OutcomeFailed),
		outcome("c@x.com", model.OutcomeDryRun),
		outcome("d@x.com", model.OutcomeSent),
	}}

	list := service.SentList([]service.HistorySource{src})

	require.Len(t, list, 2)
	assert.Equal(t, "a@x.com", list[0].Email)
	assert.Equal(t, "d@x.com", list[1].Email)
}

func TestSentList_SkipsUnreadableSources(t *testing.T) {
	broken := &fakeHistory{err: assert.AnError}
	good := &fakeHistory{outcomes: []model.RunOutcome{outcome("a@x.com", model.OutcomeSent)}}

	list := service.SentList([]service.HistorySource{broken, good})

	assert.Len(t, list, 1)
}
