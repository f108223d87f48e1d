package runner_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/coldreach-backend/internal/runner"
)

func TestRunner_StartReturnsImmediately(t *testing.T) {
	release := make(chan struct{})
	r := runner.New(func(ctx context.Context, campaignID int) {
		<-release
	}, 2)

	start := time.Now()
	h, err := r.Start(1)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.True(t, r.Active(1))

	close(release)
	<-h.Done()
	assert.False(t, r.Active(1))
}

func TestRunner_AtMostOneWorkerPerCampaign(t *testing.T) {
	release := make(chan struct{})
	r := runner.New(func(ctx context.Context, campaignID int) {
		<-release
	}, 4)

	h, err := r.Start(7)
	require.NoError(t, err)

	_, err = r.Start(7)
	assert.Error(t, err, "second start for the same campaign is rejected")

	_, err = r.Start(8)
	assert.NoError(t, err, "other campaigns are unaffected")

	close(release)
	<-h.Done()

	// Once the first worker finishes the campaign can start again.
	h2, err := r.Start(7)
	require.NoError(t, err)
	<-h2.Done()
}

func TestRunner_RunsEveryScheduledCampaign(t *testing.T) {
	var runs int32
	r := runner.New(func(ctx context.Context, campaignID int) {
		atomic.AddInt32(&runs, 1)
	}, 2)

	handles := []*runner.Handle{}
	for id := 1; id <= 5; id++ {
		h, err := r.Start(id)
		require.NoError(t, err)
		handles = append(handles, h)
	}
	for _, h := range handles {
		<-h.Done()
	}

	assert.Equal(t, int32(5), atomic.LoadInt32(&runs))
}
