package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmfeed/calmfeed/pkg/scheduler/mocks"
)

func TestScheduler_RunsImmediately(t *testing.T) {
	ingest := &mocks.JobMock{RunFunc: func(ctx context.Context) error { return nil }}
	classify := &mocks.JobMock{RunFunc: func(ctx context.Context) error { return nil }}

	s := NewScheduler(ingest, classify, Config{IngestInterval: time.Hour, ClassifyInterval: time.Hour})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(ingest.RunCalls()) == 1 && len(classify.RunCalls()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_RunsOnTicks(t *testing.T) {
	ingest := &mocks.JobMock{RunFunc: func(ctx context.Context) error { return nil }}

	s := NewScheduler(ingest, nil, Config{IngestInterval: 20 * time.Millisecond})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(ingest.RunCalls()) >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_FailedPassKeepsTicking(t *testing.T) {
	ingest := &mocks.JobMock{RunFunc: func(ctx context.Context) error { return fmt.Errorf("feed gone") }}

	s := NewScheduler(ingest, nil, Config{IngestInterval: 20 * time.Millisecond})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(ingest.RunCalls()) >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_StopWaitsForJobs(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ingest := &mocks.JobMock{RunFunc: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}}

	s := NewScheduler(ingest, nil, Config{IngestInterval: time.Hour})
	s.Start(context.Background())
	<-started

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("stop returned while a pass was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after the pass finished")
	}
}

func TestScheduler_NoClassifier(t *testing.T) {
	ingest := &mocks.JobMock{RunFunc: func(ctx context.Context) error { return nil }}

	s := NewScheduler(ingest, nil, Config{IngestInterval: time.Hour})
	s.Start(context.Background())
	s.Stop()

	assert.GreaterOrEqual(t, len(ingest.RunCalls()), 1)
}

func TestScheduler_Defaults(t *testing.T) {
	s := NewScheduler(nil, nil, Config{})
	assert.Equal(t, 30*time.Minute, s.ingestInterval)
	assert.Equal(t, 10*time.Minute, s.classifyInterval)
}
