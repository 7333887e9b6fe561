package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/forgegate/forgegate/internal/pkg/notifier"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore()
	exec := s.Create("acme/streams-infra", "webhook", "deadbeef")

	assert.NotEmpty(t, exec.Id)
	assert.True(t, strings.HasPrefix(exec.JobHandle, "job-"))
	assert.Equal(t, StatusRunning, exec.Status)

	got, err := s.Get(exec.Id)
	require.NoError(t, err)
	assert.Equal(t, exec.Id, got.Id)
	assert.Equal(t, "deadbeef", got.CommitSha)

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore()
	exec := s.Create("p", "manual", "")

	got, _ := s.Get(exec.Id)
	got.Status = StatusFailed
	got.Stages = append(got.Stages, StageResult{Name: StageBuild})

	fresh, _ := s.Get(exec.Id)
	assert.Equal(t, StatusRunning, fresh.Status)
	assert.Empty(t, fresh.Stages)
}

func TestStoreTerminalIsImmutable(t *testing.T) {
	s := NewStore()
	exec := s.Create("p", "webhook", "")

	s.SetTerminal(exec.Id, StatusFailed)
	s.SetTerminal(exec.Id, StatusSucceeded)

	got, _ := s.Get(exec.Id)
	assert.Equal(t, StatusFailed, got.Status)
	require.NotNil(t, got.FinishedAt)

	// Stage pointer no longer moves either.
	s.BeginStage(exec.Id, StageBuild)
	got, _ = s.Get(exec.Id)
	assert.NotEqual(t, StageBuild, got.Stage)
}

func TestStoreReportByJobHandle(t *testing.T) {
	s := NewStore()
	exec := s.Create("p", "webhook", "")
	ctx := context.Background()

	require.NoError(t, s.ReportSuccess(ctx, exec.JobHandle))
	got, _ := s.Get(exec.Id)
	res, ok := got.StageResultFor(StageNotify)
	require.True(t, ok)
	assert.True(t, res.Ok)

	// A second report for the same handle is dropped, not applied.
	require.NoError(t, s.ReportFailure(ctx, exec.JobHandle, notifier.FailureDetails{
		Message: "late", Type: notifier.FailureTypeSignalDelivery,
	}))
	got, _ = s.Get(exec.Id)
	res, _ = got.StageResultFor(StageNotify)
	assert.True(t, res.Ok)

	err := s.ReportSuccess(ctx, "job-unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreReportCountsNotifyStage(t *testing.T) {
	counter := metrics.StageCompleted.WithLabelValues(StageNotify, "succeeded")
	before := testutil.ToFloat64(counter)

	s := NewStore()
	exec := s.Create("p", "webhook", "")
	ctx := context.Background()

	require.NoError(t, s.ReportSuccess(ctx, exec.JobHandle))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	// The duplicate report is dropped and must not count twice.
	require.NoError(t, s.ReportSuccess(ctx, exec.JobHandle))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestStoreReportFailureDetails(t *testing.T) {
	s := NewStore()
	exec := s.Create("p", "webhook", "")

	err := s.ReportFailure(context.Background(), exec.JobHandle, notifier.FailureDetails{
		Message: "gate returned status 410", Type: notifier.FailureTypeSignalDelivery,
	})
	require.NoError(t, err)

	got, _ := s.Get(exec.Id)
	res, ok := got.StageResultFor(StageNotify)
	require.True(t, ok)
	assert.False(t, res.Ok)
	assert.Contains(t, res.Error, notifier.FailureTypeSignalDelivery)
	assert.Contains(t, res.Error, "410")
}
