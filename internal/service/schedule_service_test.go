package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/timepolicy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleService_AddUpdateDelete(t *testing.T) {
	f := newPlanFixture(t)
	svc := NewScheduleService(f.repos.Schedules, f.opts...)
	ctx := context.Background()
	date := day(t, tomorrow)

	added, err := svc.AddTask(ctx, date, app.TaskInput{ID: "ignored", Title: " Report ", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", added.ID)
	assert.Equal(t, "Report", added.Title)
	assert.Equal(t, domain.PriorityNormal, added.Priority)

	updated, err := svc.UpdateTask(ctx, date, app.TaskInput{ID: added.ID, EndTime: "11:30", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "09:00", updated.StartTime)
	assert.Equal(t, "11:30", updated.EndTime)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)

	sched, err := svc.GetSchedule(ctx, date)
	require.NoError(t, err)
	require.Len(t, sched.Tasks, 1)
	assert.Equal(t, "11:30", sched.Tasks[0].EndTime)

	require.NoError(t, svc.DeleteTask(ctx, date, added.ID))
	err = svc.DeleteTask(ctx, date, added.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleService_UpdateUnknownTask(t *testing.T) {
	f := newPlanFixture(t)
	svc := NewScheduleService(f.repos.Schedules, f.opts...)

	_, err := svc.UpdateTask(context.Background(), day(t, tomorrow), app.TaskInput{ID: "nope", Title: "X"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleService_TimePolicy(t *testing.T) {
	f := newPlanFixture(t)
	svc := NewScheduleService(f.repos.Schedules, f.opts...)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, day(t, today), app.TaskInput{Title: "Soon", StartTime: "10:30", EndTime: "11:00"})
	var tooSoon *timepolicy.TooSoonError
	assert.ErrorAs(t, err, &tooSoon)

	err = svc.DeleteTask(ctx, day(t, "2026-06-01"), "any")
	var past *timepolicy.PastDateError
	assert.ErrorAs(t, err, &past)

	added, err := svc.AddTask(ctx, day(t, today), app.TaskInput{Title: "Later", StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)

	f.clock.Set(planNow.Add(90 * time.Minute))
	_, err = svc.UpdateTask(ctx, day(t, today), app.TaskInput{ID: added.ID, Title: "Renamed"})
	assert.ErrorAs(t, err, &tooSoon, "an item about to start is frozen")
}

func TestScheduleService_SetTaskStatus(t *testing.T) {
	f := newPlanFixture(t)
	svc := NewScheduleService(f.repos.Schedules, f.opts...)
	ctx := context.Background()
	date := day(t, tomorrow)

	added, err := svc.AddTask(ctx, date, app.TaskInput{Title: "Report", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	got, err := svc.SetTaskStatus(ctx, date, added.ID, domain.TaskInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, got.Status)

	_, err = svc.SetTaskStatus(ctx, date, added.ID, domain.TaskCompleted)
	require.NoError(t, err)

	_, err = svc.SetTaskStatus(ctx, date, added.ID, domain.TaskInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	sched, err := svc.GetSchedule(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, sched.Tasks[0].Status)
}
