package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/notify"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/alexanderramin/dayplan/internal/timepolicy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-06-15, 10:00 UTC.
var planNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

const (
	today    = "2026-06-15"
	tomorrow = "2026-06-16"
)

// testRepos bundles the SQLite repositories over one test database. Dates are
// read back in UTC.
type testRepos struct {
	Schedules  *repository.SQLiteScheduleRepo
	Meetings   *repository.SQLiteMeetingRepo
	Receptions *repository.SQLiteReceptionRepo
	Employees  *repository.SQLiteEmployeeRepo
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	return &testRepos{
		Schedules:  repository.NewSQLiteScheduleRepo(database, uow),
		Meetings:   repository.NewSQLiteMeetingRepo(database, uow, time.UTC),
		Receptions: repository.NewSQLiteReceptionRepo(database, uow),
		Employees:  repository.NewSQLiteEmployeeRepo(database, time.UTC),
	}
}

type planFixture struct {
	repos     *testRepos
	clock     *testutil.FixedClock
	sent      *testutil.RecordingDispatcher
	logs      *bytes.Buffer
	opts      []Option
	notifier  *notify.Sender
	svc       DailyPlanService
	reception ReceptionService
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	f := &planFixture{
		repos: newTestRepos(t),
		clock: testutil.NewFixedClock(planNow),
		sent:  &testutil.RecordingDispatcher{},
		logs:  &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(f.logs, nil))
	f.opts = []Option{WithClock(f.clock.Now), WithLocation(time.UTC), WithLogger(logger)}
	f.notifier = notify.NewSender(f.sent, logger)
	f.svc = NewDailyPlanService(f.repos.Schedules, f.repos.Meetings, f.repos.Receptions, f.repos.Employees, f.notifier, f.opts...)
	f.reception = NewReceptionService(f.repos.Receptions, f.opts...)
	return f
}

func (f *planFixture) employee(t *testing.T, name string) *domain.Employee {
	t.Helper()
	e := testutil.NewTestEmployee(name)
	require.NoError(t, f.repos.Employees.Create(context.Background(), e))
	return e
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s, time.UTC)
	require.NoError(t, err)
	return d
}

func task(title, start, end string) app.PlanItemInput {
	return app.NewTaskInput(app.TaskInput{Title: title, StartTime: start, EndTime: end})
}

func TestSaveDailyPlan_TaskForTomorrow(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{task("Report", "09:00", "10:00")},
	})
	require.NoError(t, err)
	assert.False(t, res.HasErrors())
	assert.Equal(t, 1, res.TasksSaved)

	plan, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, domain.KindTask, plan.Items[0].Kind)
	assert.Equal(t, "09:00", plan.Items[0].Time)
	assert.Equal(t, "Report", plan.Items[0].Title)

	payload, ok := plan.Items[0].Payload.(domain.TaskPayload)
	require.True(t, ok)
	assert.Equal(t, domain.PriorityNormal, payload.Priority)
	assert.Equal(t, domain.TaskPending, payload.Status)
	assert.Equal(t, app.PlanSummary{TotalItems: 1, TotalTasks: 1}, plan.Summary)
}

func TestSaveDailyPlan_RejectsPastDate(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	for _, items := range [][]app.PlanItemInput{
		{task("Report", "09:00", "10:00")},
		{task("Late", "23:00", "23:30")},
		nil,
	} {
		res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{Date: "2026-06-14", Upserts: items})
		var past *timepolicy.PastDateError
		require.ErrorAs(t, err, &past)
		assert.Nil(t, res)
	}

	plan, err := f.svc.GetDailyPlan(ctx, day(t, "2026-06-14"))
	require.NoError(t, err)
	assert.Empty(t, plan.Items)
}

func TestSaveDailyPlan_RejectsInvalidDate(t *testing.T) {
	f := newPlanFixture(t)

	_, err := f.svc.SaveDailyPlan(context.Background(), app.SaveDailyPlanRequest{Date: "2026-02-30"})
	var invalid *domain.InvalidDateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "2026-02-30", invalid.Input)
}

func TestSaveDailyPlan_TooSoonLateEvening(t *testing.T) {
	f := newPlanFixture(t)
	f.clock.Set(time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    today,
		Upserts: []app.PlanItemInput{task("Wrap up", "23:30", "23:45")},
	})
	var tooSoon *timepolicy.TooSoonError
	require.ErrorAs(t, err, &tooSoon)
	assert.Equal(t, domain.MustClock("23:30"), tooSoon.Time)

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{task("Wrap up", "23:30", "23:59")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TasksSaved)
}

func TestSaveDailyPlan_OneHourBoundary(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    today,
		Upserts: []app.PlanItemInput{task("Standup", "10:59", "11:15")},
	})
	var tooSoon *timepolicy.TooSoonError
	require.ErrorAs(t, err, &tooSoon)

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    today,
		Upserts: []app.PlanItemInput{task("Standup", "11:00", "11:15")},
	})
	require.NoError(t, err, "exactly one hour ahead is allowed")
	assert.Equal(t, 1, res.TasksSaved)
}

func TestSaveDailyPlan_EarliestItemGatesWholeBatch(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date: today,
		Upserts: []app.PlanItemInput{
			task("Later", "15:00", "16:00"),
			app.NewMeetingInput(app.MeetingInput{Name: "Sync", Time: "10:30"}),
		},
	})
	var tooSoon *timepolicy.TooSoonError
	require.ErrorAs(t, err, &tooSoon)

	plan, err := f.svc.GetDailyPlan(ctx, day(t, today))
	require.NoError(t, err)
	assert.Empty(t, plan.Items, "no partial application")
}

func TestSaveDailyPlan_UpdateWithoutTimeUsesStoredTime(t *testing.T) {
	ctx := context.Background()
	seed := func(t *testing.T, f *planFixture) *domain.Employee {
		t.Helper()
		sched := domain.NewSchedule(day(t, today))
		sched.Tasks = []domain.Task{
			testutil.NewTestTask("Soon", func(tk *domain.Task) { tk.ID = "soon" }, testutil.WithTaskTimes("10:30", "11:00")),
			testutil.NewTestTask("Started", func(tk *domain.Task) { tk.ID = "started" }, testutil.WithTaskTimes("09:30", "10:30")),
			testutil.NewTestTask("Later", func(tk *domain.Task) { tk.ID = "later" }, testutil.WithTaskTimes("15:00", "16:00")),
		}
		require.NoError(t, f.repos.Schedules.Save(ctx, sched))

		m := testutil.NewTestMeeting("Huddle", day(t, today), testutil.WithMeetingTime("10:45"))
		m.ID = "huddle"
		require.NoError(t, f.repos.Meetings.Save(ctx, m))

		emp := f.employee(t, "Ann")
		rday := domain.NewReceptionDay(day(t, today))
		rday.Entries = []domain.ReceptionEntry{testutil.NewTestEntry(emp, testutil.WithScheduledTime("10:15"))}
		require.NoError(t, f.repos.Receptions.Save(ctx, rday))
		return emp
	}

	cases := []struct {
		name string
		item func(emp *domain.Employee) app.PlanItemInput
	}{
		{"task starting within the hour", func(*domain.Employee) app.PlanItemInput {
			return app.NewTaskInput(app.TaskInput{ID: "soon", Title: "Edited within the hour"})
		}},
		{"task already started", func(*domain.Employee) app.PlanItemInput {
			return app.NewTaskInput(app.TaskInput{ID: "started", Description: "late note"})
		}},
		{"meeting within the hour", func(*domain.Employee) app.PlanItemInput {
			return app.NewMeetingInput(app.MeetingInput{ID: "huddle", Name: "Renamed"})
		}},
		{"reception within the hour", func(emp *domain.Employee) app.PlanItemInput {
			return app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, Phone: "+15550002"})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPlanFixture(t)
			emp := seed(t, f)
			before, err := f.svc.GetDailyPlan(ctx, day(t, today))
			require.NoError(t, err)

			res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
				Date:    today,
				Upserts: []app.PlanItemInput{tc.item(emp)},
			})
			var tooSoon *timepolicy.TooSoonError
			require.ErrorAs(t, err, &tooSoon)
			assert.Nil(t, res)

			after, err := f.svc.GetDailyPlan(ctx, day(t, today))
			require.NoError(t, err)
			assert.Equal(t, before.Items, after.Items, "nothing written")
			assert.Empty(t, f.sent.Sent)
		})
	}

	t.Run("stored time far enough ahead", func(t *testing.T) {
		f := newPlanFixture(t)
		seed(t, f)
		res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
			Date:    today,
			Upserts: []app.PlanItemInput{app.NewTaskInput(app.TaskInput{ID: "later", Title: "Later, renamed"})},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.TasksSaved)

		sched, err := f.repos.Schedules.FindByDate(ctx, day(t, today))
		require.NoError(t, err)
		assert.Equal(t, "Later, renamed", sched.FindTask("later").Title)
		assert.Equal(t, "15:00", sched.FindTask("later").StartTime)
	})
}

func TestSaveDailyPlan_MeetingFromPastDayStaysPut(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	m := testutil.NewTestMeeting("Retro", day(t, "2026-06-14"), testutil.WithMeetingTime("16:00"))
	m.ID = "m1"
	require.NoError(t, f.repos.Meetings.Save(ctx, m))

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewMeetingInput(app.MeetingInput{ID: "m1", Name: "Rewritten past"})},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.MeetingsSaved)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "m1", res.Errors[0].ID)
	var past *timepolicy.PastDateError
	assert.ErrorAs(t, &res.Errors[0], &past)

	stored, err := f.repos.Meetings.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Retro", stored.Name)
	assert.Equal(t, day(t, "2026-06-14"), stored.Date)
	assert.Empty(t, f.sent.Events("meeting"))
}

func TestSaveDailyPlan_ReceptionDeduplicatedByEmployee(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ann")

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date: tomorrow,
		Upserts: []app.PlanItemInput{
			app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, ScheduledTime: "09:00"}),
			app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, ScheduledTime: "09:30", Phone: "+15550001"}),
		},
	})
	require.NoError(t, err)
	assert.False(t, res.HasErrors())

	rday, err := f.repos.Receptions.FindByDate(ctx, day(t, tomorrow))
	require.NoError(t, err)
	require.Len(t, rday.Entries, 1)
	entry := rday.Entries[0]
	assert.Equal(t, "09:30", entry.ScheduledTime)
	assert.Equal(t, "+15550001", entry.Phone)
	assert.Equal(t, emp.Name, entry.Name, "filled from the directory")
	assert.Equal(t, domain.ReceptionWaiting, entry.Status)

	notices := f.sent.Events("reception")
	require.Len(t, notices, 1, "one notice per employee per batch")
	assert.False(t, notices[0].Reception.IsUpdate, "the entry is new to this batch")
	assert.Equal(t, "09:30", notices[0].Reception.Time, "carries the merged entry")

	history, err := f.repos.Employees.ListReceptionHistory(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entry.ID, history[0].EntryID)
	assert.Equal(t, "09:30", history[0].Time)
}

func TestSaveDailyPlan_ReceptionSecondBatchUpdatesInPlace(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ben")

	for _, slot := range []string{"11:00", "12:00"} {
		_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
			Date:    tomorrow,
			Upserts: []app.PlanItemInput{app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, ScheduledTime: slot})},
		})
		require.NoError(t, err)
	}

	plan, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "12:00", plan.Items[0].Time)
}

func TestGetDailyPlan_MergesKindsByTime(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Cleo")

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date: tomorrow,
		Upserts: []app.PlanItemInput{
			app.NewTaskInput(app.TaskInput{ID: "t1", Title: "Review", StartTime: "10:00", EndTime: "11:00"}),
			app.NewTaskInput(app.TaskInput{ID: "t2", Title: "Write", StartTime: "14:00", EndTime: "15:00"}),
			app.NewMeetingInput(app.MeetingInput{ID: "m1", Name: "Sync", Time: "09:15"}),
			app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, ScheduledTime: "09:15"}),
		},
	})
	require.NoError(t, err)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	plan, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)

	var kinds []domain.PlanItemKind
	var times []string
	for _, it := range plan.Items {
		kinds = append(kinds, it.Kind)
		times = append(times, it.Time)
	}
	assert.Equal(t, []string{"09:15", "09:15", "10:00", "14:00"}, times)
	assert.Equal(t, []domain.PlanItemKind{domain.KindMeeting, domain.KindReception, domain.KindTask, domain.KindTask}, kinds)
	assert.Equal(t, "t1", plan.Items[2].ID)
	assert.Equal(t, app.PlanSummary{TotalItems: 4, TotalTasks: 2, TotalMeetings: 1, TotalReceptions: 1}, plan.Summary)
}

func TestGetDailyPlan_Idempotent(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Dana")

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date: tomorrow,
		Upserts: []app.PlanItemInput{
			task("Report", "09:00", "10:00"),
			app.NewMeetingInput(app.MeetingInput{Name: "Sync", Time: "11:00", Participants: []string{emp.ID}}),
			app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID}),
		},
	})
	require.NoError(t, err)

	first, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)
	second, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, first.Summary.TotalItems)
}

func TestGetDailyPlan_LegacyReceptionDefaultsToNine(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Eve")

	rday := domain.NewReceptionDay(day(t, tomorrow))
	rday.Entries = append(rday.Entries, testutil.NewTestEntry(emp))
	require.NoError(t, f.repos.Receptions.Save(ctx, rday))

	plan, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, domain.DefaultReceptionTime, plan.Items[0].Time)
}

func TestGetDailyPlan_ExposesPersistedAndDerivedTaskStatus(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Finn")

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, ScheduledTime: "12:00"})},
	})
	require.NoError(t, err)

	f.clock.Set(time.Date(2026, 6, 16, 12, 5, 0, 0, time.UTC))
	_, err = f.reception.MarkPresent(ctx, day(t, tomorrow), emp.ID, &domain.TaskAssignment{Description: "Send report", DeadlineDays: 1})
	require.NoError(t, err)

	f.clock.Set(time.Date(2026, 6, 18, 9, 0, 0, 0, time.UTC))
	plan, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)

	payload := plan.Items[0].Payload.(domain.ReceptionPayload)
	assert.Equal(t, domain.ReceptionPresent, payload.Status)
	assert.Equal(t, domain.AssignmentPending, payload.TaskStatus)
	assert.Equal(t, domain.AssignmentOverdue, payload.EffectiveTaskStatus)
}

type failingMeetingReads struct {
	repository.MeetingRepo
}

func (failingMeetingReads) FindByDateRange(context.Context, time.Time, time.Time) ([]*domain.Meeting, error) {
	return nil, errors.New("meeting store offline")
}

func TestGetDailyPlan_StoreFailureFailsWholeRead(t *testing.T) {
	f := newPlanFixture(t)
	svc := NewDailyPlanService(f.repos.Schedules, failingMeetingReads{f.repos.Meetings}, f.repos.Receptions, f.repos.Employees, f.notifier, f.opts...)

	plan, err := svc.GetDailyPlan(context.Background(), day(t, tomorrow))
	assert.Nil(t, plan)
	var fetchErr *app.StoreFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.KindMeeting, fetchErr.Kind)
	assert.Contains(t, err.Error(), "meeting store offline")
}

type failingScheduleSaves struct {
	repository.ScheduleRepo
}

func (failingScheduleSaves) Save(context.Context, *domain.Schedule) error {
	return errors.New("disk full")
}

func TestSaveDailyPlan_CollectsItemFailures(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	svc := NewDailyPlanService(failingScheduleSaves{f.repos.Schedules}, f.repos.Meetings, f.repos.Receptions, f.repos.Employees, f.notifier, f.opts...)

	res, err := svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date: tomorrow,
		Upserts: []app.PlanItemInput{
			app.NewTaskInput(app.TaskInput{ID: "t1", Title: "Report", StartTime: "09:00", EndTime: "10:00"}),
			app.NewTaskInput(app.TaskInput{ID: "t2", Title: "Backwards", StartTime: "12:00", EndTime: "11:00"}),
			app.NewMeetingInput(app.MeetingInput{Name: "Sync", Time: "13:00"}),
		},
	})
	require.NoError(t, err, "item failures never fail the call")
	assert.Equal(t, 0, res.TasksSaved)
	assert.Equal(t, 1, res.MeetingsSaved)
	require.Len(t, res.Errors, 2)

	byID := map[string]*app.ItemPersistError{}
	for i := range res.Errors {
		byID[res.Errors[i].ID] = &res.Errors[i]
	}
	assert.Contains(t, byID["t2"].Error(), "before end")
	assert.Contains(t, byID["t1"].Error(), "disk full")
	assert.Equal(t, domain.KindTask, byID["t1"].Kind)
	assert.Equal(t, opUpsert, byID["t1"].Op)
}

func TestSaveDailyPlan_DeletesAreIndependent(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Gus")

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date: tomorrow,
		Upserts: []app.PlanItemInput{
			app.NewTaskInput(app.TaskInput{ID: "t1", Title: "Report", StartTime: "09:00", EndTime: "10:00"}),
			app.NewMeetingInput(app.MeetingInput{ID: "m1", Name: "Sync", Time: "11:00", Participants: []string{emp.ID}}),
			app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, ScheduledTime: "12:00"}),
		},
	})
	require.NoError(t, err)

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date: tomorrow,
		Deletes: []app.PlanItemRef{
			{Kind: domain.KindTask, ID: "missing"},
			{Kind: domain.KindTask, ID: "t1"},
			{Kind: domain.KindMeeting, ID: "m1"},
			{Kind: domain.KindReception, ID: emp.ID},
			{Kind: "memo", ID: "x"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Deleted)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "memo", string(res.Errors[0].Kind))
	assert.ErrorIs(t, &res.Errors[1], repository.ErrNotFound)
	assert.Equal(t, "missing", res.Errors[1].ID)

	plan, err := f.svc.GetDailyPlan(ctx, day(t, tomorrow))
	require.NoError(t, err)
	assert.Empty(t, plan.Items)

	history, err := f.repos.Employees.ListMeetingHistory(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "meeting removed from participant history")
}

func TestSaveDailyPlan_MeetingUpsertCreatesThenUpdates(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	a := f.employee(t, "Hal")
	b := f.employee(t, "Ida")

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewMeetingInput(app.MeetingInput{ID: "m1", Name: "Kickoff", Time: "14:00", Participants: []string{a.ID, b.ID, a.ID}})},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.MeetingsSaved)

	_, err = f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewMeetingInput(app.MeetingInput{ID: "m1", Time: "15:00", Location: "Room 2"})},
	})
	require.NoError(t, err)

	m, err := f.repos.Meetings.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", m.Name)
	assert.Equal(t, "15:00", m.Time)
	assert.Equal(t, "Room 2", m.Location)
	assert.Equal(t, []string{a.ID, b.ID}, m.Participants)

	notices := f.sent.Events("meeting")
	require.Len(t, notices, 4)
	assert.False(t, notices[0].Meeting.IsUpdate)
	assert.True(t, notices[3].Meeting.IsUpdate)

	history, err := f.repos.Employees.ListMeetingHistory(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "15:00", history[0].Time)
}

func TestSaveDailyPlan_MeetingUpdateDropsRemovedParticipantHistory(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	a := f.employee(t, "Lea")
	b := f.employee(t, "Max")

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewMeetingInput(app.MeetingInput{ID: "m1", Name: "Review", Time: "13:00", Participants: []string{a.ID, b.ID}})},
	})
	require.NoError(t, err)

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewMeetingInput(app.MeetingInput{ID: "m1", Participants: []string{a.ID}})},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.MeetingsSaved)

	history, err := f.repos.Employees.ListMeetingHistory(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	history, err = f.repos.Employees.ListMeetingHistory(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "m1", history[0].MeetingID)
}

func TestSaveDailyPlan_PresentCannotBecomeAbsent(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jo")

	_, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, ScheduledTime: "16:00"})},
	})
	require.NoError(t, err)
	_, err = f.reception.MarkPresent(ctx, day(t, tomorrow), emp.ID, nil)
	require.NoError(t, err)

	res, err := f.svc.SaveDailyPlan(ctx, app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID, Status: domain.ReceptionAbsent})},
	})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, &res.Errors[0], domain.ErrInvalidTransition)

	rday, err := f.repos.Receptions.FindByDate(ctx, day(t, tomorrow))
	require.NoError(t, err)
	assert.Equal(t, domain.ReceptionPresent, rday.Entries[0].Status)
}

func TestSaveDailyPlan_NotificationFailureIsLoggedOnly(t *testing.T) {
	f := newPlanFixture(t)
	f.sent.Err = errors.New("telegram down")
	emp := f.employee(t, "Kai")

	res, err := f.svc.SaveDailyPlan(context.Background(), app.SaveDailyPlanRequest{
		Date:    tomorrow,
		Upserts: []app.PlanItemInput{app.NewReceptionInput(app.ReceptionInput{EmployeeID: emp.ID})},
	})
	require.NoError(t, err)
	assert.False(t, res.HasErrors())
	assert.Equal(t, 1, res.ReceptionsSaved)
	assert.Contains(t, f.logs.String(), "notification_failed")
	assert.Contains(t, f.logs.String(), "telegram down")
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func TestSaveDailyPlan_ReportsUseCase(t *testing.T) {
	f := newPlanFixture(t)
	obs := &recordingObserver{}
	svc := NewDailyPlanService(f.repos.Schedules, f.repos.Meetings, f.repos.Receptions, f.repos.Employees, f.notifier,
		append(f.opts, WithObserver(obs))...)

	_, err := svc.SaveDailyPlan(context.Background(), app.SaveDailyPlanRequest{Date: "2026-06-01"})
	require.Error(t, err)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "save-daily-plan", obs.events[0].Name)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "2026-06-01", obs.events[0].Fields["date"])
}
