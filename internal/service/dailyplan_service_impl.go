package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/notify"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/timepolicy"
	"golang.org/x/sync/errgroup"
)

const (
	opUpsert = "upsert"
	opDelete = "delete"
)

// dailyPlanService merges the three per-kind stores into one timeline and
// fans batch writes back out to them.
//
// Writes are transactional per store only: a batch touching tasks, meetings
// and receptions that fails midway leaves the stores it already reached
// updated. Two concurrent saves of the same day can also race on the
// reception aggregate; the (date, employee) unique index is the only guard.
type dailyPlanService struct {
	schedules  repository.ScheduleRepo
	meetings   repository.MeetingRepo
	receptions repository.ReceptionRepo
	employees  repository.EmployeeRepo
	notifier   *notify.Sender
	opts       options
}

func NewDailyPlanService(
	schedules repository.ScheduleRepo,
	meetings repository.MeetingRepo,
	receptions repository.ReceptionRepo,
	employees repository.EmployeeRepo,
	notifier *notify.Sender,
	opts ...Option,
) DailyPlanService {
	o := resolveOptions(opts)
	if notifier == nil {
		notifier = notify.NewSender(nil, o.logger)
	}
	return &dailyPlanService{
		schedules:  schedules,
		meetings:   meetings,
		receptions: receptions,
		employees:  employees,
		notifier:   notifier,
		opts:       o,
	}
}

func (s *dailyPlanService) GetDailyPlan(ctx context.Context, date time.Time) (plan *app.DailyPlan, err error) {
	startedAt := time.Now()
	day := domain.DayStart(date)
	fields := map[string]any{"date": domain.FormatDate(day)}
	defer func() { observe(ctx, s.opts.observer, "get-daily-plan", startedAt, fields, &err) }()

	var (
		sched    *domain.Schedule
		meetings []*domain.Meeting
		rday     *domain.ReceptionDay
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sched, err = s.schedules.FindByDate(gctx, day)
		return fetchError(domain.KindTask, err)
	})
	g.Go(func() error {
		var err error
		meetings, err = s.meetings.FindByDateRange(gctx, day, day)
		return fetchError(domain.KindMeeting, err)
	})
	g.Go(func() error {
		var err error
		rday, err = s.receptions.FindByDate(gctx, day)
		return fetchError(domain.KindReception, err)
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	now := s.opts.clock()
	plan = &app.DailyPlan{Date: day}
	if sched != nil {
		for _, t := range sched.Tasks {
			plan.Items = append(plan.Items, domain.TaskPlanItem(t))
		}
		plan.Summary.TotalTasks = len(sched.Tasks)
	}
	for _, m := range meetings {
		plan.Items = append(plan.Items, domain.MeetingPlanItem(*m))
	}
	plan.Summary.TotalMeetings = len(meetings)
	if rday != nil {
		for _, e := range rday.Entries {
			plan.Items = append(plan.Items, domain.ReceptionPlanItem(e, now))
		}
		plan.Summary.TotalReceptions = len(rday.Entries)
	}
	plan.Summary.TotalItems = plan.Summary.TotalTasks + plan.Summary.TotalMeetings + plan.Summary.TotalReceptions

	domain.SortPlanItems(plan.Items)
	fields["items"] = plan.Summary.TotalItems
	return plan, nil
}

// fetchError treats a missing aggregate as an empty day.
func fetchError(kind domain.PlanItemKind, err error) error {
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return &app.StoreFetchError{Kind: kind, Err: err}
}

// SaveDailyPlan validates the date and time policy for the whole batch before
// touching any store, then applies deletions followed by upserts. Each kind
// is written as one unit (deletes then upserts) before the next kind; the
// kinds share no state, so this matches running every delete first.
// Item-level failures are collected into the result rather than returned.
func (s *dailyPlanService) SaveDailyPlan(ctx context.Context, req app.SaveDailyPlanRequest) (result *app.SaveResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"date":    req.Date,
		"upserts": len(req.Upserts),
		"deletes": len(req.Deletes),
	}
	defer func() {
		if result != nil {
			fields["failed_items"] = len(result.Errors)
		}
		observe(ctx, s.opts.observer, "save-daily-plan", startedAt, fields, &err)
	}()

	date, err := domain.ParseDate(req.Date, s.opts.loc)
	if err != nil {
		return nil, err
	}
	now := s.opts.clock()
	starts, err := s.batchStartTimes(ctx, date, now, req.Upserts)
	if err != nil {
		return nil, err
	}
	if err = timepolicy.Check(now, date, earliestStart(starts)); err != nil {
		return nil, err
	}

	b := &batch{svc: s, date: date, now: now, result: &app.SaveResult{Date: date}}
	b.split(req)

	b.saveTasks(ctx)
	b.saveMeetings(ctx)
	b.saveReceptions(ctx)
	return b.result, nil
}

// batchStartTimes returns the slot each upsert will occupy on date. An
// update that leaves its time empty keeps the stored item's time.
func (s *dailyPlanService) batchStartTimes(ctx context.Context, date, now time.Time, upserts []app.PlanItemInput) ([]string, error) {
	var (
		sched *domain.Schedule
		rday  *domain.ReceptionDay
		err   error
	)
	starts := make([]string, 0, len(upserts))
	for _, in := range upserts {
		start := in.StartTime()
		switch {
		case start != "":
		case in.Task != nil && in.Task.ID != "":
			if sched == nil {
				if sched, err = loadSchedule(ctx, s.schedules, date, now); err != nil {
					return nil, fetchError(domain.KindTask, err)
				}
			}
			start = existingStart(sched, in.Task.ID)
		case in.Meeting != nil && in.Meeting.ID != "":
			m, err := s.meetings.FindByID(ctx, in.Meeting.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, fetchError(domain.KindMeeting, err)
			}
			if m != nil {
				start = m.Time
			}
		case in.Reception != nil && in.Reception.EmployeeID != "":
			if rday == nil {
				if rday, err = loadReceptionDay(ctx, s.receptions, date); err != nil {
					return nil, fetchError(domain.KindReception, err)
				}
			}
			if e := rday.FindByEmployee(in.Reception.EmployeeID); e != nil {
				start = e.PlanTime()
			}
		}
		starts = append(starts, start)
	}
	return starts, nil
}

// earliestStart returns the earliest parseable time in starts. Malformed
// times are left for per-item validation to reject.
func earliestStart(starts []string) *domain.ClockTime {
	var earliest *domain.ClockTime
	for _, start := range starts {
		c, err := domain.ParseClock(start)
		if err != nil {
			continue
		}
		if earliest == nil || c < *earliest {
			earliest = &c
		}
	}
	return earliest
}

// batch is the working state of one SaveDailyPlan call.
type batch struct {
	svc    *dailyPlanService
	date   time.Time
	now    time.Time
	result *app.SaveResult

	taskUpserts      []app.TaskInput
	meetingUpserts   []app.MeetingInput
	receptionUpserts []app.ReceptionInput
	deletes          map[domain.PlanItemKind][]string
}

func (b *batch) split(req app.SaveDailyPlanRequest) {
	b.deletes = make(map[domain.PlanItemKind][]string)
	for _, ref := range req.Deletes {
		if !ref.Kind.Valid() {
			b.fail(ref.Kind, ref.ID, opDelete, fmt.Errorf("unknown plan item kind %q", ref.Kind))
			continue
		}
		b.deletes[ref.Kind] = append(b.deletes[ref.Kind], ref.ID)
	}
	for _, in := range req.Upserts {
		switch {
		case in.Kind == domain.KindTask && in.Task != nil:
			b.taskUpserts = append(b.taskUpserts, *in.Task)
		case in.Kind == domain.KindMeeting && in.Meeting != nil:
			b.meetingUpserts = append(b.meetingUpserts, *in.Meeting)
		case in.Kind == domain.KindReception && in.Reception != nil:
			b.receptionUpserts = append(b.receptionUpserts, *in.Reception)
		default:
			b.fail(in.Kind, in.ID(), opUpsert, fmt.Errorf("item has no %q payload", in.Kind))
		}
	}
}

func (b *batch) fail(kind domain.PlanItemKind, id, op string, err error) {
	b.result.Errors = append(b.result.Errors, app.ItemPersistError{Kind: kind, ID: id, Op: op, Err: err})
}

type pendingOp struct {
	id string
	op string
}

// failAll records err for every op that was applied in memory but whose
// aggregate could not be saved.
func (b *batch) failAll(kind domain.PlanItemKind, ops []pendingOp, err error) {
	for _, p := range ops {
		b.fail(kind, p.id, p.op, err)
	}
}

// saveTasks applies task deletions then upserts to the day's schedule and
// saves it once.
func (b *batch) saveTasks(ctx context.Context) {
	deletes := b.deletes[domain.KindTask]
	if len(deletes) == 0 && len(b.taskUpserts) == 0 {
		return
	}

	sched, err := loadSchedule(ctx, b.svc.schedules, b.date, b.now)
	if err != nil {
		err = fmt.Errorf("loading schedule: %w", err)
		for _, id := range deletes {
			b.fail(domain.KindTask, id, opDelete, err)
		}
		for _, in := range b.taskUpserts {
			b.fail(domain.KindTask, in.ID, opUpsert, err)
		}
		return
	}

	var applied []pendingOp
	for _, id := range deletes {
		if !sched.RemoveTask(id) {
			b.fail(domain.KindTask, id, opDelete, fmt.Errorf("task %s: %w", id, repository.ErrNotFound))
			continue
		}
		applied = append(applied, pendingOp{id: id, op: opDelete})
	}
	for _, in := range b.taskUpserts {
		task, _, err := applyTaskInput(sched, in, b.now)
		if err != nil {
			b.fail(domain.KindTask, in.ID, opUpsert, err)
			continue
		}
		applied = append(applied, pendingOp{id: task.ID, op: opUpsert})
	}
	if len(applied) == 0 {
		return
	}

	sched.UpdatedAt = b.now
	if err := b.svc.schedules.Save(ctx, sched); err != nil {
		b.failAll(domain.KindTask, applied, fmt.Errorf("saving schedule: %w", err))
		return
	}
	b.count(applied, &b.result.TasksSaved)
}

func (b *batch) count(applied []pendingOp, saved *int) {
	for _, p := range applied {
		if p.op == opDelete {
			b.result.Deleted++
		} else {
			*saved++
		}
	}
}

// saveMeetings deletes and upserts meetings one by one; each meeting is its
// own record.
func (b *batch) saveMeetings(ctx context.Context) {
	for _, id := range b.deletes[domain.KindMeeting] {
		if err := b.deleteMeeting(ctx, id); err != nil {
			b.fail(domain.KindMeeting, id, opDelete, err)
			continue
		}
		b.result.Deleted++
	}
	for _, in := range b.meetingUpserts {
		m, updated, err := b.upsertMeeting(ctx, in)
		if err != nil {
			b.fail(domain.KindMeeting, in.ID, opUpsert, err)
			continue
		}
		b.result.MeetingsSaved++
		b.svc.afterMeetingSaved(ctx, m, updated, b.now)
	}
}

func (b *batch) deleteMeeting(ctx context.Context, id string) error {
	m, err := b.svc.meetings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.SameDay(m.Date, b.date) {
		return fmt.Errorf("meeting %s is on %s, not %s", id, domain.FormatDate(m.Date), domain.FormatDate(b.date))
	}
	if err := b.svc.meetings.DeleteByID(ctx, id); err != nil {
		return err
	}
	b.svc.dropMeetingHistory(ctx, id)
	return nil
}

func (b *batch) upsertMeeting(ctx context.Context, in app.MeetingInput) (*domain.Meeting, bool, error) {
	var m *domain.Meeting
	if in.ID != "" {
		existing, err := b.svc.meetings.FindByID(ctx, in.ID)
		switch {
		case err == nil:
			m = existing
		case !errors.Is(err, repository.ErrNotFound):
			return nil, false, err
		}
	}
	updated := m != nil
	var before []string
	if updated {
		// The day the meeting leaves must still be open for changes.
		if err := checkPolicy(b.now, m.Date, m.Time); err != nil {
			return nil, true, err
		}
		before = m.Participants
	} else {
		m = &domain.Meeting{ID: domain.CoalesceStr(in.ID, newID()), CreatedAt: b.now}
	}
	applyMeetingInput(m, in, b.date, b.now)
	if err := m.Validate(); err != nil {
		return nil, updated, err
	}
	if err := b.svc.meetings.Save(ctx, m); err != nil {
		return nil, updated, fmt.Errorf("saving meeting: %w", err)
	}
	dropParticipantHistory(ctx, b.svc.employees, b.svc.opts, m.ID, domain.DroppedParticipants(before, m.Participants))
	return m, updated, nil
}

// applyMeetingInput merges in onto m and places it on date. A nil
// participant list keeps the current participants.
func applyMeetingInput(m *domain.Meeting, in app.MeetingInput, date, now time.Time) {
	m.Name = domain.CoalesceStr(in.Name, m.Name)
	m.Description = domain.CoalesceStr(in.Description, m.Description)
	m.Time = domain.CoalesceStr(in.Time, m.Time)
	m.Location = domain.CoalesceStr(in.Location, m.Location)
	m.Date = domain.DayStart(date)
	if in.Participants != nil {
		m.SetParticipants(in.Participants)
	}
	m.UpdatedAt = now
}

// afterMeetingSaved records the meeting in each participant's history and
// notifies them. Both are best-effort.
func (s *dailyPlanService) afterMeetingSaved(ctx context.Context, m *domain.Meeting, updated bool, now time.Time) {
	meetingFanout(ctx, s.employees, s.notifier, s.opts, m, updated, now)
}

func (s *dailyPlanService) dropMeetingHistory(ctx context.Context, meetingID string) {
	if err := s.employees.RemoveMeetingHistory(ctx, meetingID); err != nil {
		s.opts.logger.WarnContext(ctx, "meeting_history_failed", "meeting_id", meetingID, "error", err)
	}
}

// dropParticipantHistory removes the meeting from the history of employees
// no longer taking part. Best-effort.
func dropParticipantHistory(ctx context.Context, employees repository.EmployeeRepo, o options, meetingID string, dropped []string) {
	for _, employeeID := range dropped {
		if err := employees.RemoveParticipantHistory(ctx, meetingID, employeeID); err != nil {
			o.logger.WarnContext(ctx, "meeting_history_failed",
				"meeting_id", meetingID, "employee_id", employeeID, "error", err)
		}
	}
}

func meetingFanout(ctx context.Context, employees repository.EmployeeRepo, notifier *notify.Sender, o options, m *domain.Meeting, updated bool, now time.Time) {
	ref := domain.MeetingRef{MeetingID: m.ID, Name: m.Name, Date: m.Date, Time: m.Time, AddedAt: now}
	notice := notify.MeetingNotice{
		MeetingID: m.ID,
		Name:      m.Name,
		Date:      m.Date,
		Time:      m.Time,
		Location:  m.Location,
		IsUpdate:  updated,
	}
	for _, employeeID := range m.Participants {
		if err := employees.AppendMeetingHistory(ctx, employeeID, ref); err != nil {
			o.logger.WarnContext(ctx, "meeting_history_failed",
				"meeting_id", m.ID, "employee_id", employeeID, "error", err)
		}
		notifier.Meeting(ctx, employeeID, notice)
	}
}

type savedReception struct {
	entry   domain.ReceptionEntry
	updated bool
}

// saveReceptions applies reception deletions then upserts to the day's
// reception aggregate and saves it once. Upserts are keyed by employee, so a
// second item for the same employee updates the entry the first created.
func (b *batch) saveReceptions(ctx context.Context) {
	deletes := b.deletes[domain.KindReception]
	if len(deletes) == 0 && len(b.receptionUpserts) == 0 {
		return
	}

	rday, err := loadReceptionDay(ctx, b.svc.receptions, b.date)
	if err != nil {
		err = fmt.Errorf("loading reception day: %w", err)
		for _, id := range deletes {
			b.fail(domain.KindReception, id, opDelete, err)
		}
		for _, in := range b.receptionUpserts {
			b.fail(domain.KindReception, in.EmployeeID, opUpsert, err)
		}
		return
	}

	var applied []pendingOp
	for _, ref := range deletes {
		e := findReceptionEntry(rday, ref)
		if e == nil {
			b.fail(domain.KindReception, ref, opDelete, fmt.Errorf("reception entry %s: %w", ref, repository.ErrNotFound))
			continue
		}
		rday.Remove(e.ID)
		applied = append(applied, pendingOp{id: ref, op: opDelete})
	}

	// Entry ID -> whether the entry existed before this batch, in first-touch order.
	existedBefore := make(map[string]bool)
	var touched []string
	for _, in := range b.receptionUpserts {
		entry := b.svc.receptionEntryFromInput(ctx, in)
		e, updated, err := rday.Upsert(entry, b.now)
		if err != nil {
			b.fail(domain.KindReception, in.EmployeeID, opUpsert, err)
			continue
		}
		applied = append(applied, pendingOp{id: in.EmployeeID, op: opUpsert})
		if _, seen := existedBefore[e.ID]; !seen {
			existedBefore[e.ID] = updated
			touched = append(touched, e.ID)
		}
	}
	if len(applied) == 0 {
		return
	}

	if err := b.svc.receptions.Save(ctx, rday); err != nil {
		b.failAll(domain.KindReception, applied, fmt.Errorf("saving reception day: %w", err))
		return
	}
	b.count(applied, &b.result.ReceptionsSaved)

	// One history line and one notice per entry, carrying its final state.
	for _, id := range touched {
		if e := rday.FindByID(id); e != nil {
			b.svc.afterReceptionSaved(ctx, b.date, savedReception{entry: *e, updated: existedBefore[id]}, b.now)
		}
	}
}

// receptionEntryFromInput builds the upsert candidate, filling contact fields
// the caller left empty from the employee directory.
func (s *dailyPlanService) receptionEntryFromInput(ctx context.Context, in app.ReceptionInput) domain.ReceptionEntry {
	entry := domain.ReceptionEntry{
		ID:            newID(),
		EmployeeID:    in.EmployeeID,
		Name:          in.Name,
		Position:      in.Position,
		Department:    in.Department,
		Phone:         in.Phone,
		ScheduledTime: in.ScheduledTime,
		Status:        in.Status,
	}
	if in.EmployeeID == "" {
		return entry
	}
	emp, err := s.employees.FindByID(ctx, in.EmployeeID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.opts.logger.WarnContext(ctx, "employee_lookup_failed", "employee_id", in.EmployeeID, "error", err)
		}
		return entry
	}
	entry.Name = domain.CoalesceStr(entry.Name, emp.Name)
	entry.Position = domain.CoalesceStr(entry.Position, emp.Position)
	entry.Department = domain.CoalesceStr(entry.Department, emp.Department)
	entry.Phone = domain.CoalesceStr(entry.Phone, emp.Phone)
	return entry
}

func (s *dailyPlanService) afterReceptionSaved(ctx context.Context, date time.Time, r savedReception, now time.Time) {
	ref := domain.ReceptionRef{EntryID: r.entry.ID, Date: date, Time: r.entry.PlanTime(), AddedAt: now}
	if err := s.employees.AppendReceptionHistory(ctx, r.entry.EmployeeID, ref); err != nil {
		s.opts.logger.WarnContext(ctx, "reception_history_failed",
			"entry_id", r.entry.ID, "employee_id", r.entry.EmployeeID, "error", err)
	}
	s.notifier.Reception(ctx, r.entry.EmployeeID, notify.ReceptionNotice{
		Date:     date,
		Time:     r.entry.PlanTime(),
		IsUpdate: r.updated,
	})
}
