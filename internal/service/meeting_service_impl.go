package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/notify"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/timepolicy"
)

type meetingService struct {
	meetings  repository.MeetingRepo
	employees repository.EmployeeRepo
	notifier  *notify.Sender
	opts      options
}

func NewMeetingService(
	meetings repository.MeetingRepo,
	employees repository.EmployeeRepo,
	notifier *notify.Sender,
	opts ...Option,
) MeetingService {
	o := resolveOptions(opts)
	if notifier == nil {
		notifier = notify.NewSender(nil, o.logger)
	}
	return &meetingService{meetings: meetings, employees: employees, notifier: notifier, opts: o}
}

func (s *meetingService) Create(ctx context.Context, date time.Time, in app.MeetingInput) (m *domain.Meeting, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date)}
	defer func() { observe(ctx, s.opts.observer, "create-meeting", startedAt, fields, &err) }()

	now := s.opts.clock()
	if err := checkPolicy(now, date, in.Time); err != nil {
		return nil, err
	}

	m = &domain.Meeting{ID: newID(), CreatedAt: now}
	applyMeetingInput(m, in, date, now)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.meetings.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("saving meeting: %w", err)
	}
	fields["meeting_id"] = m.ID
	fields["participants"] = len(m.Participants)

	meetingFanout(ctx, s.employees, s.notifier, s.opts, m, false, now)
	return m, nil
}

// Update moves or edits an existing meeting. Both the day it leaves and the
// day it lands on must still be open for changes.
func (s *meetingService) Update(ctx context.Context, date time.Time, in app.MeetingInput) (m *domain.Meeting, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date), "meeting_id": in.ID}
	defer func() { observe(ctx, s.opts.observer, "update-meeting", startedAt, fields, &err) }()

	if in.ID == "" {
		return nil, fmt.Errorf("meeting id is required")
	}
	m, err = s.meetings.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	now := s.opts.clock()
	if err := checkPolicy(now, m.Date, m.Time); err != nil {
		return nil, err
	}
	if err := checkPolicy(now, date, domain.CoalesceStr(in.Time, m.Time)); err != nil {
		return nil, err
	}

	before := m.Participants
	applyMeetingInput(m, in, date, now)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.meetings.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("saving meeting: %w", err)
	}

	dropParticipantHistory(ctx, s.employees, s.opts, m.ID, domain.DroppedParticipants(before, m.Participants))
	meetingFanout(ctx, s.employees, s.notifier, s.opts, m, true, now)
	return m, nil
}

// Delete removes the meeting and then, best-effort, every participant's
// history line for it.
func (s *meetingService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"meeting_id": id}
	defer func() { observe(ctx, s.opts.observer, "delete-meeting", startedAt, fields, &err) }()

	m, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := timepolicy.Check(s.opts.clock(), m.Date, nil); err != nil {
		return err
	}
	if err := s.meetings.DeleteByID(ctx, id); err != nil {
		return err
	}
	if err := s.employees.RemoveMeetingHistory(ctx, id); err != nil {
		s.opts.logger.WarnContext(ctx, "meeting_history_failed", "meeting_id", id, "error", err)
	}
	return nil
}

func (s *meetingService) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	return s.meetings.FindByID(ctx, id)
}

func (s *meetingService) ListByDate(ctx context.Context, date time.Time) ([]*domain.Meeting, error) {
	day := domain.DayStart(date)
	meetings, err := s.meetings.FindByDateRange(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	return meetings, nil
}
