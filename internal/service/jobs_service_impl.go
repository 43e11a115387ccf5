package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/notify"
	"github.com/alexanderramin/dayplan/internal/repository"
)

// jobsService runs the periodic sweeps. It owns no transition logic: overdue
// marking goes through ReceptionService like an interactive call would.
type jobsService struct {
	receptions repository.ReceptionRepo
	reception  ReceptionService
	notifier   *notify.Sender
	opts       options
}

func NewJobsService(
	receptions repository.ReceptionRepo,
	reception ReceptionService,
	notifier *notify.Sender,
	opts ...Option,
) JobsService {
	o := resolveOptions(opts)
	if notifier == nil {
		notifier = notify.NewSender(nil, o.logger)
	}
	return &jobsService{receptions: receptions, reception: reception, notifier: notifier, opts: o}
}

// SweepOverdue persists the overdue status for every assignment on date whose
// derived status is already overdue. It returns how many entries changed.
func (s *jobsService) SweepOverdue(ctx context.Context, date time.Time) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date)}
	defer func() {
		fields["marked"] = n
		observe(ctx, s.opts.observer, "sweep-overdue", startedAt, fields, &err)
	}()

	day, err := loadReceptionDay(ctx, s.receptions, date)
	if err != nil {
		return 0, fmt.Errorf("loading reception day: %w", err)
	}

	now := s.opts.clock()
	var errs []error
	for _, e := range day.Entries {
		if e.Status != domain.ReceptionPresent || e.Task == nil {
			continue
		}
		if e.Task.Status != domain.AssignmentPending || e.Task.EffectiveStatus(now) != domain.AssignmentOverdue {
			continue
		}
		if _, err := s.reception.MarkTaskOverdue(ctx, date, e.ID); err != nil {
			errs = append(errs, fmt.Errorf("entry %s: %w", e.ID, err))
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// SendTaskReminders notifies every visitor on date whose pending assignment
// falls due within leadDays from now. It returns how many reminders were sent.
func (s *jobsService) SendTaskReminders(ctx context.Context, date time.Time, leadDays int) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date), "lead_days": leadDays}
	defer func() {
		fields["sent"] = n
		observe(ctx, s.opts.observer, "send-task-reminders", startedAt, fields, &err)
	}()

	if leadDays < 0 {
		return 0, fmt.Errorf("lead days must not be negative")
	}
	day, err := loadReceptionDay(ctx, s.receptions, date)
	if err != nil {
		return 0, fmt.Errorf("loading reception day: %w", err)
	}

	now := s.opts.clock()
	horizon := now.AddDate(0, 0, leadDays)
	for _, e := range day.Entries {
		if e.Task == nil || e.Task.EffectiveStatus(now) != domain.AssignmentPending {
			continue
		}
		due := e.Task.DueAt()
		if due.After(horizon) {
			continue
		}
		s.notifier.TaskReminder(ctx, e.EmployeeID, notify.TaskReminder{
			EntryID:     e.ID,
			Date:        day.Date,
			Description: e.Task.Description,
			DueAt:       due,
			Status:      e.Task.Status,
		})
		n++
	}
	return n, nil
}
