package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

// receptionService records what happened to visitors on the day. Attendance
// is confirmed after the fact, so none of these writes are time-policy gated.
type receptionService struct {
	receptions repository.ReceptionRepo
	opts       options
}

func NewReceptionService(receptions repository.ReceptionRepo, opts ...Option) ReceptionService {
	return &receptionService{receptions: receptions, opts: resolveOptions(opts)}
}

func (s *receptionService) Get(ctx context.Context, date time.Time) (*domain.ReceptionDay, error) {
	day, err := loadReceptionDay(ctx, s.receptions, date)
	if err != nil {
		return nil, fmt.Errorf("loading reception day: %w", err)
	}
	return day, nil
}

func (s *receptionService) MarkPresent(ctx context.Context, date time.Time, entryID string, task *domain.TaskAssignment) (*domain.ReceptionEntry, error) {
	fields := map[string]any{"has_task": task != nil}
	return s.transition(ctx, "mark-present", date, entryID, fields, func(e *domain.ReceptionEntry, now time.Time) error {
		return e.MarkPresent(now, task)
	})
}

func (s *receptionService) MarkAbsent(ctx context.Context, date time.Time, entryID string) (*domain.ReceptionEntry, error) {
	return s.transition(ctx, "mark-absent", date, entryID, nil, func(e *domain.ReceptionEntry, now time.Time) error {
		return e.MarkAbsent(now)
	})
}

func (s *receptionService) CompleteTask(ctx context.Context, date time.Time, entryID string) (*domain.ReceptionEntry, error) {
	return s.transition(ctx, "complete-reception-task", date, entryID, nil, func(e *domain.ReceptionEntry, now time.Time) error {
		return e.CompleteTask(now)
	})
}

func (s *receptionService) MarkTaskOverdue(ctx context.Context, date time.Time, entryID string) (*domain.ReceptionEntry, error) {
	return s.transition(ctx, "mark-reception-task-overdue", date, entryID, nil, func(e *domain.ReceptionEntry, now time.Time) error {
		return e.MarkTaskOverdue(now)
	})
}

// transition loads the day, applies fn to the entry addressed by ref (entry or
// employee ID) and saves the day.
func (s *receptionService) transition(
	ctx context.Context,
	name string,
	date time.Time,
	ref string,
	fields map[string]any,
	fn func(e *domain.ReceptionEntry, now time.Time) error,
) (entry *domain.ReceptionEntry, err error) {
	startedAt := time.Now()
	if fields == nil {
		fields = map[string]any{}
	}
	fields["date"] = domain.FormatDate(date)
	fields["entry"] = ref
	defer func() { observe(ctx, s.opts.observer, name, startedAt, fields, &err) }()

	day, err := s.receptions.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading reception day: %w", err)
	}
	e := findReceptionEntry(day, ref)
	if e == nil {
		return nil, fmt.Errorf("reception entry %s: %w", ref, repository.ErrNotFound)
	}

	now := s.opts.clock()
	if err := fn(e, now); err != nil {
		return nil, err
	}
	if err := s.receptions.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("saving reception day: %w", err)
	}
	out := *e
	return &out, nil
}
