package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/timepolicy"
)

type scheduleService struct {
	schedules repository.ScheduleRepo
	opts      options
}

func NewScheduleService(schedules repository.ScheduleRepo, opts ...Option) ScheduleService {
	return &scheduleService{schedules: schedules, opts: resolveOptions(opts)}
}

func (s *scheduleService) GetSchedule(ctx context.Context, date time.Time) (*domain.Schedule, error) {
	sched, err := loadSchedule(ctx, s.schedules, date, s.opts.clock())
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	return sched, nil
}

func (s *scheduleService) AddTask(ctx context.Context, date time.Time, in app.TaskInput) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date)}
	defer func() { observe(ctx, s.opts.observer, "add-task", startedAt, fields, &err) }()

	in.ID = ""
	task, err = s.write(ctx, date, in)
	if task != nil {
		fields["task_id"] = task.ID
	}
	return task, err
}

func (s *scheduleService) UpdateTask(ctx context.Context, date time.Time, in app.TaskInput) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date), "task_id": in.ID}
	defer func() { observe(ctx, s.opts.observer, "update-task", startedAt, fields, &err) }()

	if in.ID == "" {
		return nil, fmt.Errorf("task id is required")
	}
	return s.write(ctx, date, in)
}

func (s *scheduleService) write(ctx context.Context, date time.Time, in app.TaskInput) (*domain.Task, error) {
	now := s.opts.clock()
	sched, err := loadSchedule(ctx, s.schedules, date, now)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	if in.ID != "" && sched.FindTask(in.ID) == nil {
		return nil, fmt.Errorf("task %s: %w", in.ID, repository.ErrNotFound)
	}

	start := domain.CoalesceStr(in.StartTime, existingStart(sched, in.ID))
	if err := checkPolicy(now, date, start); err != nil {
		return nil, err
	}

	task, _, err := applyTaskInput(sched, in, now)
	if err != nil {
		return nil, err
	}
	sched.UpdatedAt = now
	if err := s.schedules.Save(ctx, sched); err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}
	return task, nil
}

func (s *scheduleService) SetTaskStatus(ctx context.Context, date time.Time, id string, status domain.TaskStatus) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date), "task_id": id, "status": string(status)}
	defer func() { observe(ctx, s.opts.observer, "set-task-status", startedAt, fields, &err) }()

	now := s.opts.clock()
	sched, err := loadSchedule(ctx, s.schedules, date, now)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	task = sched.FindTask(id)
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
	}
	if err := task.Transition(status, now); err != nil {
		return nil, err
	}
	sched.UpdatedAt = now
	if err := s.schedules.Save(ctx, sched); err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}
	out := *task
	return &out, nil
}

func (s *scheduleService) DeleteTask(ctx context.Context, date time.Time, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": domain.FormatDate(date), "task_id": id}
	defer func() { observe(ctx, s.opts.observer, "delete-task", startedAt, fields, &err) }()

	now := s.opts.clock()
	if err := timepolicy.Check(now, date, nil); err != nil {
		return err
	}
	sched, err := loadSchedule(ctx, s.schedules, date, now)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	if !sched.RemoveTask(id) {
		return fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
	}
	sched.UpdatedAt = now
	if err := s.schedules.Save(ctx, sched); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	return nil
}

func existingStart(sched *domain.Schedule, id string) string {
	if id == "" {
		return ""
	}
	if t := sched.FindTask(id); t != nil {
		return t.StartTime
	}
	return ""
}

// checkPolicy gates a write of an item starting at start ("" for untimed).
func checkPolicy(now, date time.Time, start string) error {
	earliest, err := timepolicy.EarliestOf(start)
	if err != nil {
		return err
	}
	return timepolicy.Check(now, date, earliest)
}

// applyTaskInput creates or updates a task in sched from in. An input whose
// ID matches a stored task updates it, keeping any field left empty; status
// changes go through the task state machine. Otherwise a new pending task
// with normal priority is appended. On error sched is unchanged.
func applyTaskInput(sched *domain.Schedule, in app.TaskInput, now time.Time) (*domain.Task, bool, error) {
	var task domain.Task
	existing := sched.FindTask(in.ID)
	if in.ID != "" && existing != nil {
		task = *existing
		task.Title = domain.CoalesceStr(strings.TrimSpace(in.Title), task.Title)
		task.Description = domain.CoalesceStr(in.Description, task.Description)
		task.StartTime = domain.CoalesceStr(in.StartTime, task.StartTime)
		task.EndTime = domain.CoalesceStr(in.EndTime, task.EndTime)
		if in.Priority != "" {
			task.Priority = in.Priority
		}
		if in.Status != "" {
			if err := task.Transition(in.Status, now); err != nil {
				return nil, true, err
			}
		}
	} else {
		task = domain.Task{
			ID:          domain.CoalesceStr(in.ID, newID()),
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Priority:    in.Priority,
			Status:      in.Status,
			CreatedAt:   now,
		}
		if task.Priority == "" {
			task.Priority = domain.PriorityNormal
		}
		if task.Status == "" {
			task.Status = domain.TaskPending
		}
	}
	task.UpdatedAt = now

	if err := task.Validate(); err != nil {
		return nil, existing != nil, err
	}
	updated := sched.UpsertTask(task)
	return sched.FindTask(task.ID), updated, nil
}
