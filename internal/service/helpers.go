package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/google/uuid"
)

// loadSchedule returns the stored schedule for date, or an empty one stamped
// with now when the day has none yet.
func loadSchedule(ctx context.Context, repo repository.ScheduleRepo, date, now time.Time) (*domain.Schedule, error) {
	s, err := repo.FindByDate(ctx, date)
	if errors.Is(err, repository.ErrNotFound) {
		s = domain.NewSchedule(date)
		s.CreatedAt = now
		s.UpdatedAt = now
		return s, nil
	}
	return s, err
}

// loadReceptionDay returns the stored reception day for date, or an empty one.
func loadReceptionDay(ctx context.Context, repo repository.ReceptionRepo, date time.Time) (*domain.ReceptionDay, error) {
	d, err := repo.FindByDate(ctx, date)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewReceptionDay(date), nil
	}
	return d, err
}

// findReceptionEntry resolves ref as an entry ID first, then as an employee ID.
func findReceptionEntry(day *domain.ReceptionDay, ref string) *domain.ReceptionEntry {
	if e := day.FindByID(ref); e != nil {
		return e
	}
	return day.FindByEmployee(ref)
}

func newID() string {
	return uuid.New().String()
}
