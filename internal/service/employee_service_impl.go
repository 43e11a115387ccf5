package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type employeeService struct {
	employees repository.EmployeeRepo
	opts      options
}

func NewEmployeeService(employees repository.EmployeeRepo, opts ...Option) EmployeeService {
	return &employeeService{employees: employees, opts: resolveOptions(opts)}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.opts.observer, "create-employee", startedAt, fields, &err) }()

	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.opts.clock()
	}
	fields["employee_id"] = e.ID
	return s.employees.Create(ctx, e)
}

func (s *employeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.FindByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) MeetingHistory(ctx context.Context, id string) ([]domain.MeetingRef, error) {
	if _, err := s.employees.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.employees.ListMeetingHistory(ctx, id)
}

func (s *employeeService) ReceptionHistory(ctx context.Context, id string) ([]domain.ReceptionRef, error) {
	if _, err := s.employees.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.employees.ListReceptionHistory(ctx, id)
}
