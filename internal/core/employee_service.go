package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/messaging"
	"hrms.service/internal/ports/repository"
)

var (
	employeeCodePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// RegisterEmployeeInput carries the raw registration command fields.
type RegisterEmployeeInput struct {
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
}

// EmployeeService owns employee identity: registration with full field
// validation, listing, lookup and cascade deletion.
type EmployeeService struct {
	repo     repository.EmployeeRepository
	producer messaging.Producer
	now      func() time.Time
}

// NewEmployeeService creates the registry service, wiring up the
// employee store and the event producer for the welcome-email pipeline.
func NewEmployeeService(repo repository.EmployeeRepository, p messaging.Producer) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		producer: p,
		now:      time.Now,
	}
}

// Register validates all fields together, checks employee_code
// uniqueness and persists the new employee. On success a registration
// event is published for the welcome email; publish failures are logged
// and do not fail the registration.
func (s *EmployeeService) Register(ctx context.Context, in RegisterEmployeeInput) (*model.Employee, error) {
	fields := fieldErrors{}

	code := strings.TrimSpace(in.EmployeeCode)
	if code == "" {
		fields.add("employee_code", "Employee code is required")
	} else if !employeeCodePattern.MatchString(code) {
		fields.add("employee_code", "Employee code must be alphanumeric")
	}

	name := strings.TrimSpace(in.FullName)
	if len(name) < 2 {
		fields.add("full_name", "Full name must be at least 2 characters")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailPattern.MatchString(email) {
		fields.add("email", "Enter a valid email address")
	}

	dept, ok := model.ParseDepartment(strings.TrimSpace(in.Department))
	if !ok {
		fields.add("department", "Department must be one of the known departments")
	}

	// Uniqueness is only worth reporting once the code itself is valid.
	if _, reserved := fields["employee_code"]; !reserved {
		existing, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check employee code: %w", err)
		}
		if existing != nil {
			fields.add("employee_code", "This employee code already exists")
		}
	}

	if err := fields.toError(); err != nil {
		return nil, err
	}

	emp := model.Employee{
		ID:           uuid.NewString(),
		EmployeeCode: code,
		FullName:     name,
		Email:        email,
		Department:   dept,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		// The store's unique indexes backstop the pre-check under
		// concurrent registrations.
		switch {
		case errors.Is(err, repository.ErrDuplicateEmployeeCode):
			return nil, (fieldErrors{"employee_code": "This employee code already exists"}).toError()
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, (fieldErrors{"email": "This email is already registered"}).toError()
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	event := messaging.EmployeeRegisteredEvent{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Email:        emp.Email,
		Department:   string(emp.Department),
		OccurredAt:   s.now(),
	}
	if err := s.producer.PublishEmployeeRegistered(ctx, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("employee_id", emp.ID).Msg("Failed to publish registration event")
	}

	return &emp, nil
}

// List returns every employee in creation order.
func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.repo.List(ctx)
}

// Get returns one employee or ErrNotFound.
func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	emp, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	if emp == nil {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	return emp, nil
}

// Delete removes the employee and cascades over its attendance records
// in one atomic operation.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	emp, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch employee: %w", err)
	}
	if emp == nil {
		return fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}

	if err := s.repo.DeleteWithAttendance(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	log.Ctx(ctx).Info().Str("employee_id", id).Str("employee_code", emp.EmployeeCode).Msg("Employee deleted with attendance cascade")
	return nil
}
