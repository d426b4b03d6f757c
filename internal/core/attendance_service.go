package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// MarkAttendanceInput carries the raw mark-attendance command fields.
type MarkAttendanceInput struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// AttendanceService owns the ledger of one status record per
// (employee, date) pair.
type AttendanceService struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	now        func() time.Time
}

func NewAttendanceService(employees repository.EmployeeRepository, attendance repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		employees:  employees,
		attendance: attendance,
		now:        time.Now,
	}
}

// Mark validates the command and upserts the record for the
// (employee, date) pair: a second mark for the same pair overwrites the
// status and keeps the original identifier.
func (s *AttendanceService) Mark(ctx context.Context, in MarkAttendanceInput) (*model.AttendanceRecord, error) {
	fields := fieldErrors{}

	var emp *model.Employee
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		fields.add("employee_id", "Employee is required")
	} else {
		found, err := s.employees.Get(ctx, employeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch employee: %w", err)
		}
		if found == nil {
			fields.add("employee_id", "Employee does not exist")
		}
		emp = found
	}

	var date model.Date
	if strings.TrimSpace(in.Date) == "" {
		fields.add("date", "Date is required")
	} else {
		parsed, err := model.ParseDate(in.Date)
		switch {
		case err != nil:
			fields.add("date", "Invalid date format. Use YYYY-MM-DD")
		case parsed.After(model.DateOf(s.now())):
			fields.add("date", "Cannot mark attendance for future dates")
		default:
			date = parsed
		}
	}

	status, ok := model.ParseStatus(in.Status)
	if !ok {
		fields.add("status", "Status must be either Present or Absent")
	}

	if err := fields.toError(); err != nil {
		return nil, err
	}

	rec := model.AttendanceRecord{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		CreatedAt:  s.now().UTC(),
	}

	stored, err := s.attendance.Upsert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	stored.EmployeeName = emp.FullName
	stored.EmployeeCode = emp.EmployeeCode
	return stored, nil
}

// List returns attendance records, optionally restricted to one date.
// Without a filter, records come back newest date first with
// employee_code breaking ties.
func (s *AttendanceService) List(ctx context.Context, date *model.Date) ([]model.AttendanceRecord, error) {
	if date != nil {
		return s.attendance.ListByDate(ctx, *date)
	}
	return s.attendance.List(ctx)
}

// ListByEmployee returns one employee's records, newest date first. An
// employee with no records yields an empty slice, not an error.
func (s *AttendanceService) ListByEmployee(ctx context.Context, employeeID string) ([]model.AttendanceRecord, error) {
	return s.attendance.ListByEmployee(ctx, employeeID)
}
