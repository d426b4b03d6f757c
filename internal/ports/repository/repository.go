package repository

import (
	"context"
	"errors"

	"hrms.service/internal/core/model"
)

// Duplicate-key errors surfaced by the store's unique indexes. The
// service layer maps these onto field-keyed validation errors.
var (
	ErrDuplicateEmployeeCode = errors.New("employee code already exists")
	ErrDuplicateEmail        = errors.New("email already registered")
)

// EmployeeRepository is the contract for employee storage.
// Lookups return (nil, nil) when the row does not exist.
type EmployeeRepository interface {
	Create(ctx context.Context, emp model.Employee) error
	List(ctx context.Context) ([]model.Employee, error)
	Get(ctx context.Context, id string) (*model.Employee, error)
	GetByCode(ctx context.Context, code string) (*model.Employee, error)
	Count(ctx context.Context) (int, error)
	// DeleteWithAttendance removes the employee and every attendance
	// record referencing it in a single transaction.
	DeleteWithAttendance(ctx context.Context, id string) error
}

// AttendanceRepository is the contract for attendance storage.
type AttendanceRepository interface {
	// Upsert inserts the record, or overwrites the status of the
	// existing row for the same (employee_id, date) pair. The stored
	// row is returned, so the identifier survives overwrites.
	Upsert(ctx context.Context, rec model.AttendanceRecord) (*model.AttendanceRecord, error)
	List(ctx context.Context) ([]model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date model.Date) ([]model.AttendanceRecord, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]model.AttendanceRecord, error)
	// CountByStatusOnDate partitions the given date's records by status.
	CountByStatusOnDate(ctx context.Context, date model.Date) (present, absent int, err error)
	// PresentDaysByEmployee groups all Present records by employee,
	// most present days first.
	PresentDaysByEmployee(ctx context.Context) ([]model.EmployeeStat, error)
}
