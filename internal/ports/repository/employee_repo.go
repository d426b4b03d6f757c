package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hrms.service/internal/core/model"
)

const pgUniqueViolation = "23505"

// EmployeeRepo is the concrete employee store for PostgreSQL.
type EmployeeRepo struct {
	DB *sql.DB
}

// NewEmployeeRepository create new instance
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &EmployeeRepo{DB: db}
}

// Create inserts a new employee row. Unique-index violations on
// employee_code or email are translated into typed errors.
func (r *EmployeeRepo) Create(ctx context.Context, emp model.Employee) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_code", emp.EmployeeCode))

	query := `INSERT INTO employees (id, employee_code, full_name, email, department, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctx, query, emp.ID, emp.EmployeeCode, emp.FullName, emp.Email, emp.Department, emp.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "employee_code") {
				return ErrDuplicateEmployeeCode
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ErrDuplicateEmail
			}
		}
		return err
	}
	return nil
}

// List returns all employees in creation order.
func (r *EmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	query := `SELECT id, employee_code, full_name, email, department, created_at
              FROM employees
              ORDER BY created_at ASC, employee_code ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var emp model.Employee
		if err := rows.Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department, &emp.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Get fetches one employee by id, (nil, nil) when absent.
func (r *EmployeeRepo) Get(ctx context.Context, id string) (*model.Employee, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", id))

	query := `SELECT id, employee_code, full_name, email, department, created_at
              FROM employees WHERE id = $1`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByCode fetches one employee by its external code, (nil, nil) when absent.
func (r *EmployeeRepo) GetByCode(ctx context.Context, code string) (*model.Employee, error) {
	query := `SELECT id, employee_code, full_name, email, department, created_at
              FROM employees WHERE employee_code = $1`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, code))
}

// Count returns the number of registered employees.
func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}

// DeleteWithAttendance removes the employee and its attendance records
// as one transaction. A partial cascade never commits.
func (r *EmployeeRepo) DeleteWithAttendance(ctx context.Context, id string) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", id))

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE employee_id = $1`, id); err != nil {
		return fmt.Errorf("delete attendance for employee %s: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *EmployeeRepo) scanOne(row *sql.Row) (*model.Employee, error) {
	emp := &model.Employee{}
	err := row.Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department, &emp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}
