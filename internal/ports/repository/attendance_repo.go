package repository

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hrms.service/internal/core/model"
)

// Records are read back with a LEFT JOIN so a record whose employee has
// vanished still renders instead of breaking the listing.
const attendanceSelect = `SELECT a.id, a.employee_id, a.date, a.status, a.created_at,
              COALESCE(e.full_name, 'Unknown'), COALESCE(e.employee_code, 'Unknown')
              FROM attendance a
              LEFT JOIN employees e ON e.id = a.employee_id`

// AttendanceRepo is the concrete attendance store for PostgreSQL.
type AttendanceRepo struct {
	DB *sql.DB
}

// NewAttendanceRepository create new instance
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &AttendanceRepo{DB: db}
}

// Upsert inserts the record or overwrites the status of the existing
// row for the same (employee_id, date). The conflict target is the
// store's unique index, so concurrent marks for one pair serialize and
// the last write wins.
func (r *AttendanceRepo) Upsert(ctx context.Context, rec model.AttendanceRecord) (*model.AttendanceRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("app.employee_id", rec.EmployeeID),
		attribute.String("app.date", rec.Date.String()),
	)

	query := `INSERT INTO attendance (id, employee_id, date, status, created_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (employee_id, date) DO UPDATE SET status = EXCLUDED.status
              RETURNING id, created_at`

	stored := rec
	err := r.DB.QueryRowContext(ctx, query, rec.ID, rec.EmployeeID, rec.Date, rec.Status, rec.CreatedAt).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// List returns all records, newest date first, employee_code ascending
// within a date for stable display.
func (r *AttendanceRepo) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	query := attendanceSelect + ` ORDER BY a.date DESC, e.employee_code ASC`
	return r.query(ctx, query)
}

// ListByDate returns records for one calendar date.
func (r *AttendanceRepo) ListByDate(ctx context.Context, date model.Date) ([]model.AttendanceRecord, error) {
	query := attendanceSelect + ` WHERE a.date = $1 ORDER BY e.employee_code ASC`
	return r.query(ctx, query, date)
}

// ListByEmployee returns one employee's records, newest date first.
func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.AttendanceRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	query := attendanceSelect + ` WHERE a.employee_id = $1 ORDER BY a.date DESC`
	return r.query(ctx, query, employeeID)
}

// CountByStatusOnDate partitions one date's records by status.
func (r *AttendanceRepo) CountByStatusOnDate(ctx context.Context, date model.Date) (int, int, error) {
	query := `SELECT status, COUNT(*) FROM attendance WHERE date = $1 GROUP BY status`

	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	var present, absent int
	for rows.Next() {
		var status model.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return 0, 0, err
		}
		switch status {
		case model.StatusPresent:
			present = count
		case model.StatusAbsent:
			absent = count
		}
	}
	return present, absent, rows.Err()
}

// PresentDaysByEmployee groups lifetime Present records per employee,
// most present days first.
func (r *AttendanceRepo) PresentDaysByEmployee(ctx context.Context) ([]model.EmployeeStat, error) {
	query := `SELECT a.employee_id, COALESCE(e.full_name, 'Unknown'), COALESCE(e.employee_code, 'Unknown'),
              COUNT(*) AS present_days
              FROM attendance a
              LEFT JOIN employees e ON e.id = a.employee_id
              WHERE a.status = $1
              GROUP BY a.employee_id, e.full_name, e.employee_code
              ORDER BY present_days DESC`

	rows, err := r.DB.QueryContext(ctx, query, model.StatusPresent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []model.EmployeeStat{}
	for rows.Next() {
		var s model.EmployeeStat
		if err := rows.Scan(&s.EmployeeID, &s.EmployeeName, &s.EmployeeCode, &s.PresentDays); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *AttendanceRepo) query(ctx context.Context, query string, args ...any) ([]model.AttendanceRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.CreatedAt, &rec.EmployeeName, &rec.EmployeeCode); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
