package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// DashboardService derives organization-wide and per-employee
// aggregates from the registry and the ledger. Nothing here is stored;
// every call recomputes from current state as a snapshot read.
type DashboardService struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	now        func() time.Time
}

func NewDashboardService(employees repository.EmployeeRepository, attendance repository.AttendanceRepository) *DashboardService {
	return &DashboardService{
		employees:  employees,
		attendance: attendance,
		now:        time.Now,
	}
}

// Summary computes today's present/absent/not-marked partition, the
// attendance rate and lifetime per-employee present-day counts.
func (s *DashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	today := model.DateOf(s.now())

	total, err := s.employees.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	present, absent, err := s.attendance.CountByStatusOnDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's attendance: %w", err)
	}

	// More records than employees means stale rows survived a delete.
	// That is a store inconsistency, not a caller error: clamp and flag.
	notMarked := total - present - absent
	if notMarked < 0 {
		log.Ctx(ctx).Warn().
			Int("total_employees", total).
			Int("present", present).
			Int("absent", absent).
			Msg("More attendance records than employees for today; clamping not_marked to zero")
		notMarked = 0
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(present) / float64(total) * 100))
	}

	stats, err := s.attendance.PresentDaysByEmployee(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate employee stats: %w", err)
	}

	return &model.DashboardSummary{
		TotalEmployees: total,
		Today: model.TodayStats{
			Date:      today,
			Present:   present,
			Absent:    absent,
			NotMarked: notMarked,
		},
		AttendanceRate: rate,
		EmployeeStats:  stats,
	}, nil
}

// History gathers one employee's records, newest first, with lifetime
// totals. TotalDays == PresentDays + AbsentDays holds by construction
// since status is a closed two-value set.
func (s *DashboardService) History(ctx context.Context, employeeID string) (*model.EmployeeHistory, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	if emp == nil {
		return nil, fmt.Errorf("employee %s: %w", employeeID, ErrNotFound)
	}

	records, err := s.attendance.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	presentDays := 0
	for _, rec := range records {
		if rec.Status == model.StatusPresent {
			presentDays++
		}
	}

	return &model.EmployeeHistory{
		Employee: *emp,
		Stats: model.HistoryStats{
			TotalDays:   len(records),
			PresentDays: presentDays,
			AbsentDays:  len(records) - presentDays,
		},
		Records: records,
	}, nil
}
