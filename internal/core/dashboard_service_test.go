package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository/repositorytest"
)

func newDashboardFixture(t *testing.T) (*DashboardService, *AttendanceService, *EmployeeService, *repositorytest.AttendanceStore) {
	t.Helper()
	employees, attendance := repositorytest.NewStores()
	registry := NewEmployeeService(employees, &capturingProducer{})
	marks := NewAttendanceService(employees, attendance)
	marks.now = func() time.Time { return fixedNow }
	svc := NewDashboardService(employees, attendance)
	svc.now = func() time.Time { return fixedNow }
	return svc, marks, registry, attendance
}

func TestSummaryNoEmployees(t *testing.T) {
	svc, _, _, _ := newDashboardFixture(t)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalEmployees)
	assert.Equal(t, 0, summary.AttendanceRate)
	assert.Equal(t, 0, summary.Today.NotMarked)
	assert.Empty(t, summary.EmployeeStats)
}

func TestSummaryPartitionsToday(t *testing.T) {
	svc, marks, registry, _ := newDashboardFixture(t)
	a := registerEmployee(t, registry, "E1")
	b := registerEmployee(t, registry, "E2")

	_, err := marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: a.ID, Date: "2024-01-10", Status: "Present"})
	require.NoError(t, err)
	_, err = marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: b.ID, Date: "2024-01-10", Status: "Absent"})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, "2024-01-10", summary.Today.Date.String())
	assert.Equal(t, 1, summary.Today.Present)
	assert.Equal(t, 1, summary.Today.Absent)
	assert.Equal(t, 0, summary.Today.NotMarked)
	assert.Equal(t, 50, summary.AttendanceRate)

	require.Len(t, summary.EmployeeStats, 1)
	assert.Equal(t, a.ID, summary.EmployeeStats[0].EmployeeID)
	assert.Equal(t, 1, summary.EmployeeStats[0].PresentDays)
}

func TestSummaryCountsNotMarked(t *testing.T) {
	svc, marks, registry, _ := newDashboardFixture(t)
	a := registerEmployee(t, registry, "E1")
	registerEmployee(t, registry, "E2")
	registerEmployee(t, registry, "E3")

	_, err := marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: a.ID, Date: "2024-01-10", Status: "Present"})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalEmployees)
	assert.Equal(t, 2, summary.Today.NotMarked)
	assert.Equal(t, 33, summary.AttendanceRate)
}

func TestSummaryIgnoresOtherDays(t *testing.T) {
	svc, marks, registry, _ := newDashboardFixture(t)
	a := registerEmployee(t, registry, "E1")

	_, err := marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: a.ID, Date: "2024-01-09", Status: "Present"})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Today.Present)
	assert.Equal(t, 1, summary.Today.NotMarked)
	// Lifetime stats still include the earlier day.
	require.Len(t, summary.EmployeeStats, 1)
	assert.Equal(t, 1, summary.EmployeeStats[0].PresentDays)
}

func TestSummaryClampsNotMarked(t *testing.T) {
	svc, marks, registry, attendance := newDashboardFixture(t)
	a := registerEmployee(t, registry, "E1")

	_, err := marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: a.ID, Date: "2024-01-10", Status: "Present"})
	require.NoError(t, err)

	// Stale rows from an employee deleted without its cascade: the count
	// for today exceeds the employee total.
	today, err := model.ParseDate("2024-01-10")
	require.NoError(t, err)
	attendance.Seed(model.AttendanceRecord{
		ID: "stale-1", EmployeeID: "ghost", Date: today, Status: model.StatusPresent,
	})
	attendance.Seed(model.AttendanceRecord{
		ID: "stale-2", EmployeeID: "ghost-2", Date: today, Status: model.StatusAbsent,
	})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalEmployees)
	assert.Equal(t, 2, summary.Today.Present)
	assert.Equal(t, 1, summary.Today.Absent)
	assert.Equal(t, 0, summary.Today.NotMarked, "never negative")
}

func TestSummaryStatsOrderedByPresentDays(t *testing.T) {
	svc, marks, registry, _ := newDashboardFixture(t)
	a := registerEmployee(t, registry, "E1")
	b := registerEmployee(t, registry, "E2")

	for _, day := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		_, err := marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: b.ID, Date: day, Status: "Present"})
		require.NoError(t, err)
	}
	_, err := marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: a.ID, Date: "2024-01-10", Status: "Present"})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.EmployeeStats, 2)
	assert.Equal(t, b.ID, summary.EmployeeStats[0].EmployeeID)
	assert.Equal(t, 3, summary.EmployeeStats[0].PresentDays)
	assert.Equal(t, a.ID, summary.EmployeeStats[1].EmployeeID)
}

func TestHistoryStatsInvariant(t *testing.T) {
	svc, marks, registry, _ := newDashboardFixture(t)
	emp := registerEmployee(t, registry, "E1")

	for day, status := range map[string]string{
		"2024-01-08": "Present",
		"2024-01-09": "Absent",
		"2024-01-10": "Present",
	} {
		_, err := marks.Mark(context.Background(), MarkAttendanceInput{EmployeeID: emp.ID, Date: day, Status: status})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), emp.ID)
	require.NoError(t, err)

	assert.Equal(t, emp.ID, history.Employee.ID)
	assert.Equal(t, 3, history.Stats.TotalDays)
	assert.Equal(t, 2, history.Stats.PresentDays)
	assert.Equal(t, 1, history.Stats.AbsentDays)
	assert.Equal(t, history.Stats.TotalDays, history.Stats.PresentDays+history.Stats.AbsentDays)

	// Records newest date first.
	require.Len(t, history.Records, 3)
	assert.Equal(t, "2024-01-10", history.Records[0].Date.String())
	assert.Equal(t, "2024-01-08", history.Records[2].Date.String())
}

func TestHistoryEmptyForNewEmployee(t *testing.T) {
	svc, _, registry, _ := newDashboardFixture(t)
	emp := registerEmployee(t, registry, "E1")

	history, err := svc.History(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, history.Stats.TotalDays)
	assert.Empty(t, history.Records)
}

func TestHistoryNotFound(t *testing.T) {
	svc, _, _, _ := newDashboardFixture(t)

	_, err := svc.History(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
