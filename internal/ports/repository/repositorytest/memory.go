// Package repositorytest provides in-memory implementations of the
// repository contracts for tests. The two stores are linked so the
// employee cascade delete and the read-side employee enrichment behave
// like the SQL implementations.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// NewStores returns a linked pair of in-memory repositories.
func NewStores() (*EmployeeStore, *AttendanceStore) {
	emp := &EmployeeStore{}
	att := &AttendanceStore{employees: emp}
	emp.attendance = att
	return emp, att
}

// EmployeeStore is an in-memory repository.EmployeeRepository.
type EmployeeStore struct {
	mu         sync.Mutex
	employees  []model.Employee
	attendance *AttendanceStore
}

var _ repository.EmployeeRepository = (*EmployeeStore)(nil)

func (s *EmployeeStore) Create(_ context.Context, emp model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employees {
		if e.EmployeeCode == emp.EmployeeCode {
			return repository.ErrDuplicateEmployeeCode
		}
		if e.Email == emp.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.employees = append(s.employees, emp)
	return nil
}

func (s *EmployeeStore) List(_ context.Context) ([]model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Employee, len(s.employees))
	copy(out, s.employees)
	return out, nil
}

func (s *EmployeeStore) Get(_ context.Context, id string) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(func(e model.Employee) bool { return e.ID == id }), nil
}

func (s *EmployeeStore) GetByCode(_ context.Context, code string) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(func(e model.Employee) bool { return e.EmployeeCode == code }), nil
}

func (s *EmployeeStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.employees), nil
}

func (s *EmployeeStore) DeleteWithAttendance(_ context.Context, id string) error {
	s.mu.Lock()
	kept := s.employees[:0]
	for _, e := range s.employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.employees = kept
	s.mu.Unlock()

	s.attendance.deleteByEmployee(id)
	return nil
}

func (s *EmployeeStore) findLocked(match func(model.Employee) bool) *model.Employee {
	for _, e := range s.employees {
		if match(e) {
			found := e
			return &found
		}
	}
	return nil
}

// lookup takes the store lock; for use from the attendance side.
func (s *EmployeeStore) lookup(id string) *model.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(func(e model.Employee) bool { return e.ID == id })
}

// AttendanceStore is an in-memory repository.AttendanceRepository.
type AttendanceStore struct {
	mu        sync.Mutex
	records   []model.AttendanceRecord
	employees *EmployeeStore
}

var _ repository.AttendanceRepository = (*AttendanceStore)(nil)

// Seed injects a record directly, bypassing upsert semantics. Used to
// fabricate inconsistent states like stale rows for deleted employees.
func (s *AttendanceStore) Seed(rec model.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

func (s *AttendanceStore) Upsert(_ context.Context, rec model.AttendanceRecord) (*model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			s.records[i].Status = rec.Status
			stored := s.records[i]
			return &stored, nil
		}
	}
	s.records = append(s.records, rec)
	stored := rec
	return &stored, nil
}

func (s *AttendanceStore) List(_ context.Context) ([]model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.enrichLocked(s.records)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].EmployeeCode < out[j].EmployeeCode
	})
	return out, nil
}

func (s *AttendanceStore) ListByDate(_ context.Context, date model.Date) ([]model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []model.AttendanceRecord{}
	for _, rec := range s.records {
		if rec.Date.Equal(date) {
			matched = append(matched, rec)
		}
	}
	out := s.enrichLocked(matched)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (s *AttendanceStore) ListByEmployee(_ context.Context, employeeID string) ([]model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []model.AttendanceRecord{}
	for _, rec := range s.records {
		if rec.EmployeeID == employeeID {
			matched = append(matched, rec)
		}
	}
	out := s.enrichLocked(matched)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *AttendanceStore) CountByStatusOnDate(_ context.Context, date model.Date) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var present, absent int
	for _, rec := range s.records {
		if !rec.Date.Equal(date) {
			continue
		}
		switch rec.Status {
		case model.StatusPresent:
			present++
		case model.StatusAbsent:
			absent++
		}
	}
	return present, absent, nil
}

func (s *AttendanceStore) PresentDaysByEmployee(_ context.Context) ([]model.EmployeeStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	order := []string{}
	for _, rec := range s.records {
		if rec.Status != model.StatusPresent {
			continue
		}
		if _, seen := counts[rec.EmployeeID]; !seen {
			order = append(order, rec.EmployeeID)
		}
		counts[rec.EmployeeID]++
	}

	stats := []model.EmployeeStat{}
	for _, id := range order {
		stat := model.EmployeeStat{EmployeeID: id, PresentDays: counts[id], EmployeeName: "Unknown", EmployeeCode: "Unknown"}
		if emp := s.employees.lookup(id); emp != nil {
			stat.EmployeeName = emp.FullName
			stat.EmployeeCode = emp.EmployeeCode
		}
		stats = append(stats, stat)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].PresentDays > stats[j].PresentDays })
	return stats, nil
}

func (s *AttendanceStore) deleteByEmployee(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.EmployeeID != employeeID {
			kept = append(kept, rec)
		}
	}
	s.records = kept
}

func (s *AttendanceStore) enrichLocked(records []model.AttendanceRecord) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, len(records))
	for i, rec := range records {
		rec.EmployeeName = "Unknown"
		rec.EmployeeCode = "Unknown"
		if emp := s.employees.lookup(rec.EmployeeID); emp != nil {
			rec.EmployeeName = emp.FullName
			rec.EmployeeCode = emp.EmployeeCode
		}
		out[i] = rec
	}
	return out
}
