package model

import (
	"time"
)

// Status is the attendance state recorded for an employee on a given day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// ParseStatus validates a raw status value against the closed set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPresent, StatusAbsent:
		return Status(s), true
	}
	return "", false
}

// Department is the closed set of organizational units an employee belongs to.
type Department string

const (
	DepartmentEngineering    Department = "Engineering"
	DepartmentHumanResources Department = "Human Resources"
	DepartmentMarketing      Department = "Marketing"
	DepartmentSales          Department = "Sales"
	DepartmentFinance        Department = "Finance"
	DepartmentOperations     Department = "Operations"
	DepartmentDesign         Department = "Design"
	DepartmentProduct        Department = "Product"
)

// Departments lists every valid department, in display order.
func Departments() []Department {
	return []Department{
		DepartmentEngineering,
		DepartmentHumanResources,
		DepartmentMarketing,
		DepartmentSales,
		DepartmentFinance,
		DepartmentOperations,
		DepartmentDesign,
		DepartmentProduct,
	}
}

// ParseDepartment validates a raw department value against the closed set.
func ParseDepartment(s string) (Department, bool) {
	for _, d := range Departments() {
		if Department(s) == d {
			return d, true
		}
	}
	return "", false
}

// Employee is the registry's view of a single employee.
type Employee struct {
	ID           string     `json:"id"`
	EmployeeCode string     `json:"employee_code"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Department   Department `json:"department"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AttendanceRecord is one status entry for an (employee, date) pair.
// EmployeeName and EmployeeCode are denormalized for display and filled
// from the employees table when records are read back.
type AttendanceRecord struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Date         Date      `json:"date"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	EmployeeName string    `json:"employee_name,omitempty"`
	EmployeeCode string    `json:"employee_code,omitempty"`
}

// TodayStats is the dashboard's partition of today's records.
type TodayStats struct {
	Date      Date `json:"date"`
	Present   int  `json:"present"`
	Absent    int  `json:"absent"`
	NotMarked int  `json:"not_marked"`
}

// EmployeeStat is one employee's lifetime Present-day count.
type EmployeeStat struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeCode string `json:"employee_code"`
	PresentDays  int    `json:"present_days"`
}

// DashboardSummary is derived on every read, never stored.
type DashboardSummary struct {
	TotalEmployees int            `json:"total_employees"`
	Today          TodayStats     `json:"today"`
	AttendanceRate int            `json:"attendance_rate"`
	EmployeeStats  []EmployeeStat `json:"employee_stats"`
}

// HistoryStats always satisfies TotalDays == PresentDays + AbsentDays.
type HistoryStats struct {
	TotalDays   int `json:"total_days"`
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
}

// EmployeeHistory is one employee's full attendance record, newest first.
type EmployeeHistory struct {
	Employee Employee           `json:"employee"`
	Stats    HistoryStats       `json:"stats"`
	Records  []AttendanceRecord `json:"records"`
}
