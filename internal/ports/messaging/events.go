package messaging

import "time"

// EmployeeRegisteredEvent is the JSON payload sent via SQS when a new
// employee is registered. The email worker consumes it.
type EmployeeRegisteredEvent struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	OccurredAt   time.Time `json:"occurred_at"`
}
