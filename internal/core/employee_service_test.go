package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/messaging"
	"hrms.service/internal/ports/repository/repositorytest"
)

// capturingProducer records published events instead of talking to SQS.
type capturingProducer struct {
	mu     sync.Mutex
	events []messaging.EmployeeRegisteredEvent
	err    error
}

func (p *capturingProducer) PublishEmployeeRegistered(_ context.Context, event messaging.EmployeeRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func validRegistration() RegisterEmployeeInput {
	return RegisterEmployeeInput{
		EmployeeCode: "E1",
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		Department:   "Engineering",
	}
}

func TestRegisterAndList(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	producer := &capturingProducer{}
	svc := NewEmployeeService(employees, producer)

	emp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "E1", emp.EmployeeCode)
	assert.Equal(t, "Ada Lovelace", emp.FullName)
	assert.Equal(t, model.DepartmentEngineering, emp.Department)
	assert.NotEmpty(t, emp.ID)
	assert.False(t, emp.CreatedAt.IsZero())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, emp.ID, list[0].ID)
}

func TestRegisterNormalizesInput(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})

	emp, err := svc.Register(context.Background(), RegisterEmployeeInput{
		EmployeeCode: "  E7  ",
		FullName:     "  Grace Hopper  ",
		Email:        " Grace@Example.COM ",
		Department:   "Finance",
	})
	require.NoError(t, err)
	assert.Equal(t, "E7", emp.EmployeeCode)
	assert.Equal(t, "Grace Hopper", emp.FullName)
	assert.Equal(t, "grace@example.com", emp.Email)
}

func TestRegisterReportsAllInvalidFields(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})

	_, err := svc.Register(context.Background(), RegisterEmployeeInput{
		EmployeeCode: "E-1!",
		FullName:     " x ",
		Email:        "not-an-email",
		Department:   "Astrology",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 4)
	assert.Contains(t, vErr.Fields, "employee_code")
	assert.Contains(t, vErr.Fields, "full_name")
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "department")
}

func TestRegisterDuplicateCode(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	second := validRegistration()
	second.Email = "other@example.com"
	_, err = svc.Register(context.Background(), second)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "employee_code")
	assert.Len(t, vErr.Fields, 1)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	second := validRegistration()
	second.EmployeeCode = "E2"
	_, err = svc.Register(context.Background(), second)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "email")
}

func TestRegisterPublishesEvent(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	producer := &capturingProducer{}
	svc := NewEmployeeService(employees, producer)

	emp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	require.Len(t, producer.events, 1)
	assert.Equal(t, emp.ID, producer.events[0].EmployeeID)
	assert.Equal(t, "ada@example.com", producer.events[0].Email)
}

func TestRegisterSucceedsWhenPublishFails(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	producer := &capturingProducer{err: errors.New("queue down")}
	svc := NewEmployeeService(employees, producer)

	_, err := svc.Register(context.Background(), validRegistration())
	assert.NoError(t, err)
}

func TestGetNotFound(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})

	_, err := svc.Get(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascadesAttendance(t *testing.T) {
	employees, attendance := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})
	marks := NewAttendanceService(employees, attendance)

	emp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	for _, day := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		_, err := marks.Mark(context.Background(), MarkAttendanceInput{
			EmployeeID: emp.ID,
			Date:       day,
			Status:     "Present",
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(context.Background(), emp.ID))

	records, err := marks.ListByEmployee(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteNotFound(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})

	err := svc.Delete(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterCreatedAtIsUTC(t *testing.T) {
	employees, _ := repositorytest.NewStores()
	svc := NewEmployeeService(employees, &capturingProducer{})
	fixed := time.Date(2024, 1, 10, 15, 4, 5, 0, time.FixedZone("X", 3*3600))
	svc.now = func() time.Time { return fixed }

	emp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, fixed.UTC(), emp.CreatedAt)
}
