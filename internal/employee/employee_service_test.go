package employee_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Anugo1/Workforce-management-system/internal/employee"
	employeeerrors "github.com/Anugo1/Workforce-management-system/internal/employee/errors"
	"github.com/Anugo1/Workforce-management-system/internal/events"
	"github.com/Anugo1/Workforce-management-system/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn           func(tx *sql.Tx) employee.Repository
	createFn           func(ctx context.Context, empl *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findOptionsFn      func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	departmentExistsFn func(ctx context.Context, departmentID string) (bool, error)
	updateFn           func(ctx context.Context, empl *employee.Employee) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	if f.findOptionsFn != nil {
		return f.findOptionsFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	if f.departmentExistsFn != nil {
		return f.departmentExistsFn(ctx, departmentID)
	}
	return true, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
	outbox  *fakeOutboxRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	outbox := &fakeOutboxRepository{}
	svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, outbox, nil)

	return &employeeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	departmentID := uuid.New().String()

	t.Run("success writes outbox event in same tx", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var created *employee.Employee
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "Jane Careers", empl.FullName)
			assert.Equal(t, "ACTIVE", empl.EmploymentStatus)
			created = empl
			return nil
		}

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:     "Jane Careers",
			Email:        "jane@example.com",
			DepartmentID: departmentID,
			HireDate:     "2026-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.EmployeeCreatedEventType, deps.outbox.created[0].EventType)
		assert.Equal(t, events.EmployeeCreatedTopic, deps.outbox.created[0].Topic)
		assert.Equal(t, created.ID.String(), deps.outbox.created[0].AggregateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("generates employee number when omitted", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "EMP-000001", empl.EmployeeNumber)
			return nil
		}

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:     "Budi Santoso",
			Email:        "budi@example.com",
			DepartmentID: departmentID,
			HireDate:     "2026-02-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
	})

	t.Run("negative department not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.departmentExistsFn = func(ctx context.Context, did string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:     "Jane Careers",
			Email:        "jane@example.com",
			DepartmentID: departmentID,
			HireDate:     "2026-01-15",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:     "Jane Careers",
			Email:        "jane@example.com",
			DepartmentID: departmentID,
			HireDate:     "15-01-2026",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:     "Jane Careers",
			Email:        "jane@example.com",
			DepartmentID: departmentID,
			HireDate:     "2026-01-15",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	departmentID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:               id,
				FullName:         "Old Name",
				Email:            "old@example.com",
				EmployeeNumber:   "EMP-000007",
				HireDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				EmploymentStatus: "ACTIVE",
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "New Name", empl.FullName)
			assert.Equal(t, "EMP-000007", empl.EmployeeNumber)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			FullName:     "New Name",
			Email:        "new@example.com",
			DepartmentID: departmentID,
			HireDate:     "2025-06-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.FullName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			FullName:     "New Name",
			Email:        "new@example.com",
			DepartmentID: departmentID,
			HireDate:     "2025-06-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*employee.Employee, error) {
			return &employee.Employee{ID: id}, nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, targetID string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to repo when cache disabled", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: uuid.New(), FullName: "Jane Careers", EmploymentStatus: "ACTIVE"},
			}, nil
		}

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Jane Careers", resp[0].FullName)
	})
}
