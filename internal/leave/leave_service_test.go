package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Anugo1/Workforce-management-system/internal/events"
	"github.com/Anugo1/Workforce-management-system/internal/leave"
	leaveerrors "github.com/Anugo1/Workforce-management-system/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, lr *leave.LeaveRequest) error
	findAllFn              func(ctx context.Context) ([]leave.LeaveRequest, error)
	findByIDFn             func(ctx context.Context, id string, includeEmployee bool) (*leave.LeaveRequest, error)
	findByIdempotencyKeyFn func(ctx context.Context, key string) (*leave.LeaveRequest, error)
	findOverlappingFn      func(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) ([]leave.LeaveRequest, error)
	updateStatusFn         func(ctx context.Context, id, status string) (*leave.LeaveRequest, error)
	deleteFn               func(ctx context.Context, id string) (int64, error)
	getEmployeeStatsFn     func(ctx context.Context, employeeID string, year int) (leave.EmployeeLeaveStats, error)
	employeeExistsFn       func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string, includeEmployee bool) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id, includeEmployee)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIdempotencyKey(ctx context.Context, key string) (*leave.LeaveRequest, error) {
	if f.findByIdempotencyKeyFn != nil {
		return f.findByIdempotencyKeyFn(ctx, key)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) ([]leave.LeaveRequest, error) {
	if f.findOverlappingFn != nil {
		return f.findOverlappingFn(ctx, employeeID, startDate, endDate, excludeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) UpdateStatus(ctx context.Context, id, status string) (*leave.LeaveRequest, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 0, nil
}

func (f *fakeLeaveRepository) GetEmployeeStats(ctx context.Context, employeeID string, year int) (leave.EmployeeLeaveStats, error) {
	if f.getEmployeeStatsFn != nil {
		return f.getEmployeeStatsFn(ctx, employeeID, year)
	}
	return leave.EmployeeLeaveStats{}, nil
}

func (f *fakeLeaveRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

type fakeEventPublisher struct {
	requested []events.LeaveRequestedEvent
	approved  []events.LeaveApprovedEvent
	err       error
}

func (f *fakeEventPublisher) PublishLeaveRequested(ctx context.Context, event events.LeaveRequestedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.requested = append(f.requested, event)
	return nil
}

func (f *fakeEventPublisher) PublishLeaveApproved(ctx context.Context, event events.LeaveApprovedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.approved = append(f.approved, event)
	return nil
}

type leaveServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   leave.Service
	repo      *fakeLeaveRepository
	publisher *fakeEventPublisher
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	publisher := &fakeEventPublisher{}
	svc := leave.NewServiceWithPublisher(db, repo, publisher, leave.DefaultAutoApproveDays)

	return &leaveServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		publisher: publisher,
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

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			StartDate:  futureDate(7),
			EndDate:    futureDate(9),
		}

		var created *leave.LeaveRequest
		deps.repo.createFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			assert.Equal(t, uuid.MustParse(employeeID), lr.EmployeeID)
			assert.Equal(t, leave.StatusPending, lr.Status)
			assert.NotNil(t, lr.IdempotencyKey)
			assert.NotEmpty(t, *lr.IdempotencyKey)
			created = lr
			return nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string, includeEmployee bool) (*leave.LeaveRequest, error) {
			assert.True(t, includeEmployee)
			return created, nil
		}

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.False(t, resp.IsDuplicate)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Len(t, deps.publisher.requested, 1)
		assert.Equal(t, created.ID.String(), deps.publisher.requested[0].ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("generates idempotency key when caller omits it", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var seenKey string
		deps.repo.findByIdempotencyKeyFn = func(ctx context.Context, key string) (*leave.LeaveRequest, error) {
			seenKey = key
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			StartDate:  futureDate(3),
			EndDate:    futureDate(3),
		})

		assert.NoError(t, err)
		_, parseErr := uuid.Parse(seenKey)
		assert.NoError(t, parseErr)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: "not-a-uuid",
			StartDate:  futureDate(1),
			EndDate:    futureDate(2),
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
	})

	t.Run("negative malformed date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			StartDate:  "03/01/2026",
			EndDate:    futureDate(2),
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			StartDate:  futureDate(5),
			EndDate:    futureDate(3),
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative start date in past", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			StartDate:  futureDate(-1),
			EndDate:    futureDate(2),
		})

		assert.ErrorIs(t, err, leaveerrors.ErrStartDateInPast)
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			StartDate:  futureDate(1),
			EndDate:    futureDate(2),
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlapping request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findOverlappingFn = func(ctx context.Context, eid string, startDate, endDate time.Time, excludeID *string) ([]leave.LeaveRequest, error) {
			assert.Nil(t, excludeID)
			return []leave.LeaveRequest{{ID: uuid.New(), Status: leave.StatusApproved}}, nil
		}

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			StartDate:  futureDate(1),
			EndDate:    futureDate(2),
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.Empty(t, deps.publisher.requested)
	})

	t.Run("duplicate key returns existing without insert", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		key := uuid.NewString()
		existing := &leave.LeaveRequest{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(employeeID),
			StartDate:      time.Now().UTC().AddDate(0, 0, 7),
			EndDate:        time.Now().UTC().AddDate(0, 0, 8),
			Status:         leave.StatusApproved,
			IdempotencyKey: &key,
		}

		deps.repo.findByIdempotencyKeyFn = func(ctx context.Context, k string) (*leave.LeaveRequest, error) {
			assert.Equal(t, key, k)
			return existing, nil
		}
		deps.repo.createFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			t.Fatal("create should not be called for duplicate key")
			return nil
		}

		resp, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID:     employeeID,
			StartDate:      futureDate(7),
			EndDate:        futureDate(8),
			IdempotencyKey: key,
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsDuplicate)
		assert.Equal(t, existing.ID.String(), resp.ID)
		assert.Empty(t, deps.publisher.requested)
	})

	t.Run("lost constraint race returns winner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		key := uuid.NewString()
		winner := &leave.LeaveRequest{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(employeeID),
			StartDate:      time.Now().UTC().AddDate(0, 0, 7),
			EndDate:        time.Now().UTC().AddDate(0, 0, 8),
			Status:         leave.StatusPending,
			IdempotencyKey: &key,
		}

		lookups := 0
		deps.repo.findByIdempotencyKeyFn = func(ctx context.Context, k string) (*leave.LeaveRequest, error) {
			lookups++
			if lookups == 1 {
				// Dalam tx: belum kelihatan
				return nil, gorm.ErrRecordNotFound
			}
			return winner, nil
		}
		deps.repo.createFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			return leaveerrors.ErrDuplicateIdempotencyKey
		}

		resp, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID:     employeeID,
			StartDate:      futureDate(7),
			EndDate:        futureDate(8),
			IdempotencyKey: key,
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsDuplicate)
		assert.Equal(t, winner.ID.String(), resp.ID)
		assert.Equal(t, 2, lookups)
	})
}

func TestLeaveService_AutoProcess(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	newPending := func(days int) *leave.LeaveRequest {
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		return &leave.LeaveRequest{
			ID:         uuid.MustParse(id),
			EmployeeID: uuid.New(),
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, days-1),
			Status:     leave.StatusPending,
		}
	}

	t.Run("short duration auto approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := newPending(2)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			assert.False(t, includeEmployee)
			return lr, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, targetID, status string) (*leave.LeaveRequest, error) {
			assert.Equal(t, leave.StatusApproved, status)
			now := time.Now().UTC()
			updated := *lr
			updated.Status = status
			updated.ProcessedAt = &now
			return &updated, nil
		}

		status, err := deps.service.AutoProcess(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, status)
		assert.Len(t, deps.publisher.approved, 1)
		assert.Equal(t, id, deps.publisher.approved[0].ID)
		assert.False(t, deps.publisher.approved[0].ProcessedAt.IsZero())
	})

	t.Run("boundary duration equal to threshold approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := newPending(leave.DefaultAutoApproveDays)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, targetID, status string) (*leave.LeaveRequest, error) {
			updated := *lr
			updated.Status = status
			return &updated, nil
		}

		status, err := deps.service.AutoProcess(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, status)
	})

	t.Run("long duration escalated to pending approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := newPending(leave.DefaultAutoApproveDays + 1)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, targetID, status string) (*leave.LeaveRequest, error) {
			assert.Equal(t, leave.StatusPendingApproval, status)
			updated := *lr
			updated.Status = status
			return &updated, nil
		}

		status, err := deps.service.AutoProcess(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPendingApproval, status)
		assert.Empty(t, deps.publisher.approved)
	})

	t.Run("non pending request untouched", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := newPending(2)
		lr.Status = leave.StatusRejected
		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, targetID, status string) (*leave.LeaveRequest, error) {
			t.Fatal("update should not be called for non-pending request")
			return nil, nil
		}

		status, err := deps.service.AutoProcess(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, status)
		assert.Empty(t, deps.publisher.approved)
	})

	t.Run("missing request skipped", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		status, err := deps.service.AutoProcess(ctx, id)

		assert.NoError(t, err)
		assert.Empty(t, status)
	})

	t.Run("negative repo error propagated", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return nil, errors.New("db down")
		}

		_, err := deps.service.AutoProcess(ctx, id)

		assert.Error(t, err)
	})
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		now := time.Now().UTC()
		deps.repo.updateStatusFn = func(ctx context.Context, targetID, status string) (*leave.LeaveRequest, error) {
			assert.Equal(t, id, targetID)
			assert.Equal(t, leave.StatusRejected, status)
			return &leave.LeaveRequest{
				ID:          uuid.MustParse(targetID),
				EmployeeID:  uuid.New(),
				StartDate:   now.AddDate(0, 0, 3),
				EndDate:     now.AddDate(0, 0, 4),
				Status:      status,
				ProcessedAt: &now,
			}, nil
		}

		resp, err := deps.service.UpdateStatus(ctx, id, leave.UpdateLeaveStatusRequest{Status: leave.StatusRejected})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.ProcessedAt)
	})

	t.Run("negative unknown status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, id, leave.UpdateLeaveStatusRequest{Status: "CANCELLED"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.updateStatusFn = func(ctx context.Context, targetID, status string) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.UpdateStatus(ctx, id, leave.UpdateLeaveStatusRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()
	ownerID := uuid.New()

	existing := func(status string) *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:         uuid.MustParse(id),
			EmployeeID: ownerID,
			StartDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
			Status:     status,
		}
	}

	t.Run("success owner cancels pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return existing(leave.StatusPending), nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, targetID string) (int64, error) {
			deleted = true
			return 1, nil
		}

		err := deps.service.Cancel(ctx, id, ownerID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("approved request can still be cancelled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return existing(leave.StatusApproved), nil
		}
		deps.repo.deleteFn = func(ctx context.Context, targetID string) (int64, error) {
			return 1, nil
		}

		assert.NoError(t, deps.service.Cancel(ctx, id, ownerID.String()))
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return existing(leave.StatusPending), nil
		}
		deps.repo.deleteFn = func(ctx context.Context, targetID string) (int64, error) {
			t.Fatal("delete should not be called for non-owner")
			return 0, nil
		}

		err := deps.service.Cancel(ctx, id, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrCancelNotOwner)
	})

	t.Run("negative rejected request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return existing(leave.StatusRejected), nil
		}

		err := deps.service.Cancel(ctx, id, ownerID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrCancelRejectedLeave)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Cancel(ctx, id, ownerID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative vanished before delete", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return existing(leave.StatusPending), nil
		}
		deps.repo.deleteFn = func(ctx context.Context, targetID string) (int64, error) {
			return 0, nil
		}

		err := deps.service.Cancel(ctx, id, ownerID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_GetEmployeeStats(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.getEmployeeStatsFn = func(ctx context.Context, eid string, year int) (leave.EmployeeLeaveStats, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 2026, year)
			return leave.EmployeeLeaveStats{
				Total:     5,
				Approved:  2,
				Pending:   2,
				Rejected:  1,
				TotalDays: 6,
			}, nil
		}

		resp, err := deps.service.GetEmployeeStats(ctx, employeeID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 2026, resp.Year)
		assert.Equal(t, 5, resp.Total)
		assert.Equal(t, 2, resp.Approved)
		assert.Equal(t, 2, resp.Pending)
		assert.Equal(t, 1, resp.Rejected)
		assert.Equal(t, 6, resp.TotalDays)
	})

	t.Run("zero year defaults to current", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.getEmployeeStatsFn = func(ctx context.Context, eid string, year int) (leave.EmployeeLeaveStats, error) {
			assert.Equal(t, time.Now().UTC().Year(), year)
			return leave.EmployeeLeaveStats{}, nil
		}

		resp, err := deps.service.GetEmployeeStats(ctx, employeeID, 0)

		assert.NoError(t, err)
		assert.Equal(t, time.Now().UTC().Year(), resp.Year)
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.GetEmployeeStats(ctx, employeeID, 2026)

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative not found mapped", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string, includeEmployee bool) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
