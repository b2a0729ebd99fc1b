package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type EmployeeLeaveStats struct {
	Total     int
	Approved  int
	Pending   int
	Rejected  int
	TotalDays int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string, includeEmployee bool) (*LeaveRequest, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*LeaveRequest, error)
	FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*LeaveRequest, error)
	Delete(ctx context.Context, id string) (int64, error)
	GetEmployeeStats(ctx context.Context, employeeID string, year int) (EmployeeLeaveStats, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	if err := r.db.WithContext(ctx).Create(lr).Error; err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string, includeEmployee bool) (*LeaveRequest, error) {
	db := r.db.WithContext(ctx)
	if includeEmployee {
		db = db.Preload("Employee")
	}

	var lr LeaveRequest
	err := db.First(&lr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindByIdempotencyKey(ctx context.Context, key string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		First(&lr, "idempotency_key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// FindOverlapping mengembalikan pengajuan aktif (APPROVED / PENDING_APPROVAL)
// milik employee yang rentangnya beririsan inklusif dengan [startDate, endDate]:
// s1 <= e2 AND s2 <= e1. Rentang yang bersinggungan di hari yang sama dihitung overlap.
func (r *repository) FindOverlapping(
	ctx context.Context,
	employeeID string,
	startDate, endDate time.Time,
	excludeID *string,
) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusApproved, StatusPendingApproval}).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var leaves []LeaveRequest
	err := db.Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) (*LeaveRequest, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       status,
			"processed_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var lr LeaveRequest
	if err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) GetEmployeeStats(ctx context.Context, employeeID string, year int) (EmployeeLeaveStats, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("created_at >= ? AND created_at < ?", yearStart, yearEnd).
		Find(&leaves).Error
	if err != nil {
		return EmployeeLeaveStats{}, err
	}

	stats := EmployeeLeaveStats{Total: len(leaves)}
	for _, lr := range leaves {
		switch lr.Status {
		case StatusApproved:
			stats.Approved++
			stats.TotalDays += DurationDays(lr.StartDate, lr.EndDate)
		case StatusPending, StatusPendingApproval:
			stats.Pending++
		case StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
