package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Anugo1/Workforce-management-system/internal/events"
	leaveerrors "github.com/Anugo1/Workforce-management-system/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending         = "PENDING"
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
)

// DefaultAutoApproveDays adalah ambang otomatis-setuju bila env tidak diset
const DefaultAutoApproveDays = 2

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (CreateLeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, id, requestingEmployeeID string) error
	GetEmployeeStats(ctx context.Context, employeeID string, year int) (LeaveStatsResponse, error)
	AutoProcess(ctx context.Context, id string) (string, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	publisher       EventPublisher
	autoApproveDays int
	logger          *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithPublisher(db, repo, nil, DefaultAutoApproveDays, logger...)
}

func NewServiceWithPublisher(
	db *sql.DB,
	repo Repository,
	publisher EventPublisher,
	autoApproveDays int,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	if autoApproveDays <= 0 {
		autoApproveDays = DefaultAutoApproveDays
	}
	return &service{
		db:              db,
		repo:            repo,
		publisher:       publisher,
		autoApproveDays: autoApproveDays,
		logger:          l,
	}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (CreateLeaveResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return CreateLeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := ParseDate(req.StartDate)
	if err != nil {
		return CreateLeaveResponse{}, err
	}
	endDate, err := ParseDate(req.EndDate)
	if err != nil {
		return CreateLeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return CreateLeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if startDate.Before(todayUTC()) {
		return CreateLeaveResponse{}, leaveerrors.ErrStartDateInPast
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave request employee check failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}
	if !exists {
		return CreateLeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlapping, err := qtx.FindOverlapping(ctx, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave request overlap check failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}
	if len(overlapping) > 0 {
		s.logger.Warn("create leave request overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Int("conflicts", len(overlapping)),
		)
		return CreateLeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	// Resolusi idempotency: key dari caller, atau token acak 128-bit
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	existing, err := qtx.FindByIdempotencyKey(ctx, key)
	if err == nil {
		s.logger.Info("create leave request duplicate, returning existing",
			zap.String("leave_id", existing.ID.String()),
			zap.String("idempotency_key", key),
		)
		return CreateLeaveResponse{LeaveResponse: mapToResponse(*existing), IsDuplicate: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create leave request idempotency lookup failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}

	lr := &LeaveRequest{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		StartDate:      startDate,
		EndDate:        endDate,
		Status:         StatusPending,
		IdempotencyKey: &key,
	}

	if err := qtx.Create(ctx, lr); err != nil {
		if errors.Is(err, leaveerrors.ErrDuplicateIdempotencyKey) {
			// Kalah race pada unique constraint; baca ulang pemenangnya
			winner, readErr := s.repo.FindByIdempotencyKey(ctx, key)
			if readErr != nil {
				s.logger.Error("create leave request duplicate re-read failed",
					zap.String("idempotency_key", key),
					zap.Error(readErr),
				)
				return CreateLeaveResponse{}, err
			}
			return CreateLeaveResponse{LeaveResponse: mapToResponse(*winner), IsDuplicate: true}, nil
		}
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}

	// Publish best-effort: record sudah tersimpan, kegagalan publish hanya dicatat
	s.publishRequested(ctx, lr)

	if enriched, err := s.repo.FindByID(ctx, lr.ID.String(), true); err == nil {
		lr = enriched
	} else {
		s.logger.Warn("create leave request enrichment fetch failed",
			zap.String("leave_id", lr.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("create leave request success",
		zap.String("leave_id", lr.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return CreateLeaveResponse{LeaveResponse: mapToResponse(*lr), IsDuplicate: false}, nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	lr, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*lr), nil
}

// UpdateStatus menerima transisi manual ke status apapun yang dikenal.
// Graf transisi sengaja tidak dibatasi; gate PENDING di AutoProcess yang
// melindungi dari pemrosesan ganda.
func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	if !isRecognizedStatus(req.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	lr, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("update leave status persist failed",
			zap.String("leave_id", id),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave status success",
		zap.String("leave_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*lr), nil
}

func (s *service) Cancel(ctx context.Context, id, requestingEmployeeID string) error {
	lr, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	if lr.EmployeeID.String() != requestingEmployeeID {
		s.logger.Warn("cancel leave request denied, not owner",
			zap.String("leave_id", id),
			zap.String("requesting_employee_id", requestingEmployeeID),
		)
		return leaveerrors.ErrCancelNotOwner
	}
	if lr.Status == StatusRejected {
		return leaveerrors.ErrCancelRejectedLeave
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("cancel leave request delete failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return err
	}
	if removed == 0 {
		return leaveerrors.ErrLeaveNotFound
	}

	s.logger.Info("cancel leave request success", zap.String("leave_id", id))
	return nil
}

func (s *service) GetEmployeeStats(ctx context.Context, employeeID string, year int) (LeaveStatsResponse, error) {
	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		return LeaveStatsResponse{}, err
	}
	if !exists {
		return LeaveStatsResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	if year == 0 {
		year = time.Now().UTC().Year()
	}

	stats, err := s.repo.GetEmployeeStats(ctx, employeeID, year)
	if err != nil {
		return LeaveStatsResponse{}, err
	}

	return LeaveStatsResponse{
		EmployeeID: employeeID,
		Year:       year,
		Total:      stats.Total,
		Approved:   stats.Approved,
		Pending:    stats.Pending,
		Rejected:   stats.Rejected,
		TotalDays:  stats.TotalDays,
	}, nil
}

// AutoProcess mengklasifikasi ulang satu leave request PENDING berdasarkan
// durasinya. Record selalu dibaca ulang dari store; payload event tidak
// dipercaya karena bisa basi. Return ("", nil) berarti pesan boleh di-ack
// tanpa perubahan apapun.
func (s *service) AutoProcess(ctx context.Context, id string) (string, error) {
	lr, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("auto process leave request missing, skipping",
				zap.String("leave_id", id),
			)
			return "", nil
		}
		return "", err
	}

	if lr.Status != StatusPending {
		// Sudah diproses, atau diubah manual; redelivery jadi no-op
		s.logger.Info("auto process skipped, leave request no longer pending",
			zap.String("leave_id", id),
			zap.String("status", lr.Status),
		)
		return lr.Status, nil
	}

	if lr.StartDate.IsZero() || lr.EndDate.IsZero() {
		s.logger.Error("auto process cannot determine duration, skipping",
			zap.String("leave_id", id),
		)
		return "", nil
	}

	days := DurationDays(lr.StartDate, lr.EndDate)
	nextStatus := StatusPendingApproval
	if days <= s.autoApproveDays {
		nextStatus = StatusApproved
	}
	if nextStatus == lr.Status {
		return lr.Status, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, nextStatus)
	if err != nil {
		s.logger.Error("auto process status update failed",
			zap.String("leave_id", id),
			zap.String("next_status", nextStatus),
			zap.Error(err),
		)
		return "", err
	}

	if nextStatus == StatusApproved {
		s.publishApproved(ctx, updated)
	}

	s.logger.Info("auto process leave request success",
		zap.String("leave_id", id),
		zap.Int("duration_days", days),
		zap.String("status", nextStatus),
	)
	return nextStatus, nil
}

func (s *service) publishRequested(ctx context.Context, lr *LeaveRequest) {
	event := events.LeaveRequestedEvent{
		EventType:  events.LeaveRequestedEventType,
		ID:         lr.ID.String(),
		EmployeeID: lr.EmployeeID.String(),
		StartDate:  lr.StartDate.Format(dateLayout),
		EndDate:    lr.EndDate.Format(dateLayout),
		Status:     lr.Status,
		Timestamp:  time.Now().UTC(),
	}
	if lr.IdempotencyKey != nil {
		event.IdempotencyKey = *lr.IdempotencyKey
	}

	if err := s.publisher.PublishLeaveRequested(ctx, event); err != nil {
		s.logger.Error("publish leave_requested failed",
			zap.String("leave_id", event.ID),
			zap.Error(err),
		)
	}
}

func (s *service) publishApproved(ctx context.Context, lr *LeaveRequest) {
	event := events.LeaveApprovedEvent{
		EventType:  events.LeaveApprovedEventType,
		ID:         lr.ID.String(),
		EmployeeID: lr.EmployeeID.String(),
		StartDate:  lr.StartDate.Format(dateLayout),
		EndDate:    lr.EndDate.Format(dateLayout),
	}
	if lr.ProcessedAt != nil {
		event.ProcessedAt = *lr.ProcessedAt
	}

	if err := s.publisher.PublishLeaveApproved(ctx, event); err != nil {
		s.logger.Error("publish leave_approved failed",
			zap.String("leave_id", event.ID),
			zap.Error(err),
		)
	}
}

func isRecognizedStatus(status string) bool {
	switch status {
	case StatusPending, StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func mapToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:             lr.ID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		StartDate:      lr.StartDate.Format(dateLayout),
		EndDate:        lr.EndDate.Format(dateLayout),
		TotalDays:      DurationDays(lr.StartDate, lr.EndDate),
		Status:         lr.Status,
		IdempotencyKey: lr.IdempotencyKey,
		CreatedAt:      lr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lr.Employee != nil {
		resp.EmployeeName = lr.Employee.FullName
	}
	if lr.ProcessedAt != nil {
		v := lr.ProcessedAt.UTC().Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, lr := range leaves {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
