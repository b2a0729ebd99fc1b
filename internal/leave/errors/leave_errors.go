package leaveerrors

import (
	"net/http"

	"github.com/Anugo1/Workforce-management-system/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start_date cannot be before today",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrDuplicateIdempotencyKey = apperror.New(
		apperror.CodeConflict,
		"leave request with this idempotency key already exists",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of PENDING, PENDING_APPROVAL, APPROVED, REJECTED",
		http.StatusBadRequest,
	)
	ErrCancelNotOwner = apperror.New(
		apperror.CodeUnauthorized,
		"leave request does not belong to this employee",
		http.StatusForbidden,
	)
	ErrCancelRejectedLeave = apperror.New(
		apperror.CodeInvalidState,
		"rejected leave request cannot be cancelled",
		http.StatusBadRequest,
	)
)
