package leave

type CreateLeaveRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required,uuid"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	IdempotencyKey string `json:"idempotency_key"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PENDING_APPROVAL APPROVED REJECTED"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"total_days"`
	Status         string  `json:"status"`
	ProcessedAt    *string `json:"processed_at,omitempty"`
	IdempotencyKey *string `json:"idempotency_key,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type CreateLeaveResponse struct {
	LeaveResponse
	IsDuplicate bool `json:"is_duplicate"`
}

type LeaveStatsResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Total      int    `json:"total"`
	Approved   int    `json:"approved"`
	Pending    int    `json:"pending"`
	Rejected   int    `json:"rejected"`
	TotalDays  int    `json:"total_days"`
}
