package events

import "time"

const (
	LeaveApprovedTopic     = "wf.leave.approved.v1"
	LeaveApprovedEventType = "leave_approved"
)

type LeaveApprovedEvent struct {
	EventType   string    `json:"event_type"`
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	ProcessedAt time.Time `json:"processed_at"`
}
