package events

import "time"

const (
	LeaveRequestedTopic     = "wf.leave.requested.v1"
	LeaveRequestedEventType = "leave_requested"
)

type LeaveRequestedEvent struct {
	EventType      string    `json:"event_type"`
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Status         string    `json:"status"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
