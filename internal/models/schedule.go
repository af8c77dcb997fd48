package models

// ScheduleCallRequest is the backend's schedule payload. OrderID carries a
// leading "#", ScheduledTimeUtc is an ISO 8601 UTC instant like
// "2025-06-13T05:35:00Z".
type ScheduleCallRequest struct {
	OrderID          string `json:"orderId"`
	ScheduledTimeUtc string `json:"scheduledTimeUtc"`
	AssistantID      string `json:"assistantId"`
}

// ScheduleCallResponse is the backend's schedule reply; all fields optional
type ScheduleCallResponse struct {
	CallID        string `json:"callId,omitempty"`
	Message       string `json:"message,omitempty"`
	ScheduledTime string `json:"scheduledTime,omitempty"`
}
