package handler

import (
	"time"

	"enrolsight/internal/access"
	"enrolsight/pkg/platform/audit"
)

// MeResponse echoes the authenticated identity.
type MeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ViewsResponse lists the views permitted on a tab.
type ViewsResponse struct {
	Role  string        `json:"role"`
	Tab   string        `json:"tab"`
	Views []access.View `json:"views"`
}

// LogEntry is one activity log row.
type LogEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LogsResponse is the body of GET /logs.
type LogsResponse struct {
	Logs []LogEntry `json:"logs"`
}

// FromEvents converts audit events to activity log rows.
func FromEvents(events []audit.Event) LogsResponse {
	out := LogsResponse{Logs: make([]LogEntry, len(events))}
	for i, e := range events {
		out.Logs[i] = LogEntry{
			ID:        e.ID.String(),
			UserID:    e.UserID.String(),
			Action:    string(e.Action),
			Subject:   e.Subject,
			Details:   e.Details,
			Timestamp: e.Timestamp,
		}
	}
	return out
}
