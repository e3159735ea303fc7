package audit

import (
	"time"

	id "enrolsight/pkg/domain"
)

// EventCategory classifies audit events for routing and retention.
type EventCategory string

const (
	// CategorySecurity covers denied access and other events worth alerting on.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity such as computed views.
	CategoryOperations EventCategory = "operations"
)

// Action names what happened.
type Action string

const (
	ActionViewComputed  Action = "view_computed"
	ActionAccessDenied  Action = "access_denied"
	ActionDatasetLoaded Action = "dataset_loaded"
)

var actionCategories = map[Action]EventCategory{
	ActionViewComputed:  CategoryOperations,
	ActionAccessDenied:  CategorySecurity,
	ActionDatasetLoaded: CategoryOperations,
}

// Category returns the category for an action. Unknown actions are
// operational.
func (a Action) Category() EventCategory {
	if c, ok := actionCategories[a]; ok {
		return c
	}
	return CategoryOperations
}

// Event is one entry of the activity log. It is transport-agnostic so stores
// and sinks can fan out.
type Event struct {
	ID        id.EventID    `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	// UserID is nil for system events such as dataset loads.
	UserID     id.UserID `json:"user_id"`
	Role       string    `json:"role,omitempty"`
	Action     Action    `json:"action"`
	Subject    string    `json:"subject,omitempty"`
	Details    string    `json:"details,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	ClientKind string    `json:"client_kind,omitempty"`
}
