// Package domain holds typed identifiers shared across modules.
//
// IDs are distinct named types over uuid.UUID so a user ID can never be passed
// where an event ID is expected. Parse at trust boundaries (JWT claims, query
// strings, database rows) and pass the typed value inward.
package domain

import (
	"github.com/google/uuid"

	dErrors "enrolsight/pkg/domain-errors"
)

type (
	// UserID identifies the authenticated caller.
	UserID uuid.UUID
	// EventID identifies one persisted audit event.
	EventID uuid.UUID
)

func (id UserID) String() string  { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id EventID) String() string { return uuid.UUID(id).String() }
func (id EventID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewEventID returns a random event identifier.
func NewEventID() EventID {
	return EventID(uuid.New())
}

// ParseUserID parses a non-nil UUID.
//
// Errors: CodeInvalidInput when the value is empty, malformed or the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseEventID parses a non-nil UUID.
//
// Errors: CodeInvalidInput when the value is empty, malformed or the nil UUID.
func ParseEventID(s string) (EventID, error) {
	u, err := parseUUID(s, "event ID")
	return EventID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be nil")
	}
	return u, nil
}
