package testutil

import (
	"context"
	"net/http"

	id "enrolsight/pkg/domain"
	"enrolsight/pkg/requestcontext"
)

// WithIdentity attaches the identity the auth middleware would have set.
// An unparseable userID leaves the request unauthenticated.
func WithIdentity(req *http.Request, userID, name, role string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithIdentity(req.Context(), parsed, name, role))
}

// WithRequestID sets the request ID seen by handlers and audit events.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
