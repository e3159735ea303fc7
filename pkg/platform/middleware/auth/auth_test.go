package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"enrolsight/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return s.claims, s.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := uuid.New()

	var reached bool
	var gotName, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotName = requestcontext.UserName(r.Context())
		gotRole = requestcontext.Role(r.Context())
		assert.Equal(t, userID.String(), requestcontext.UserID(r.Context()).String())
	})

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
	}{
		{"missing header", "", stubValidator{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubValidator{}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", stubValidator{err: errors.New("invalid token")}, http.StatusUnauthorized},
		{"non-uuid subject", "Bearer ok", stubValidator{claims: &JWTClaims{UserID: "42", Role: "Admin"}}, http.StatusUnauthorized},
		{"valid", "Bearer ok", stubValidator{claims: &JWTClaims{UserID: userID.String(), Name: "Ravi", Role: "Manager"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/api/views", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			RequireAuth(tt.validator, logger)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, reached)
				assert.Contains(t, rr.Body.String(), `"error":"unauthorized"`)
				return
			}
			assert.True(t, reached)
			assert.Equal(t, "Ravi", gotName)
			assert.Equal(t, "Manager", gotRole)
		})
	}
}
