package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/session"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/authsvc"
)

type fakeAuthenticator struct {
	sessions map[string]session.Session
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (session.Session, error) {
	sess, ok := f.sessions[token]
	if !ok {
		return session.Session{}, authsvc.ErrInvalidSession
	}

	return sess, nil
}

func newHandler(t *testing.T) (http.Handler, *session.Session) {
	t.Helper()

	var captured session.Session

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		captured = sess
		w.WriteHeader(http.StatusOK)
	}), &captured
}

func TestAuthMiddleware(t *testing.T) {
	authenticator := &fakeAuthenticator{sessions: map[string]session.Session{
		"good-token": {Token: "good-token", UserID: 7, Role: user.RoleClient},
	}}
	next, captured := newHandler(t)
	handler := NewAuthMiddleware(authenticator)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, int64(7), captured.UserID)
}

func TestRequireRole(t *testing.T) {
	authenticator := &fakeAuthenticator{sessions: map[string]session.Session{
		"client-token":     {Token: "client-token", UserID: 7, Role: user.RoleClient},
		"restaurant-token": {Token: "restaurant-token", UserID: 8, Role: user.RoleRestaurant, RestaurantID: 10},
	}}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := NewAuthMiddleware(authenticator)(RequireRole(user.RoleRestaurant)(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer client-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer restaurant-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
