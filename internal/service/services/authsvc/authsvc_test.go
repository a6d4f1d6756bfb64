package authsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/isessionrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iuserrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/session"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
)

type fakeUserRepo struct {
	users  map[int64]user.User
	nextID int64
}

func (f *fakeUserRepo) Insert(_ context.Context, u user.User) (user.User, error) {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u

	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, iuserrepo.ErrNotFound
	}

	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, iuserrepo.ErrNotFound
}

type fakeSessionRepo struct {
	sessions map[string]session.Session
}

func (f *fakeSessionRepo) Insert(_ context.Context, s session.Session) error {
	f.sessions[s.Token] = s

	return nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*session.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, isessionrepo.ErrNotFound
	}

	return &s, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	if _, ok := f.sessions[token]; !ok {
		return isessionrepo.ErrNotFound
	}
	delete(f.sessions, token)

	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for token, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, token)
			n++
		}
	}

	return n, nil
}

func newTestService(ttl time.Duration) (*AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := &fakeUserRepo{users: make(map[int64]user.User)}
	sessions := &fakeSessionRepo{sessions: make(map[string]session.Session)}

	svc := MustNewAuthService(
		WithUserRepository(users),
		WithSessionRepository(sessions),
		WithSessionTTL(ttl),
	)

	return svc, users, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)
	ctx := context.Background()

	created, err := svc.Register(ctx, user.User{
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  user.RoleClient,
	}, "hunter2hunter2")
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.NotEqual(t, "hunter2hunter2", created.PasswordHash)

	sess, err := svc.Login(ctx, "ana@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, created.ID, sess.UserID)
	assert.Equal(t, user.RoleClient, sess.Role)

	resolved, err := svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.User{Name: "Ana", Email: "ana@example.com", Role: user.RoleClient}, "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register(ctx, user.User{Name: "Other", Email: "ana@example.com", Role: user.RoleClient}, "hunter2hunter2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.User{Name: "Ana", Email: "ana@example.com", Role: user.RoleClient}, "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown emails report the same error as wrong passwords.
	_, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, users, _ := newTestService(time.Hour)
	ctx := context.Background()

	created, err := svc.Register(ctx, user.User{Name: "Ana", Email: "ana@example.com", Role: user.RoleClient}, "hunter2hunter2")
	require.NoError(t, err)

	deactivated := users.users[created.ID]
	deactivated.Active = false
	users.users[created.ID] = deactivated

	_, err = svc.Login(ctx, "ana@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, _, sessions := newTestService(-time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.User{Name: "Ana", Email: "ana@example.com", Role: user.RoleClient}, "hunter2hunter2")
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "ana@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// The expired session is removed on first use.
	assert.Empty(t, sessions.sessions)
}

func TestLogout(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.User{Name: "Ana", Email: "ana@example.com", Role: user.RoleClient}, "hunter2hunter2")
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "ana@example.com", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.Token))

	_, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// Logging out an already revoked token is not an error.
	assert.NoError(t, svc.Logout(ctx, sess.Token))
}
