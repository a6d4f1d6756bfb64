package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/isessionrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iuserrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/session"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidSession     = errors.New("session is invalid or expired")
)

const defaultSessionTTLHours = 24

type AuthService struct {
	userRepo    iuserrepo.IUserRepository
	sessionRepo isessionrepo.ISessionRepository
	sessionTTL  time.Duration
}

type option func(*AuthService)

func WithUserRepository(repo iuserrepo.IUserRepository) option {
	return func(s *AuthService) {
		s.userRepo = repo
	}
}

func WithSessionRepository(repo isessionrepo.ISessionRepository) option {
	return func(s *AuthService) {
		s.sessionRepo = repo
	}
}

func WithSessionTTL(ttl time.Duration) option {
	return func(s *AuthService) {
		s.sessionTTL = ttl
	}
}

func MustNewAuthService(opts ...option) *AuthService {
	service := &AuthService{}
	for _, opt := range opts {
		opt(service)
	}

	if service.userRepo == nil {
		panic("auth service requires a user repository")
	}
	if service.sessionRepo == nil {
		panic("auth service requires a session repository")
	}

	if service.sessionTTL == 0 {
		hours := viper.GetInt("auth.session_ttl_hours")
		if hours <= 0 {
			hours = defaultSessionTTLHours
		}
		service.sessionTTL = time.Duration(hours) * time.Hour
	}

	return service
}

// Register creates an account with a bcrypt password hash. The email
// must not already be in use.
func (s *AuthService) Register(ctx context.Context, newUser user.User, password string) (user.User, error) {
	if _, err := user.ParseRole(newUser.Role.String()); err != nil {
		return user.User{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, newUser.Email); err == nil {
		return user.User{}, ErrEmailTaken
	} else if !errors.Is(err, iuserrepo.ErrNotFound) {
		return user.User{}, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now()
	newUser.PasswordHash = string(hash)
	newUser.Active = true
	newUser.CreatedAt = now
	newUser.UpdatedAt = now

	created, err := s.userRepo.Insert(ctx, newUser)
	if err != nil {
		return user.User{}, fmt.Errorf("error inserting user: %w", err)
	}

	return created, nil
}

// Login verifies the credentials and issues a bearer session. Missing
// accounts and wrong passwords both report ErrInvalidCredentials so a
// caller cannot probe for registered emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (session.Session, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, iuserrepo.ErrNotFound) {
			return session.Session{}, ErrInvalidCredentials
		}
		return session.Session{}, fmt.Errorf("error getting user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return session.Session{}, ErrInvalidCredentials
	}

	if !u.Active {
		return session.Session{}, ErrAccountInactive
	}

	now := time.Now()
	sess := session.Session{
		Token:        uuid.NewString(),
		UserID:       u.ID,
		Role:         u.Role,
		RestaurantID: u.RestaurantID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Insert(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("error inserting session: %w", err)
	}

	return sess, nil
}

// Authenticate resolves a bearer token into its session. Expired
// sessions are deleted on sight.
func (s *AuthService) Authenticate(ctx context.Context, token string) (session.Session, error) {
	sess, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, isessionrepo.ErrNotFound) {
			return session.Session{}, ErrInvalidSession
		}
		return session.Session{}, fmt.Errorf("error getting session: %w", err)
	}

	if sess.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(ctx, token); err != nil {
			return session.Session{}, fmt.Errorf("error deleting expired session: %w", err)
		}
		return session.Session{}, ErrInvalidSession
	}

	return *sess, nil
}

// GetUser returns the account behind a resolved session.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, iuserrepo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return u, nil
}

// Logout revokes the session. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.Delete(ctx, token); err != nil && !errors.Is(err, isessionrepo.ErrNotFound) {
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

// PurgeExpired removes all sessions past their expiry and reports how
// many were dropped.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("error purging sessions: %w", err)
	}

	return n, nil
}
