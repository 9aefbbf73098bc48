package authService

import (
	"MeridianBackend/internal/api/auth"
	authRepository "MeridianBackend/internal/api/auth/repository"
	"MeridianBackend/internal/entity"
	"MeridianBackend/pkg/bcrypt"
	"MeridianBackend/pkg/redis"
	"MeridianBackend/pkg/utils"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsersStore struct {
	byEmailFn func(ctx context.Context, email string) (entity.User, error)
	byIDFn    func(ctx context.Context, id string) (entity.User, error)
}

func (f *fakeUsersStore) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	return f.byEmailFn(ctx, email)
}

func (f *fakeUsersStore) GetUserByID(ctx context.Context, id string) (entity.User, error) {
	return f.byIDFn(ctx, id)
}

type fakeAuthRepository struct {
	store *fakeUsersStore
}

func (f *fakeAuthRepository) NewClient(tx bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeSessions struct {
	stored  map[string]string
	setErr  error
	deleted []string
	delErr  error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{stored: map[string]string{}}
}

func (f *fakeSessions) SetSession(ctx context.Context, sessionID, userID string, expiration time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.stored[sessionID] = userID
	return nil
}

func (f *fakeSessions) GetSession(ctx context.Context, sessionID string) (string, error) {
	userID, ok := f.stored[sessionID]
	if !ok {
		return "", redis.ErrSessionNotFound
	}
	return userID, nil
}

func (f *fakeSessions) DeleteSession(ctx context.Context, sessionID string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, sessionID)
	delete(f.stored, sessionID)
	return nil
}

func newTestAuthService(t *testing.T, repo *fakeAuthRepository, sessions *fakeSessions) *authService {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, ok := New(logger, repo, sessions, bcrypt.NewWithCost(4), utils.New()).(*authService)
	require.True(t, ok)
	svc.now = func() time.Time {
		return time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	}

	return svc
}

func hashFor(t *testing.T, password string) string {
	t.Helper()

	hashed, err := bcrypt.NewWithCost(4).HashPassword(password)
	require.NoError(t, err)
	return hashed
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	storedUser := entity.User{
		ID:        "01USER",
		Email:     "ayu@example.com",
		Name:      "Ayu",
		Password:  hashFor(t, "correct-horse"),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("valid credentials return a token and store a session", func(t *testing.T) {
		sessions := newFakeSessions()
		repo := &fakeAuthRepository{store: &fakeUsersStore{
			byEmailFn: func(ctx context.Context, email string) (entity.User, error) {
				return storedUser, nil
			},
		}}
		svc := newTestAuthService(t, repo, sessions)

		resp, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "ayu@example.com",
			Password: "correct-horse",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
		assert.Equal(t, "01USER", resp.User.ID)
		assert.Len(t, sessions.stored, 1)
		for _, userID := range sessions.stored {
			assert.Equal(t, "01USER", userID)
		}
	})

	t.Run("unknown email and wrong password look identical to the caller", func(t *testing.T) {
		sessions := newFakeSessions()
		repo := &fakeAuthRepository{store: &fakeUsersStore{
			byEmailFn: func(ctx context.Context, email string) (entity.User, error) {
				return entity.User{}, auth.ErrUserNotFound
			},
		}}
		svc := newTestAuthService(t, repo, sessions)

		_, unknownErr := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-pass",
		})

		repo.store.byEmailFn = func(ctx context.Context, email string) (entity.User, error) {
			return storedUser, nil
		}

		_, wrongErr := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "ayu@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, unknownErr, auth.ErrInvalidEmailOrPassword)
		assert.ErrorIs(t, wrongErr, auth.ErrInvalidEmailOrPassword)
		assert.Empty(t, sessions.stored)
	})

	t.Run("session store failure fails the login", func(t *testing.T) {
		sessions := newFakeSessions()
		sessions.setErr = errors.New("redis down")
		repo := &fakeAuthRepository{store: &fakeUsersStore{
			byEmailFn: func(ctx context.Context, email string) (entity.User, error) {
				return storedUser, nil
			},
		}}
		svc := newTestAuthService(t, repo, sessions)

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "ayu@example.com",
			Password: "correct-horse",
		})

		assert.ErrorIs(t, err, auth.ErrLoginFailed)
	})
}

func TestLogout(t *testing.T) {
	t.Run("logout removes the session", func(t *testing.T) {
		sessions := newFakeSessions()
		sessions.stored["01SESSION"] = "01USER"
		svc := newTestAuthService(t, &fakeAuthRepository{store: &fakeUsersStore{}}, sessions)

		err := svc.Logout(context.Background(), "01SESSION")

		require.NoError(t, err)
		assert.Empty(t, sessions.stored)

		_, err = sessions.GetSession(context.Background(), "01SESSION")
		assert.ErrorIs(t, err, redis.ErrSessionNotFound)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		sessions := newFakeSessions()
		sessions.delErr = errors.New("redis down")
		svc := newTestAuthService(t, &fakeAuthRepository{store: &fakeUsersStore{}}, sessions)

		err := svc.Logout(context.Background(), "01SESSION")

		assert.Error(t, err)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("profile never exposes the password hash", func(t *testing.T) {
		repo := &fakeAuthRepository{store: &fakeUsersStore{
			byIDFn: func(ctx context.Context, id string) (entity.User, error) {
				return entity.User{
					ID:       "01USER",
					Email:    "ayu@example.com",
					Name:     "Ayu",
					Password: "$2a$04$secret",
				}, nil
			},
		}}
		svc := newTestAuthService(t, repo, newFakeSessions())

		profile, err := svc.GetProfile(context.Background(), "01USER")

		require.NoError(t, err)
		assert.Equal(t, "01USER", profile.ID)
		assert.Equal(t, "Ayu", profile.Name)
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		repo := &fakeAuthRepository{store: &fakeUsersStore{
			byIDFn: func(ctx context.Context, id string) (entity.User, error) {
				return entity.User{}, auth.ErrUserNotFound
			},
		}}
		svc := newTestAuthService(t, repo, newFakeSessions())

		_, err := svc.GetProfile(context.Background(), "missing")

		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}
