package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"contact-manager/internal/model"
	"contact-manager/pkg/apierror"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Search(ctx context.Context, email string, username string) (model.User, error) {
	args := m.Called(ctx, email, username)
	return args.Get(0).(model.User), args.Error(1)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	req := model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}

	t.Run("issues a token without a role claim", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewAuthService("test-secret", time.Hour, store)

		store.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
		store.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Username == "alice" && u.Role == model.RoleUser && u.PasswordHash != "secret123"
		})).Return(nil)

		token, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.NotEmpty(t, claims.UserID)
		assert.Empty(t, claims.Role)

		store.AssertExpectations(t)
	})

	t.Run("rejects duplicate username or email", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewAuthService("test-secret", time.Hour, store)

		store.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.True(t, apierror.HasStatus(err, http.StatusBadRequest))
		assert.Contains(t, err.Error(), "username or email already in use")

		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("defaults role to user and keeps an explicit admin role", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewAuthService("test-secret", time.Hour, store)

		adminReq := req
		adminReq.Role = "admin"

		store.On("ExistsByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		store.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Role == model.RoleAdmin
		})).Return(nil)

		_, err := svc.Register(context.Background(), adminReq)
		require.NoError(t, err)

		store.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	user := model.User{
		ID:       "2c2e21d4-9e7b-4fae-9be9-3de7500c1f6e",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.RoleAdmin,
	}

	t.Run("issues a token embedding the role", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewAuthService("test-secret", time.Hour, store)

		user := user
		user.PasswordHash = hashPassword(t, "secret123")
		store.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		token, err := svc.Login(context.Background(), "alice", "secret123")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewAuthService("test-secret", time.Hour, store)

		store.On("FindByUsername", mock.Anything, "ghost").
			Return(model.User{}, apierror.NotFound("user not found"))

		known := user
		known.PasswordHash = hashPassword(t, "secret123")
		store.On("FindByUsername", mock.Anything, "alice").Return(known, nil)

		_, errUnknown := svc.Login(context.Background(), "ghost", "whatever")
		_, errWrongPass := svc.Login(context.Background(), "alice", "not-the-password")

		require.Error(t, errUnknown)
		require.Error(t, errWrongPass)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
		assert.True(t, apierror.HasStatus(errUnknown, http.StatusBadRequest))
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Run("rejects an expired token", func(t *testing.T) {
		store := new(mockUserStore)
		expired := NewAuthService("test-secret", -time.Minute, store)

		user := model.User{ID: "2c2e21d4-9e7b-4fae-9be9-3de7500c1f6e", Username: "alice", Role: model.RoleUser}
		user.PasswordHash = hashPassword(t, "secret123")
		store.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		token, err := expired.Login(context.Background(), "alice", "secret123")
		require.NoError(t, err)

		_, err = expired.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, apierror.HasStatus(err, http.StatusUnauthorized))
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		store := new(mockUserStore)
		issuer := NewAuthService("secret-a", time.Hour, store)
		verifier := NewAuthService("secret-b", time.Hour, store)

		user := model.User{ID: "2c2e21d4-9e7b-4fae-9be9-3de7500c1f6e", Username: "alice", Role: model.RoleUser}
		user.PasswordHash = hashPassword(t, "secret123")
		store.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		token, err := issuer.Login(context.Background(), "alice", "secret123")
		require.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc := NewAuthService("test-secret", time.Hour, new(mockUserStore))

		_, err := svc.ValidateToken("not-a-token")
		require.Error(t, err)
		assert.True(t, apierror.HasStatus(err, http.StatusUnauthorized))
	})
}

func TestAuthService_Search(t *testing.T) {
	t.Run("requires at least one filter", func(t *testing.T) {
		svc := NewAuthService("test-secret", time.Hour, new(mockUserStore))

		_, err := svc.Search(context.Background(), "", "")
		require.Error(t, err)
		assert.True(t, apierror.HasStatus(err, http.StatusBadRequest))
	})

	t.Run("returns a redacted projection", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewAuthService("test-secret", time.Hour, store)

		stored := model.User{
			ID:           "2c2e21d4-9e7b-4fae-9be9-3de7500c1f6e",
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$12$definitely-not-for-clients",
			Role:         model.RoleUser,
		}
		store.On("Search", mock.Anything, "alice@", "").Return(stored, nil)

		found, err := svc.Search(context.Background(), "alice@", "")
		require.NoError(t, err)
		assert.Equal(t, model.PublicUser{
			ID:       stored.ID,
			Username: "alice",
			Email:    "alice@example.com",
			Role:     model.RoleUser,
		}, found)
	})
}
