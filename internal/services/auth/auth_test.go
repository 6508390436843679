package auth

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sea-catering/internal/lib/password"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Register(t *testing.T) {
	req := models.DummyRegister{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Password: "correct-horse",
	}

	t.Run("успешная регистрация с ролью user и хэшем пароля", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
			return user.Role == models.RoleUser &&
				user.Email == req.Email &&
				user.PasswordHash != req.Password &&
				password.CompareHash(user.PasswordHash, req.Password) == nil
		})).Return("user-uid", nil)

		svc := New(repo, newNoopLogger())
		uid, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "user-uid", uid)
	})

	t.Run("занятый email", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateUser", mock.Anything, mock.Anything).
			Return("", &pgconn.PgError{Code: "23505"})

		svc := New(repo, newNoopLogger())
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("correct-horse")
	require.NoError(t, err)

	stored := &models.User{
		UID:          "user-uid",
		Name:         "Budi Santoso",
		Email:        "budi@example.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	t.Run("успешный вход", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByEmail", mock.Anything, "budi@example.com").Return(stored, nil)

		svc := New(repo, newNoopLogger())
		got, err := svc.Login(context.Background(),
			models.DummyLogin{Email: "budi@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "user-uid", got.UID)
		assert.Equal(t, models.RoleUser, got.Role)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByEmail", mock.Anything, "budi@example.com").Return(stored, nil)

		svc := New(repo, newNoopLogger())
		_, err := svc.Login(context.Background(),
			models.DummyLogin{Email: "budi@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("несуществующий email неотличим от неверного пароля", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

		svc := New(repo, newNoopLogger())
		_, err := svc.Login(context.Background(),
			models.DummyLogin{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
