package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mlevkov/gamebackend/internal/models"
	"github.com/mlevkov/gamebackend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		var storedPassword string
		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
		mockWriter.EXPECT().
			Save(gomock.Any(), "alice", gomock.Any(), "alice@example.com").
			DoAndReturn(func(_ context.Context, _, password, _ string) (int64, error) {
				storedPassword = password
				return 1, nil
			})

		user, err := svc.Register(ctx, "alice", "secret123", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Empty(t, user.Password)

		// The stored value is a digest, never the plaintext.
		assert.NotEqual(t, "secret123", storedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte("secret123")))
	})

	t.Run("username already taken", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().GetByUsername(gomock.Any(), "bob").Return(&models.UserDB{ID: 7}, nil)

		user, err := svc.Register(ctx, "bob", "pass", "bob@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, services.ErrUsernameTaken)
	})

	t.Run("email already registered", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().GetByUsername(gomock.Any(), "carol").Return(nil, nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), "carol@example.com").Return(&models.UserDB{ID: 8}, nil)

		user, err := svc.Register(ctx, "carol", "pass", "carol@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, services.ErrEmailTaken)
	})

	t.Run("username check error", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().GetByUsername(gomock.Any(), "dave").Return(nil, errors.New("db error"))

		user, err := svc.Register(ctx, "dave", "pass", "dave@example.com")
		assert.Nil(t, user)
		assert.EqualError(t, err, "db error")
	})

	t.Run("insert failure is wrapped", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().GetByUsername(gomock.Any(), "eve").Return(nil, nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), "eve@example.com").Return(nil, nil)
		mockWriter.EXPECT().
			Save(gomock.Any(), "eve", gomock.Any(), "eve@example.com").
			Return(int64(0), errors.New("disk full"))

		user, err := svc.Register(ctx, "eve", "pass", "eve@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, services.ErrRegistrationFailed)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	digest, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("successful login", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&models.UserDB{
			ID:       1,
			Username: "alice",
			Password: string(digest),
			Email:    "alice@example.com",
		}, nil)

		user, err := svc.Login(ctx, "alice", "secret123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		user, err := svc.Login(ctx, "ghost", "secret123")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&models.UserDB{
			ID:       1,
			Username: "alice",
			Password: string(digest),
		}, nil)

		user, err := svc.Login(ctx, "alice", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("malformed digest is a server error", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&models.UserDB{
			ID:       1,
			Username: "alice",
			Password: "not-a-bcrypt-digest",
		}, nil)

		user, err := svc.Login(ctx, "alice", "secret123")
		assert.Nil(t, user)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, errors.New("db error"))

		user, err := svc.Login(ctx, "alice", "secret123")
		assert.Nil(t, user)
		assert.EqualError(t, err, "db error")
	})
}
