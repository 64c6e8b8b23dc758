package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlevkov/gamebackend/internal/logger"
	"github.com/mlevkov/gamebackend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, password, email string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
	}
}

// Register creates a new user with a hashed password. The username check runs
// before the email check; the order is part of the contract.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) (*models.UserDB, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	id, err := svc.writer.Save(ctx, username, string(hashedPassword), email)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	return &models.UserDB{ID: id, Username: username, Email: email}, nil
}

// Login authenticates a user and returns the stored user on success.
// An unknown username and a wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		// A malformed digest is a server fault, not a bad password.
		logger.Log.Errorw("failed to compare password", "err", err)
		return nil, err
	}

	return user, nil
}
