package services

import (
	"context"

	"github.com/mlevkov/gamebackend/internal/logger"
	"github.com/mlevkov/gamebackend/internal/models"
)

// UserService handles user lookup and removal.
type UserService struct {
	reader         UserReader
	writer         UserWriter
	progressWriter ProgressWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, progressWriter ProgressWriter) *UserService {
	return &UserService{
		reader:         reader,
		writer:         writer,
		progressWriter: progressWriter,
	}
}

// Get returns the user with the given id.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes a user's progress rows and then the user row. The delete-user
// route runs under a request transaction, so a failure in either statement
// leaves the store unchanged. No existence check is performed; deleting an
// unknown id succeeds.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	if err := svc.progressWriter.DeleteByUserID(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete user progress", "id", id, "err", err)
		return err
	}
	if err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete user", "id", id, "err", err)
		return err
	}
	return nil
}
