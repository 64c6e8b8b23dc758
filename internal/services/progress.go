package services

import (
	"context"

	"github.com/mlevkov/gamebackend/internal/logger"
	"github.com/mlevkov/gamebackend/internal/models"
)

// ProgressReader defines read-only operations for level progress.
type ProgressReader interface {
	GetByUserAndLevel(ctx context.Context, userID, levelNumber int64) (*models.ProgressDB, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.ProgressDB, error)
}

// ProgressWriter defines write operations for level progress.
type ProgressWriter interface {
	Insert(ctx context.Context, userID, levelNumber int64, stars int) error
	UpdateStars(ctx context.Context, userID, levelNumber int64, stars int) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// SaveResult describes the outcome of a save-progress call.
type SaveResult int

const (
	// SaveCreated means no row existed for the pair and one was inserted.
	SaveCreated SaveResult = iota
	// SaveUpdated means the new star count beat the stored one.
	SaveUpdated
	// SaveUnchanged means the stored star count was equal or higher.
	SaveUnchanged
)

// ProgressService handles reading and saving per-level progress.
type ProgressService struct {
	reader ProgressReader
	writer ProgressWriter
}

// NewProgressService creates a new ProgressService instance.
func NewProgressService(reader ProgressReader, writer ProgressWriter) *ProgressService {
	return &ProgressService{
		reader: reader,
		writer: writer,
	}
}

// List returns all progress rows for a user in insertion order.
func (svc *ProgressService) List(ctx context.Context, userID int64) ([]models.ProgressDB, error) {
	progress, err := svc.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list progress", "user_id", userID, "err", err)
		return nil, err
	}
	return progress, nil
}

// Save applies the keep-the-higher-score rule for a (user, level) pair: insert
// when no row exists, update only when the new star count is strictly greater,
// otherwise leave the row alone. The read and the write are separate store
// calls; two saves for the same pair can interleave between them.
func (svc *ProgressService) Save(ctx context.Context, userID, levelNumber int64, stars int) (SaveResult, error) {
	existing, err := svc.reader.GetByUserAndLevel(ctx, userID, levelNumber)
	if err != nil {
		logger.Log.Errorw("failed to read progress", "user_id", userID, "level", levelNumber, "err", err)
		return 0, err
	}

	if existing == nil {
		if err := svc.writer.Insert(ctx, userID, levelNumber, stars); err != nil {
			logger.Log.Errorw("failed to insert progress", "user_id", userID, "level", levelNumber, "err", err)
			return 0, err
		}
		return SaveCreated, nil
	}

	if stars > existing.Stars {
		if err := svc.writer.UpdateStars(ctx, userID, levelNumber, stars); err != nil {
			logger.Log.Errorw("failed to update progress", "user_id", userID, "level", levelNumber, "err", err)
			return 0, err
		}
		return SaveUpdated, nil
	}

	return SaveUnchanged, nil
}
