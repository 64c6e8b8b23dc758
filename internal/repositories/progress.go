package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mlevkov/gamebackend/internal/models"
)

// ProgressReadRepository provides lookups over the user_progress table.
type ProgressReadRepository struct {
	db *sqlx.DB
}

func NewProgressReadRepository(db *sqlx.DB) *ProgressReadRepository {
	return &ProgressReadRepository{db: db}
}

// GetByUserAndLevel returns the progress row for the (user, level) pair, or
// nil if the user has not saved that level yet.
func (r *ProgressReadRepository) GetByUserAndLevel(ctx context.Context, userID, levelNumber int64) (*models.ProgressDB, error) {
	const query = `
		SELECT id, user_id, level_number, stars, completed
		FROM user_progress
		WHERE user_id = ? AND level_number = ?
	`
	args := []any{userID, levelNumber}

	var progress models.ProgressDB
	err := r.db.GetContext(ctx, &progress, query, args...)
	logQuery(query, args, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListByUserID returns all progress rows for a user in insertion order.
// A user with no progress yields an empty slice, not an error.
func (r *ProgressReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.ProgressDB, error) {
	const query = `
		SELECT id, user_id, level_number, stars, completed
		FROM user_progress
		WHERE user_id = ?
		ORDER BY id
	`

	progress := []models.ProgressDB{}
	err := r.db.SelectContext(ctx, &progress, query, userID)
	logQuery(query, []any{userID}, err)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// ProgressWriteRepository provides mutations over the user_progress table.
type ProgressWriteRepository struct {
	db *sqlx.DB
}

func NewProgressWriteRepository(db *sqlx.DB) *ProgressWriteRepository {
	return &ProgressWriteRepository{db: db}
}

// Insert creates the first progress row for a (user, level) pair with the
// completed flag set.
func (r *ProgressWriteRepository) Insert(ctx context.Context, userID, levelNumber int64, stars int) error {
	const query = `
		INSERT INTO user_progress (user_id, level_number, stars, completed)
		VALUES (?, ?, ?, 1)
	`
	args := []any{userID, levelNumber, stars}

	_, err := execer(ctx, r.db).ExecContext(ctx, query, args...)
	logQuery(query, args, err)
	return err
}

// UpdateStars overwrites the star count for an existing (user, level) pair and
// sets the completed flag.
func (r *ProgressWriteRepository) UpdateStars(ctx context.Context, userID, levelNumber int64, stars int) error {
	const query = `
		UPDATE user_progress
		SET stars = ?, completed = 1
		WHERE user_id = ? AND level_number = ?
	`
	args := []any{stars, userID, levelNumber}

	_, err := execer(ctx, r.db).ExecContext(ctx, query, args...)
	logQuery(query, args, err)
	return err
}

// DeleteByUserID removes every progress row belonging to a user.
func (r *ProgressWriteRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	const query = `
		DELETE FROM user_progress
		WHERE user_id = ?
	`

	_, err := execer(ctx, r.db).ExecContext(ctx, query, userID)
	logQuery(query, []any{userID}, err)
	return err
}
