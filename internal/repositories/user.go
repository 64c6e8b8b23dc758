package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mlevkov/gamebackend/internal/models"
)

// UserReadRepository provides point lookups over the users table.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil if no such row exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password, email
		FROM users
		WHERE id = ?
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id)
	logQuery(query, []any{id}, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns the user with the given username, password digest
// included, or nil if no such row exists.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password, email
		FROM users
		WHERE username = ?
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)
	logQuery(query, []any{username}, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns the user with the given email, or nil if no such row exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password, email
		FROM users
		WHERE email = ?
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)
	logQuery(query, []any{email}, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository provides mutations over the users table.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the assigned id. The password argument
// must already be a digest.
func (r *UserWriteRepository) Save(ctx context.Context, username, password, email string) (int64, error) {
	const query = `
		INSERT INTO users (username, password, email)
		VALUES (?, ?, ?)
	`
	args := []any{username, password, email}

	res, err := execer(ctx, r.db).ExecContext(ctx, query, args...)
	logQuery(query, args, err)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes the user row with the given id. Deleting an id that does not
// exist is not an error.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `
		DELETE FROM users
		WHERE id = ?
	`

	_, err := execer(ctx, r.db).ExecContext(ctx, query, id)
	logQuery(query, []any{id}, err)
	return err
}
