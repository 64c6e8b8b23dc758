package models

// ProgressDB represents a row in the user_progress table.
// At most one row exists per (user_id, level_number) pair.
type ProgressDB struct {
	ID          int64 `db:"id"`
	UserID      int64 `db:"user_id"`
	LevelNumber int64 `db:"level_number"`
	Stars       int   `db:"stars"`     // Best star count so far, never regresses
	Completed   bool  `db:"completed"` // Set on first save and on every update
}
