package models

// UserDB represents a row in the users table.
type UserDB struct {
	ID       int64  `db:"id"`       // Surrogate primary key
	Username string `db:"username"` // Unique username
	Password string `db:"password"` // Bcrypt digest, never plaintext
	Email    string `db:"email"`    // Unique email
}
