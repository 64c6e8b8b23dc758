package handlers

// ErrorResponse is the uniform error body for every endpoint
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Server error. Please try again later.
	Error string `json:"error"`
}

// UserResponse is the public view of a user; the password digest is never included
// swagger:model UserResponse
type UserResponse struct {
	// User id
	// default: 1
	ID int64 `json:"id"`

	// Username
	// default: john_doe
	Username string `json:"username"`

	// Email
	// default: john@example.com
	Email string `json:"email"`
}

// MessageResponse carries a fixed confirmation message
// swagger:model MessageResponse
type MessageResponse struct {
	// Confirmation message
	// default: User deleted
	Message string `json:"message"`
}
