package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mlevkov/gamebackend/internal/logger"
	"github.com/mlevkov/gamebackend/internal/models"
	"github.com/mlevkov/gamebackend/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (*models.UserDB, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return the user's id, username and email
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.UserResponse "Authenticated user"
// @Failure 400 {object} handlers.ErrorResponse "Missing username or password"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Please enter username and password",
			})
			return
		}

		if req.Username == "" || req.Password == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Please enter username and password",
			})
			return
		}

		user, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			// Unknown username and wrong password share one response on purpose.
			if errors.Is(err, services.ErrInvalidCredentials) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Invalid username or password",
				})
				return
			}

			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Server error. Please try again.",
			})
			return
		}

		json.NewEncoder(w).Encode(UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}
