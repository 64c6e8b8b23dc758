package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mlevkov/gamebackend/internal/models"
	"github.com/mlevkov/gamebackend/internal/services"
)

// UserGetter defines the interface that the user lookup service must implement.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.UserDB, error)
}

// NewGetUserHandler returns an HTTP handler that fetches a user by id.
// No authentication is performed; callers are trusted with any id.
// @Summary Get user data
// @Description Returns the id, username and email for a user
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} handlers.UserResponse "User data"
// @Failure 400 {object} handlers.ErrorResponse "Read error"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /user/{id} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "User not found",
				})
				return
			}

			// Read-style endpoint: the raw store error is echoed at 400.
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		json.NewEncoder(w).Encode(UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}
