package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// UserDeleter defines the interface that the user removal service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// NewDeleteUserHandler returns an HTTP handler that removes a user and all of
// its progress rows. The route runs under TxMiddleware, so both deletes commit
// or roll back together. Deleting an id that never existed still succeeds.
// @Summary Delete user
// @Description Removes the user and every progress row belonging to it in one transaction
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} handlers.MessageResponse "User deleted"
// @Failure 400 {object} handlers.ErrorResponse "Delete error"
// @Router /user/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		json.NewEncoder(w).Encode(MessageResponse{Message: "User deleted"})
	}
}
