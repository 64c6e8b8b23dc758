package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mlevkov/gamebackend/internal/services"
)

// ProgressSaver defines the interface that the progress saving service must implement.
type ProgressSaver interface {
	Save(ctx context.Context, userID, levelNumber int64, stars int) (services.SaveResult, error)
}

// SaveProgressRequest represents the JSON body for saving level progress
// swagger:model SaveProgressRequest
type SaveProgressRequest struct {
	// User id
	// required: true
	// default: 1
	UserID int64 `json:"user_id"`

	// Level number
	// required: true
	// default: 1
	LevelNumber int64 `json:"level_number"`

	// Star count earned in this run
	// default: 3
	Stars int `json:"stars"`
}

// NewSaveProgressHandler returns an HTTP handler that records level progress.
// Scores never regress: a save only writes when it beats the stored star count.
// @Summary Save level progress
// @Description Inserts progress for a new (user, level) pair, or updates it when the new star count is strictly higher.
// @Tags progress
// @Accept json
// @Produce json
// @Param saveProgressRequest body handlers.SaveProgressRequest true "Progress to save"
// @Success 200 {object} handlers.MessageResponse "Outcome message"
// @Failure 400 {object} handlers.ErrorResponse "Save error"
// @Router /save-progress [post]
func NewSaveProgressHandler(svc ProgressSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveProgressRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		result, err := svc.Save(r.Context(), req.UserID, req.LevelNumber, req.Stars)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		var message string
		switch result {
		case services.SaveCreated:
			message = "New progress saved successfully"
		case services.SaveUpdated:
			message = "Progress updated with higher score"
		case services.SaveUnchanged:
			message = "Existing score is higher, no changes made"
		}

		json.NewEncoder(w).Encode(MessageResponse{Message: message})
	}
}
