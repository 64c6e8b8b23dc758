package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mlevkov/gamebackend/internal/models"
)

// ProgressLister defines the interface that the progress listing service must implement.
type ProgressLister interface {
	List(ctx context.Context, userID int64) ([]models.ProgressDB, error)
}

// ProgressResponse represents one level's progress in the get-progress body
// swagger:model ProgressResponse
type ProgressResponse struct {
	// Level number
	// default: 1
	LevelNumber int64 `json:"level_number"`

	// Best star count for the level
	// default: 3
	Stars int `json:"stars"`

	// Whether the level has been completed
	// default: true
	Completed bool `json:"completed"`
}

// NewGetProgressHandler returns an HTTP handler that lists a user's level progress.
// @Summary Get user progress
// @Description Returns every saved level for a user in insertion order. A user with no progress yields an empty array.
// @Tags progress
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} handlers.ProgressResponse "Progress rows"
// @Failure 400 {object} handlers.ErrorResponse "Read error"
// @Router /progress/{userId} [get]
func NewGetProgressHandler(svc ProgressLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		progress, err := svc.List(r.Context(), userID)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		resp := make([]ProgressResponse, 0, len(progress))
		for _, p := range progress {
			resp = append(resp, ProgressResponse{
				LevelNumber: p.LevelNumber,
				Stars:       p.Stars,
				Completed:   p.Completed,
			})
		}

		json.NewEncoder(w).Encode(resp)
	}
}
