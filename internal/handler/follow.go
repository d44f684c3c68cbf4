package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gramline/gramline/internal/ctxkeys"
	"github.com/gramline/gramline/internal/service"
)

type followHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *followHandler {
	return &followHandler{followService: followService}
}

type followRequest struct {
	FollowingID string `json:"following_id"`
}

type followResponse struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *followHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	var req followRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FollowingID == "" {
		writeMessage(w, http.StatusBadRequest, "following_id is required")
		return
	}

	follow, err := h.followService.Follow(viewer.ID, req.FollowingID)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("follow created", "follower_id", viewer.ID, "following_id", req.FollowingID)
	writeJSON(w, http.StatusCreated, followResponse{
		ID:          follow.ID,
		FollowerID:  follow.FollowerID,
		FollowingID: follow.FollowingID,
		CreatedAt:   follow.CreatedAt,
	})
}

func (h *followHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	followingID := r.PathValue("following_id")

	err := h.followService.Unfollow(viewer.ID, followingID)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("follow removed", "follower_id", viewer.ID, "following_id", followingID)
	w.WriteHeader(http.StatusNoContent)
}
