package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gramline/gramline/internal/ctxkeys"
	"github.com/gramline/gramline/internal/dto"
	"github.com/gramline/gramline/internal/service"
)

type likeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *likeHandler {
	return &likeHandler{likeService: likeService}
}

type likeRequest struct {
	PostID    *string `json:"post_id"`
	StoryID   *string `json:"story_id"`
	CommentID *string `json:"comment_id"`
}

func (h *likeHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	var req likeRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	like, err := h.likeService.Like(viewer.ID, req.PostID, req.StoryID, req.CommentID)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("like created", "like_id", like.ID, "user_id", viewer.ID)
	writeJSON(w, http.StatusCreated, dto.NewLike(like))
}

func (h *likeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	likeID := r.PathValue("id")

	err := h.likeService.Unlike(viewer.ID, likeID)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("like removed", "like_id", likeID, "user_id", viewer.ID)
	w.WriteHeader(http.StatusNoContent)
}
