package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gramline/gramline/internal/ctxkeys"
	"github.com/gramline/gramline/internal/dto"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/service"
)

type commentHandler struct {
	commentService *service.CommentService
	resolve        dto.MediaResolver
}

func NewCommentHandler(commentService *service.CommentService, resolve dto.MediaResolver) *commentHandler {
	return &commentHandler{
		commentService: commentService,
		resolve:        resolve,
	}
}

type commentRequest struct {
	PostID  *string `json:"post_id"`
	StoryID *string `json:"story_id"`
	Text    string  `json:"text"`
}

func (h *commentHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	var req commentRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.Create(viewer.ID, req.PostID, req.StoryID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("comment created", "comment_id", comment.ID, "user_id", viewer.ID)
	writeJSON(w, http.StatusCreated, dto.NewComment(comment, viewer, h.resolve))
}

func (h *commentHandler) ForPost(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	rows, err := h.commentService.ForPost(viewer.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeList(w, rows)
}

func (h *commentHandler) ForStory(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	rows, err := h.commentService.ForStory(viewer.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeList(w, rows)
}

func (h *commentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	commentID := r.PathValue("id")

	err := h.commentService.Delete(viewer.ID, commentID)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("comment deleted", "comment_id", commentID, "user_id", viewer.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *commentHandler) writeList(w http.ResponseWriter, rows []*repository.CommentRow) {
	comments := make([]dto.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, dto.NewCommentFromRow(row, h.resolve))
	}
	writeJSON(w, http.StatusOK, comments)
}
