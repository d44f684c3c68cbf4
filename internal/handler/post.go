package handler

import (
	"log/slog"
	"net/http"

	"github.com/gramline/gramline/internal/config"
	"github.com/gramline/gramline/internal/ctxkeys"
	"github.com/gramline/gramline/internal/dto"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/service"
)

const maxUploadBytes = 64 << 20

type postHandler struct {
	postService *service.PostService
	cfg         *config.Config
	resolve     dto.MediaResolver
}

func NewPostHandler(postService *service.PostService, cfg *config.Config, resolve dto.MediaResolver) *postHandler {
	return &postHandler{
		postService: postService,
		cfg:         cfg,
		resolve:     resolve,
	}
}

func (h *postHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	post, err := h.postService.Create(
		viewer.ID,
		r.FormValue("caption"),
		fileHeader(r, "image"),
		fileHeader(r, "video"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("post created", "post_id", post.ID, "user_id", viewer.ID)
	writeJSON(w, http.StatusCreated, dto.NewPost(post, viewer, h.resolve))
}

// OpenFeed lists posts from open profiles, newest first. An empty feed is
// still a 200 so clients can tell "nothing here" from "gone".
func (h *postHandler) OpenFeed(w http.ResponseWriter, r *http.Request) {
	pageNum, pageSize, offset := pageParams(r, h.cfg)

	rows, count, err := h.postService.OpenFeed(pageSize, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeFeed(w, rows, count, pageNum, pageSize)
}

// PrivateFeed lists posts from private profiles the viewer follows, plus
// the viewer's own.
func (h *postHandler) PrivateFeed(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	pageNum, pageSize, offset := pageParams(r, h.cfg)

	rows, count, err := h.postService.PrivateFeed(viewer.ID, pageSize, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeFeed(w, rows, count, pageNum, pageSize)
}

func (h *postHandler) OpenDetail(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	post, owner, err := h.postService.OpenDetail(viewer.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewPost(post, owner, h.resolve))
}

func (h *postHandler) PrivateDetail(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	post, owner, err := h.postService.PrivateDetail(viewer.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewPost(post, owner, h.resolve))
}

func (h *postHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	post, err := h.postService.Update(
		viewer.ID,
		r.PathValue("id"),
		optionalString(r, "caption"),
		fileHeader(r, "image"),
		fileHeader(r, "video"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("post updated", "post_id", post.ID, "user_id", viewer.ID)
	writeJSON(w, http.StatusOK, dto.NewPost(post, viewer, h.resolve))
}

func (h *postHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	postID := r.PathValue("id")

	err := h.postService.Delete(viewer.ID, postID)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("post deleted", "post_id", postID, "user_id", viewer.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *postHandler) writeFeed(w http.ResponseWriter, rows []*repository.PostRow, count, pageNum, pageSize int) {
	if count == 0 {
		writeMessage(w, http.StatusOK, "no posts available")
		return
	}

	posts := make([]dto.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, dto.NewPostFromRow(row, h.resolve))
	}

	writeJSON(w, http.StatusOK, page{
		Count:    count,
		Page:     pageNum,
		PageSize: pageSize,
		Results:  posts,
	})
}
