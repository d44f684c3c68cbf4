package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gramline/gramline/internal/config"
	"github.com/gramline/gramline/internal/ctxkeys"
	"github.com/gramline/gramline/internal/dto"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/service"
)

type storyHandler struct {
	storyService *service.StoryService
	cfg          *config.Config
	resolve      dto.MediaResolver
}

func NewStoryHandler(storyService *service.StoryService, cfg *config.Config, resolve dto.MediaResolver) *storyHandler {
	return &storyHandler{
		storyService: storyService,
		cfg:          cfg,
		resolve:      resolve,
	}
}

func (h *storyHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	story, err := h.storyService.Create(
		viewer.ID,
		r.FormValue("caption"),
		fileHeader(r, "image"),
		fileHeader(r, "video"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("story created", "story_id", story.ID, "user_id", viewer.ID)
	writeJSON(w, http.StatusCreated, dto.NewStory(story, viewer, h.resolve))
}

type storyBatchRequest struct {
	Stories []struct {
		Caption string `json:"caption"`
	} `json:"stories"`
}

// CreateBatch inserts several text-only stories at once. All or nothing:
// one bad caption fails the whole batch.
func (h *storyHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	var req storyBatchRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Stories) == 0 {
		writeMessage(w, http.StatusBadRequest, "stories list is empty")
		return
	}

	captions := make([]string, 0, len(req.Stories))
	for _, s := range req.Stories {
		captions = append(captions, s.Caption)
	}

	stories, err := h.storyService.CreateBatch(viewer.ID, captions)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]dto.Story, 0, len(stories))
	for _, story := range stories {
		out = append(out, dto.NewStory(story, viewer, h.resolve))
	}

	slog.Info("story batch created", "count", len(out), "user_id", viewer.ID)
	writeJSON(w, http.StatusCreated, out)
}

func (h *storyHandler) OpenFeed(w http.ResponseWriter, r *http.Request) {
	pageNum, pageSize, offset := pageParams(r, h.cfg)

	rows, count, err := h.storyService.OpenFeed(pageSize, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeFeed(w, rows, count, pageNum, pageSize)
}

func (h *storyHandler) PrivateFeed(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	pageNum, pageSize, offset := pageParams(r, h.cfg)

	rows, count, err := h.storyService.PrivateFeed(viewer.ID, pageSize, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeFeed(w, rows, count, pageNum, pageSize)
}

func (h *storyHandler) OpenDetail(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	story, owner, err := h.storyService.OpenDetail(viewer.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewStory(story, owner, h.resolve))
}

func (h *storyHandler) PrivateDetail(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	story, owner, err := h.storyService.PrivateDetail(viewer.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewStory(story, owner, h.resolve))
}

func (h *storyHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	story, err := h.storyService.Update(
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

	slog.Info("story updated", "story_id", story.ID, "user_id", viewer.ID)
	writeJSON(w, http.StatusOK, dto.NewStory(story, viewer, h.resolve))
}

func (h *storyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	storyID := r.PathValue("id")

	err := h.storyService.Delete(viewer.ID, storyID)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("story deleted", "story_id", storyID, "user_id", viewer.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *storyHandler) writeFeed(w http.ResponseWriter, rows []*repository.StoryRow, count, pageNum, pageSize int) {
	if count == 0 {
		writeMessage(w, http.StatusOK, "no stories available")
		return
	}

	stories := make([]dto.Story, 0, len(rows))
	for _, row := range rows {
		stories = append(stories, dto.NewStoryFromRow(row, h.resolve))
	}

	writeJSON(w, http.StatusOK, page{
		Count:    count,
		Page:     pageNum,
		PageSize: pageSize,
		Results:  stories,
	})
}
