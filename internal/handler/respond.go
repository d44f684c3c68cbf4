package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gramline/gramline/internal/config"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/service"
	"github.com/gramline/gramline/internal/validation"
)

// page is the envelope every list endpoint returns.
type page struct {
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Results  any `json:"results"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps service and repository errors onto HTTP statuses. Unknown
// errors become an opaque 500; the details go to the log, not the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrFollowNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrStoryNotFound),
		errors.Is(err, repository.ErrCommentNotFound),
		errors.Is(err, repository.ErrLikeNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrPrivateContent),
		errors.Is(err, service.ErrNotOwner):
		writeMessage(w, http.StatusForbidden, err.Error())

	case errors.Is(err, repository.ErrDuplicateUser),
		errors.Is(err, repository.ErrDuplicateFollow),
		errors.Is(err, repository.ErrDuplicateLike):
		writeMessage(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrTextRequired),
		errors.Is(err, validation.ErrEmptyContent),
		errors.Is(err, validation.ErrMissingTarget),
		isValidationError(err):
		writeMessage(w, http.StatusBadRequest, err.Error())

	default:
		slog.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
	}
}

func isValidationError(err error) bool {
	var verr *validation.Error
	return errors.As(err, &verr)
}

// pageParams reads ?page and ?page_size, clamping to configured bounds.
// Pages are 1-based.
func pageParams(r *http.Request, cfg *config.Config) (pageNum, pageSize, offset int) {
	pageNum = intQuery(r, "page", 1)
	if pageNum < 1 {
		pageNum = 1
	}

	pageSize = intQuery(r, "page_size", cfg.DefaultPageSize)
	if pageSize < 1 {
		pageSize = cfg.DefaultPageSize
	}
	if pageSize > cfg.MaxPageSize {
		pageSize = cfg.MaxPageSize
	}

	offset = (pageNum - 1) * pageSize
	return pageNum, pageSize, offset
}

func intQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// optionalString returns nil when the form field was not sent at all,
// letting handlers distinguish "clear this" from "leave it alone".
func optionalString(r *http.Request, key string) *string {
	if !r.Form.Has(key) && !hasMultipartValue(r, key) {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

func hasMultipartValue(r *http.Request, key string) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value[key]
	return ok
}
