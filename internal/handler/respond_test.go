package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gramline/gramline/internal/config"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/service"
	"github.com/gramline/gramline/internal/validation"
)

func TestPageParams(t *testing.T) {
	cfg := &config.Config{DefaultPageSize: 10, MaxPageSize: 50}

	cases := []struct {
		query      string
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"", 1, 10, 0},
		{"?page=3", 3, 10, 20},
		{"?page=2&page_size=5", 2, 5, 5},
		{"?page=0", 1, 10, 0},
		{"?page=-4&page_size=-1", 1, 10, 0},
		{"?page_size=500", 1, 50, 0},
		{"?page=abc&page_size=xyz", 1, 10, 0},
	}

	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/posts/open"+c.query, nil)
		page, size, offset := pageParams(r, cfg)
		if page != c.wantPage || size != c.wantSize || offset != c.wantOffset {
			t.Fatalf("%q: got page=%d size=%d offset=%d, want %d %d %d",
				c.query, page, size, offset, c.wantPage, c.wantSize, c.wantOffset)
		}
	}
}

func TestWriteErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"post not found", repository.ErrPostNotFound, http.StatusNotFound},
		{"story not found", repository.ErrStoryNotFound, http.StatusNotFound},
		{"private content", service.ErrPrivateContent, http.StatusForbidden},
		{"not owner", service.ErrNotOwner, http.StatusForbidden},
		{"duplicate like", repository.ErrDuplicateLike, http.StatusConflict},
		{"duplicate follow", repository.ErrDuplicateFollow, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"self follow", service.ErrSelfFollow, http.StatusBadRequest},
		{"empty content", validation.ErrEmptyContent, http.StatusBadRequest},
		{"missing target", validation.ErrMissingTarget, http.StatusBadRequest},
		{"field validation", validation.ValidateUsername("!"), http.StatusBadRequest},
		{"unknown error", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		writeError(w, c.err)
		if w.Code != c.want {
			t.Fatalf("%s: got status %d, want %d", c.name, w.Code, c.want)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("%s: got content type %q", c.name, ct)
		}
	}
}
