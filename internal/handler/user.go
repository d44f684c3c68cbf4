package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gramline/gramline/internal/ctxkeys"
	"github.com/gramline/gramline/internal/dto"
	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/service"
	"github.com/gramline/gramline/internal/visibility"
)

type userHandler struct {
	userService   *service.UserService
	followService *service.FollowService
	resolve       dto.MediaResolver
}

func NewUserHandler(userService *service.UserService, followService *service.FollowService, resolve dto.MediaResolver) *userHandler {
	return &userHandler{
		userService:   userService,
		followService: followService,
		resolve:       resolve,
	}
}

func (h *userHandler) Me(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	user, _, err := h.userService.Profile(viewer.ID, viewer.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewProfile(user))
}

// Show returns the full profile when the viewer is allowed to see it, and
// the redacted stub otherwise. Redaction is a 200, not an error: the
// account's existence and handle are public, its contents are not.
func (h *userHandler) Show(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	userID := r.PathValue("id")

	user, isFollower, err := h.userService.Profile(viewer.ID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if !visibility.CanView(viewer.ID, user, isFollower) {
		writeJSON(w, http.StatusOK, dto.NewPrivateProfile(user))
		return
	}

	writeJSON(w, http.StatusOK, dto.NewProfile(user))
}

// UpdateMe applies partial profile changes: bio, profile_status, avatar.
// Multipart so the avatar can ride along with the text fields.
func (h *userHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(8 << 20)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	bio := optionalString(r, "bio")
	profileStatus := optionalString(r, "profile_status")

	user, err := h.userService.UpdateProfile(viewer.ID, bio, profileStatus)
	if err != nil {
		writeError(w, err)
		return
	}

	if avatar := fileHeader(r, "avatar"); avatar != nil {
		user, err = h.userService.SetAvatar(viewer.ID, avatar)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	if user.AvatarKey != "" && user.AvatarURL == "" {
		user.AvatarURL = h.resolve(user.AvatarKey)
	}

	slog.Info("profile updated", "user_id", viewer.ID)
	writeJSON(w, http.StatusOK, dto.NewProfile(user))
}

// Avatar replaces the viewer's avatar. The old blob is removed once the
// row points at the new one.
func (h *userHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(8 << 20)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	avatar := fileHeader(r, "avatar")
	if avatar == nil {
		writeMessage(w, http.StatusBadRequest, "avatar file is required")
		return
	}

	user, err := h.userService.SetAvatar(viewer.ID, avatar)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("avatar updated", "user_id", viewer.ID)
	writeJSON(w, http.StatusOK, dto.NewProfile(user))
}

func (h *userHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.followList(w, r, h.followService.Followers)
}

func (h *userHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.followList(w, r, h.followService.Following)
}

// followList gates both follower lists behind profile visibility: a
// stranger to a private account sees neither side of its graph.
func (h *userHandler) followList(w http.ResponseWriter, r *http.Request, load func(string) ([]*model.User, error)) {
	viewer := ctxkeys.User(r.Context())
	userID := r.PathValue("id")

	owner, isFollower, err := h.userService.Profile(viewer.ID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if !visibility.CanView(viewer.ID, owner, isFollower) {
		writeError(w, service.ErrPrivateContent)
		return
	}

	users, err := load(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, dto.NewUserSummary(u, h.resolve))
	}

	writeJSON(w, http.StatusOK, summaries)
}

func fileHeader(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
