package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gramline/gramline/internal/dto"
	"github.com/gramline/gramline/internal/service"
)

type authHandler struct {
	authService *service.AuthService
	resolve     dto.MediaResolver
}

func NewAuthHandler(authService *service.AuthService, resolve dto.MediaResolver) *authHandler {
	return &authHandler{
		authService: authService,
		resolve:     resolve,
	}
}

type registerRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Bio           string `json:"bio"`
	ProfileStatus string `json:"profile_status"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  dto.Profile `json:"user"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password, req.Bio, req.ProfileStatus)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, tokenResponse{
		Token: token,
		User:  dto.NewProfile(user),
	})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, err)
		return
	}

	if user.AvatarKey != "" {
		user.AvatarURL = h.resolve(user.AvatarKey)
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusOK, tokenResponse{
		Token: token,
		User:  dto.NewProfile(user),
	})
}
