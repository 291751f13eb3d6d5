package handlers

import (
	"net/http"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type profileResponse struct {
	Profile *domain.User `json:"profile"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "register", err)
		return
	}

	writeJSON(w, http.StatusCreated, profileResponse{Profile: user})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input service.SignInInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	token, err := h.authService.SignIn(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "sign in", err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
