package handlers

import (
	"net/http"

	"github.com/vedran77/circle/internal/service"
	"github.com/vedran77/circle/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, authService: authService}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.EditProfileInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.profileService.Edit(r.Context(), user, input)
	if err != nil {
		writeServiceError(w, r, "edit profile", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ProfileHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.UpdatePasswordInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	if err := h.authService.UpdatePassword(r.Context(), user, input); err != nil {
		writeServiceError(w, r, "update password", err)
		return
	}

	writeJSON(w, http.StatusOK, statusOK)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	profile, err := h.profileService.Get(r.Context(), user, r.PathValue("login"))
	if err != nil {
		writeServiceError(w, r, "get profile", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
