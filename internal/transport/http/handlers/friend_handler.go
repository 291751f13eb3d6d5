package handlers

import (
	"net/http"

	"github.com/vedran77/circle/internal/service"
	"github.com/vedran77/circle/internal/transport/http/middleware"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

type friendInput struct {
	Login string `json:"login" validate:"required"`
}

func (h *FriendHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input friendInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	if err := h.friendService.Add(r.Context(), user, input.Login); err != nil {
		writeServiceError(w, r, "add friend", err)
		return
	}

	writeJSON(w, http.StatusOK, statusOK)
}

func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input friendInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	if err := h.friendService.Remove(r.Context(), user, input.Login); err != nil {
		writeServiceError(w, r, "remove friend", err)
		return
	}

	writeJSON(w, http.StatusOK, statusOK)
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	page, ok := pageFromQuery(w, r)
	if !ok {
		return
	}

	friends, err := h.friendService.List(r.Context(), user, page)
	if err != nil {
		writeServiceError(w, r, "list friends", err)
		return
	}

	writeJSON(w, http.StatusOK, friends)
}
