package handlers

import (
	"net/http"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/service"
	"github.com/vedran77/circle/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
	ledger      *service.ReactionLedger
}

func NewPostHandler(postService *service.PostService, ledger *service.ReactionLedger) *PostHandler {
	return &PostHandler{postService: postService, ledger: ledger}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.CreatePostInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	post, err := h.postService.Create(r.Context(), user, input)
	if err != nil {
		writeServiceError(w, r, "create post", err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	post, err := h.postService.Get(r.Context(), user, r.PathValue("postId"))
	if err != nil {
		writeServiceError(w, r, "get post", err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) MyFeed(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	page, ok := pageFromQuery(w, r)
	if !ok {
		return
	}

	posts, err := h.postService.Feed(r.Context(), user, page)
	if err != nil {
		writeServiceError(w, r, "my feed", err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	page, ok := pageFromQuery(w, r)
	if !ok {
		return
	}

	posts, err := h.postService.FeedByLogin(r.Context(), user, r.PathValue("login"), page)
	if err != nil {
		writeServiceError(w, r, "user feed", err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, domain.ReactionLike)
}

func (h *PostHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, domain.ReactionDislike)
}

func (h *PostHandler) react(w http.ResponseWriter, r *http.Request, reaction domain.ReactionType) {
	user := middleware.GetUser(r.Context())

	post, err := h.ledger.Toggle(r.Context(), user, r.PathValue("postId"), reaction)
	if err != nil {
		writeServiceError(w, r, "toggle reaction", err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
