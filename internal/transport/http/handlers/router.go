package handlers

import (
	"net/http"

	"github.com/vedran77/circle/internal/service"
	"github.com/vedran77/circle/internal/transport/http/middleware"
)

type Services struct {
	Auth      *service.AuthService
	Profiles  *service.ProfileService
	Friends   *service.FriendService
	Posts     *service.PostService
	Reactions *service.ReactionLedger
	Countries *service.CountryService
}

// NewRouter registers the REST API on a fresh mux. Callers add
// infrastructure routes and wrap the mux with the outer middleware.
func NewRouter(svc Services) *http.ServeMux {
	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Profiles, svc.Auth)
	friendHandler := NewFriendHandler(svc.Friends)
	postHandler := NewPostHandler(svc.Posts, svc.Reactions)
	countryHandler := NewCountryHandler(svc.Countries)

	auth := middleware.Auth(svc.Auth)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /api/ping", Ping)
	mux.HandleFunc("GET /api/countries", countryHandler.List)
	mux.HandleFunc("GET /api/countries/{alpha2}", countryHandler.Get)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/sign-in", authHandler.SignIn)

	// Protected - Profiles
	mux.Handle("GET /api/me/profile", protected(profileHandler.Me))
	mux.Handle("PATCH /api/me/profile", protected(profileHandler.UpdateMe))
	mux.Handle("POST /api/me/updatePassword", protected(profileHandler.UpdatePassword))
	mux.Handle("GET /api/profiles/{login}", protected(profileHandler.Get))

	// Protected - Friends
	mux.Handle("POST /api/friends/add", protected(friendHandler.Add))
	mux.Handle("POST /api/friends/remove", protected(friendHandler.Remove))
	mux.Handle("GET /api/friends", protected(friendHandler.List))

	// Protected - Posts
	mux.Handle("POST /api/posts/new", protected(postHandler.Create))
	mux.Handle("GET /api/posts/feed/my", protected(postHandler.MyFeed))
	mux.Handle("GET /api/posts/feed/{login}", protected(postHandler.Feed))
	mux.Handle("GET /api/posts/{postId}", protected(postHandler.Get))
	mux.Handle("POST /api/posts/{postId}/like", protected(postHandler.Like))
	mux.Handle("POST /api/posts/{postId}/dislike", protected(postHandler.Dislike))

	return mux
}
