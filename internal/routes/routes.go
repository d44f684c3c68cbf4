package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gramline/gramline/internal/app"
	"github.com/gramline/gramline/internal/handler"
	"github.com/gramline/gramline/internal/middleware"
	"github.com/gramline/gramline/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	resolve := app.MediaService.URL

	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, resolve)
	user := handler.NewUserHandler(app.UserService, app.FollowService, resolve)
	follow := handler.NewFollowHandler(app.FollowService)
	post := handler.NewPostHandler(app.PostService, app.Cfg, resolve)
	story := handler.NewStoryHandler(app.StoryService, app.Cfg, resolve)
	comment := handler.NewCommentHandler(app.CommentService, resolve)
	like := handler.NewLikeHandler(app.LikeService)

	mux := http.NewServeMux()

	// Operational endpoints
	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Local storage serves media straight from disk; with S3 the URLs
	// point at the bucket and this route never exists.
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(local.Root()))))
	}

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/v1/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/v1/auth/login", rateLimiter(auth.Login))

	// Users
	mux.HandleFunc("GET /api/v1/users/me", middleware.RequireAuth(user.Me))
	mux.HandleFunc("PATCH /api/v1/users/me", middleware.RequireAuth(user.UpdateMe))
	mux.HandleFunc("POST /api/v1/users/me/avatar", middleware.RequireAuth(user.Avatar))
	mux.HandleFunc("GET /api/v1/users/{id}", middleware.RequireAuth(user.Show))
	mux.HandleFunc("GET /api/v1/users/{id}/followers", middleware.RequireAuth(user.Followers))
	mux.HandleFunc("GET /api/v1/users/{id}/following", middleware.RequireAuth(user.Following))

	// Follows
	mux.HandleFunc("POST /api/v1/follows", middleware.RequireAuth(follow.Create))
	mux.HandleFunc("DELETE /api/v1/follows/{following_id}", middleware.RequireAuth(follow.Delete))

	// Posts
	mux.HandleFunc("POST /api/v1/posts", middleware.RequireAuth(post.Create))
	mux.HandleFunc("GET /api/v1/posts/open", middleware.RequireAuth(post.OpenFeed))
	mux.HandleFunc("GET /api/v1/posts/private", middleware.RequireAuth(post.PrivateFeed))
	mux.HandleFunc("GET /api/v1/posts/{id}/open", middleware.RequireAuth(post.OpenDetail))
	mux.HandleFunc("GET /api/v1/posts/{id}/private", middleware.RequireAuth(post.PrivateDetail))
	mux.HandleFunc("GET /api/v1/posts/{id}/comments", middleware.RequireAuth(comment.ForPost))
	mux.HandleFunc("PATCH /api/v1/posts/{id}", middleware.RequireAuth(post.Update))
	mux.HandleFunc("DELETE /api/v1/posts/{id}", middleware.RequireAuth(post.Delete))

	// Stories
	mux.HandleFunc("POST /api/v1/stories", middleware.RequireAuth(story.Create))
	mux.HandleFunc("POST /api/v1/stories/batch", middleware.RequireAuth(story.CreateBatch))
	mux.HandleFunc("GET /api/v1/stories/open", middleware.RequireAuth(story.OpenFeed))
	mux.HandleFunc("GET /api/v1/stories/private", middleware.RequireAuth(story.PrivateFeed))
	mux.HandleFunc("GET /api/v1/stories/{id}/open", middleware.RequireAuth(story.OpenDetail))
	mux.HandleFunc("GET /api/v1/stories/{id}/private", middleware.RequireAuth(story.PrivateDetail))
	mux.HandleFunc("GET /api/v1/stories/{id}/comments", middleware.RequireAuth(comment.ForStory))
	mux.HandleFunc("PATCH /api/v1/stories/{id}", middleware.RequireAuth(story.Update))
	mux.HandleFunc("DELETE /api/v1/stories/{id}", middleware.RequireAuth(story.Delete))

	// Comments
	mux.HandleFunc("POST /api/v1/comments", middleware.RequireAuth(comment.Create))
	mux.HandleFunc("DELETE /api/v1/comments/{id}", middleware.RequireAuth(comment.Delete))

	// Likes
	mux.HandleFunc("POST /api/v1/likes", middleware.RequireAuth(like.Create))
	mux.HandleFunc("DELETE /api/v1/likes/{id}", middleware.RequireAuth(like.Delete))

	// Global middleware - executed in order (top to bottom). Metrics sits
	// innermost so it sees the matched route pattern.
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Auth(app.AuthService, app.UserService),
		middleware.Metrics,
	)
}
