package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/wave-feed/internal/http/handlers"
	"github.com/pribylovaa/wave-feed/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	Timeout        time.Duration
	UploadTimeout  time.Duration // дедлайн multipart-запросов; 0 — как Timeout
	UploadMaxBytes int64
	Metrics        *middleware.HTTPMetrics // nil — без метрик запросов
	BasePath       string                  // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),          // до логирования: id попадает в attrs
		middleware.Logging(opts.Logger), // request-scoped логгер в контексте
	)
	if opts.Metrics != nil {
		root.Use(middleware.Metrics(opts.Metrics))
	}
	root.Use(middleware.AuthBearer(svc))
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout, opts.UploadTimeout))
	}

	h := handlers.New(svc, opts.UploadMaxBytes)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/signup", h.SignUp)
	r.Post("/auth/signin", h.SignIn)
	r.Post("/auth/refresh", h.Refresh)
	r.Post("/auth/signout", h.SignOut)

	// me
	r.Get("/me", h.Me)
	r.Patch("/me/username", h.UpdateUsername)
	r.Put("/me/avatar", h.UpdateAvatar)

	// posts
	r.Get("/posts/new", h.NewPosts)
	r.Get("/posts/home", h.HomeFeed)
	r.Get("/posts/trending", h.TrendingPosts)
	r.Get("/posts/{id}", h.GetPost)
	r.Post("/posts", h.CreatePost)

	// comments
	r.Get("/posts/{id}/comments", h.PostComments)
	r.Get("/posts/{id}/comments/count", h.CommentsCount)
	r.Post("/posts/{id}/comments", h.CreateComment)

	// handshakes
	r.Get("/posts/{id}/handshakes", h.Handshakes)
	r.Post("/posts/{id}/handshake", h.ToggleHandshake)

	// communities
	r.Get("/communities", h.Communities)
	r.Post("/communities", h.CreateCommunity)
	r.Get("/communities/{name}", h.GetCommunity)
	r.Get("/communities/{name}/posts", h.CommunityPosts)
	r.Get("/communities/{name}/join-status", h.JoinStatus)
	r.Post("/communities/{name}/join", h.ToggleJoin)

	// profiles
	r.Get("/profiles/{username}", h.GetProfile)
	r.Get("/profiles/{username}/posts", h.UserPosts)

	// chats
	r.Get("/chats", h.Chats)
}
