package main

import (
	"crypto/sha256"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"socialnetwork/internal/config"
	handlers "socialnetwork/internal/handler"
	"socialnetwork/internal/middleware"
)

func newRouter(h *handlers.Handlers, cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)

	private := func(f http.HandlerFunc) http.Handler {
		return middleware.RequireLogin(f)
	}

	r.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.Handle("/login", limiter.Middleware(http.HandlerFunc(h.Login))).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/register", limiter.Middleware(http.HandlerFunc(h.Register))).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", h.Logout)

	r.Handle("/global", private(h.GlobalStream)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/follower", private(h.FollowerStream)).Methods(http.MethodGet)
	r.Handle("/profile", private(h.MyProfile)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/profile/{id:[0-9]+}", private(h.OtherProfile)).Methods(http.MethodGet)
	r.Handle("/follow/{id:[0-9]+}", private(h.Follow)).Methods(http.MethodPost)
	r.Handle("/unfollow/{id:[0-9]+}", private(h.Unfollow)).Methods(http.MethodPost)
	r.Handle("/photo/{id:[0-9]+}", private(h.Photo)).Methods(http.MethodGet)

	// JSON endpoints answer 401 themselves
	r.HandleFunc("/socialnetwork/get-global", h.GetGlobal).Methods(http.MethodGet)
	r.HandleFunc("/socialnetwork/get-follower", h.GetFollower).Methods(http.MethodGet)
	r.HandleFunc("/socialnetwork/add-comment", h.AddComment)

	csrfKey := sha256.Sum256([]byte("csrf:" + cfg.Session.SecretKey))
	protect := csrf.Protect(csrfKey[:],
		csrf.Secure(cfg.Session.SecureCookie),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(handlers.CSRFFailure)),
	)

	return middleware.Chain(r,
		protect,
		middleware.SkipCSRFWhenAnonymous("/socialnetwork/"),
		middleware.SessionMiddleware(h.AuthService, cfg.Session.CookieName),
		middleware.PlaintextHTTP(cfg.Session.SecureCookie),
		middleware.LoggingMiddleware,
		chimiddleware.Recoverer,
		middleware.RealIPFromProxy(cfg.TrustProxy),
		chimiddleware.RequestID,
	)
}
