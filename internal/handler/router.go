package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"hzchat/internal/pkg/limiter"
	"hzchat/internal/pkg/logx"
)

const (
	// AdminRequestRate limits how often a single IP may hit the admin HTTP surface.
	AdminRequestRate = 2.0

	// AdminRequestBurst is the burst size for AdminRequestRate.
	AdminRequestBurst = 10
)

// Router builds the admin HTTP+WebSocket surface: health, occupancy stats,
// operator announcements, and a push dashboard.
func Router(deps *AppDeps) http.Handler {
	requestLimiter := limiter.NewIPRateLimiter(rate.Limit(AdminRequestRate), AdminRequestBurst)

	r := chi.NewRouter()

	corsOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(requestLimiter.Middleware)

	r.Get("/healthz", HandleHealthz())

	r.Group(func(r chi.Router) {
		r.Use(requireAdminToken(deps.Config.AdminSecret))
		r.Get("/stats", HandleStats(deps))
		r.Post("/admin/announce", HandleAnnounce(deps))
	})

	allowedOrigins := make(map[string]struct{}, len(deps.Config.AllowedOrigins))
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(req *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}
			origin := req.Header.Get("Origin")
			_, ok := allowedOrigins[origin]
			if !ok {
				logx.Warn("Dashboard WebSocket connection rejected: origin not allowed.", "origin", origin)
			}
			return ok
		},
	}

	r.Get("/ws/dashboard", HandleDashboard(deps, upgrader))

	return r
}
