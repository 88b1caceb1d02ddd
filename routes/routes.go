package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/padel-tournament-api/auth"
	"github.com/Dosada05/padel-tournament-api/docs"
	"github.com/Dosada05/padel-tournament-api/handlers"
	"github.com/Dosada05/padel-tournament-api/metrics"
	"github.com/Dosada05/padel-tournament-api/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger      *slog.Logger
	Tokens      auth.TokenIssuer
	Metrics     *metrics.Metrics
	RateLimiter *middleware.IPRateLimiter
	CORSOrigins []string
	// TrustProxy takes the client address from X-Real-IP / X-Forwarded-For.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
	// Diagnostics enables /echo and /db-test.
	Diagnostics bool
}

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Tournament *handlers.TournamentHandler
	WebSocket  *handlers.WebSocketHandler
	System     *handlers.SystemHandler
}

func SetupRoutes(router *chi.Mux, opts Options, h Handlers) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	if opts.TrustProxy {
		router.Use(chiMiddleware.RealIP)
	}
	router.Use(chiMiddleware.RequestLogger(&chiMiddleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(opts.Logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	router.Use(h.System.Recoverer)
	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.CORS(opts.CORSOrigins))
	if opts.RateLimiter != nil {
		router.Use(middleware.RateLimit(opts.RateLimiter))
	}
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	router.NotFound(h.System.NotFound)
	router.MethodNotAllowed(h.System.MethodNotAllowed)

	router.Get("/", h.System.Root)
	router.Get("/health", h.System.Health)
	if opts.Diagnostics {
		router.Post("/echo", h.System.Echo)
		router.Get("/db-test", h.System.DBTest)
	}
	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	router.Get("/swagger/doc.json", docs.Handler)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(middleware.Authenticate(opts.Tokens)).Get("/me", h.Auth.Me)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.Tokens))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.List)
			r.Post("/", h.Player.Create)
			r.Post("/{playerID}/avatar", h.Player.UploadAvatar)
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", h.Tournament.Create)
			r.Get("/mine", h.Tournament.ListMine)
			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", h.Tournament.Get)
				r.Get("/players", h.Tournament.ListPlayers)
				r.Post("/players", h.Tournament.EnrollPlayers)
				r.Get("/live", h.WebSocket.ServeWs)
			})
		})
	})
}
