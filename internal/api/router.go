package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sabadesa/sabadesa-be/internal/api/handlers"
	"github.com/sabadesa/sabadesa-be/internal/auth"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/sabadesa/sabadesa-be/internal/websocket"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// Deps bundles what the router wires into handlers.
type Deps struct {
	Issuer         *auth.TokenIssuer
	Hub            *websocket.Hub
	Table          *wilayah.Table
	Health         *handlers.SystemHandler
	Users          services.UserServiceProvider
	Sessions       services.SessionServiceProvider
	ActivityTypes  services.ActivityTypeServiceProvider
	Events         services.EventServiceProvider
	Attendees      services.AttendeeServiceProvider
	Imports        services.ImportServiceProvider
	Votes          services.VoteServiceProvider
	Analytics      services.AnalyticsServiceProvider
	Prioritization services.PrioritizationServiceProvider
	ActivityLog    services.ActivityLogServiceProvider

	AllowedOrigins []string
	SecureCookies  bool
	MaxUploadBytes int64
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "ngrok-skip-browser-warning"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	table := d.Table
	if table == nil {
		table = wilayah.Default()
	}

	authHandler := handlers.NewAuthHandler(d.Sessions, d.Users, d.SecureCookies)
	typeHandler := handlers.NewActivityTypeHandler(d.ActivityTypes)
	eventHandler := handlers.NewEventHandler(d.Events, d.Attendees)
	exportHandler := handlers.NewExportHandler(d.Attendees, table)
	importHandler := handlers.NewImportHandler(d.Imports, d.MaxUploadBytes)
	voteHandler := handlers.NewVoteHandler(d.Votes)
	analyticsHandler := handlers.NewAnalyticsHandler(d.Analytics, d.Prioritization)
	wilayahHandler := handlers.NewWilayahHandler(table)
	logHandler := handlers.NewActivityLogHandler(d.ActivityLog)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.AllowedOrigins)

	if d.Health != nil {
		r.Get("/healthz", d.Health.Health)
	}

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(d.Issuer))

			r.Get("/ws", wsHandler.Serve)

			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/password", authHandler.ChangePassword)

			r.Route("/activity-types", func(r chi.Router) {
				r.Get("/", typeHandler.GetAll)
				r.Post("/", typeHandler.Create)
				r.Delete("/{id}", typeHandler.Delete)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.GetAll)
				r.Post("/", eventHandler.Create)
				r.Get("/attendees/all", eventHandler.GetAllAttendees)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", eventHandler.Get)
					r.Delete("/", eventHandler.Delete)
					r.Get("/attendees", eventHandler.GetAttendees)
					r.Post("/attendees", eventHandler.AddAttendee)
					r.Delete("/attendees/{attendeeId}", eventHandler.DeleteAttendee)
				})
			})

			r.Get("/exports/attendees", exportHandler.Attendees)

			r.Route("/imports", func(r chi.Router) {
				r.Get("/", importHandler.History)
				r.Post("/votes", importHandler.Upload)
			})

			r.Route("/votes", func(r chi.Router) {
				r.Get("/", voteHandler.GetAll)
				r.Get("/summary", voteHandler.Summary)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/heatmap", analyticsHandler.Heatmap)
				r.Get("/dashboard", analyticsHandler.Dashboard)
			})

			r.Route("/prioritization", func(r chi.Router) {
				r.Get("/suggest", analyticsHandler.Suggest)
				r.Post("/refresh", analyticsHandler.RefreshSuggestions)
			})

			r.Route("/wilayah", func(r chi.Router) {
				r.Get("/dapil", wilayahHandler.Dapil)
				r.Get("/kecamatan", wilayahHandler.Kecamatan)
				r.Get("/desa", wilayahHandler.Desa)
				r.Post("/resolve", wilayahHandler.Resolve)
			})

			r.Get("/activity-log", logHandler.GetRecent)
			if d.Health != nil {
				r.Get("/system/status", d.Health.Status)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
