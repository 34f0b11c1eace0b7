package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/config"
	"github.com/shiftpoint/attendance-backend-go/internal/handler/http/middleware"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth      AuthHandler
	User      UserHandler
	Campaign  CampaignHandler
	Master    MasterHandler
	TimeEvent TimeEventHandler
	Leave     LeaveHandler
	Report    ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAdmin)
					r.Get("/", h.User.List)
					r.Get("/{id}", h.User.GetByID)
					r.Get("/{id}/leave-requests", h.Leave.ListForUser)
					r.Get("/{id}/leave-balances", h.Leave.ListBalancesForUser)
				})

				// View access is checked in the handler: employees may
				// only read their own events.
				r.Get("/{id}/time-events", h.TimeEvent.ListForUser)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.User.Create)
					r.Put("/{id}", h.User.Update)
				})
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", h.Campaign.List)
				r.Get("/{id}", h.Campaign.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Campaign.Create)
					r.Put("/{id}", h.Campaign.Update)
					r.Delete("/{id}", h.Campaign.Delete)
				})
			})

			r.Route("/event-types", func(r chi.Router) {
				r.Get("/", h.Master.ListEventTypes)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Master.CreateEventType)
					r.Put("/{id}", h.Master.UpdateEventType)
					r.Delete("/{id}", h.Master.DeleteEventType)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", h.Master.ListLeaveTypes)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Master.CreateLeaveType)
					r.Put("/{id}", h.Master.UpdateLeaveType)
					r.Delete("/{id}", h.Master.DeleteLeaveType)
				})
			})

			r.Route("/time-events", func(r chi.Router) {
				r.Post("/clock", h.TimeEvent.Clock)
				r.Get("/my", h.TimeEvent.ListMine)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Create)
				r.Get("/my", h.Leave.ListMine)
				r.Get("/my/balances", h.Leave.ListMyBalances)
				r.Post("/{id}/cancel", h.Leave.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAdmin)
					r.Get("/pending", h.Leave.ListPending)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/balances", h.Leave.SetBalance)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.ManagerOrAdmin)
				r.Get("/daily", h.Report.Daily)
				r.Get("/daily/export", h.Report.ExportDaily)
				r.Get("/range", h.Report.Range)
				r.Get("/range/export", h.Report.ExportRange)
				r.Get("/weekly-team", h.Report.WeeklyTeam)
				r.Get("/too-weekly", h.Report.TooWeekly)
				r.Get("/too-weekly/export", h.Report.ExportTooWeekly)
			})
		})
	})
	return r
}
