package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/handler/http/middleware"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	remoteHandler RemoteWorkHandler,
	approvalHandler ApprovalHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "vista-hr-portal"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {

		// Email-approval links are opened from mail clients and carry their
		// own signed token; they must stay outside the JWT wall.
		r.Get("/leaves/email-approval", approvalHandler.LeaveEmailApproval)
		r.Get("/remote-work/email-approval", approvalHandler.RemoteEmailApproval)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/sync", attendanceHandler.SyncLogs)
				r.Get("/sync", attendanceHandler.SyncRoster)
				r.Get("/sync/status", attendanceHandler.SyncStatus)
				r.Get("/report", attendanceHandler.MonthlyReport)
			})

			r.Post("/leaves", leaveHandler.Apply)

			r.Route("/remote-work", func(r chi.Router) {
				r.Post("/", remoteHandler.Apply)
				r.Get("/", remoteHandler.List)
				r.Delete("/{id}", remoteHandler.Delete)
			})
		})
	})

	return r
}
