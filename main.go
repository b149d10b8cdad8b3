package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"horasextras/config"
	"horasextras/database"
	"horasextras/handlers"
	"horasextras/middleware"
	"horasextras/models"
	"horasextras/notify"
	"horasextras/store"
)

func main() {
	cfg := config.Load()

	log.SetFormatter(&log.JSONFormatter{})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	middleware.SetJWTSecret(cfg.JWTSecret)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	// Stores
	users := store.NewUserStore(db)
	projects := store.NewProjectStore(db)
	notifications := store.NewNotificationStore(db)
	mailer := notify.NewMailer(cfg.SMTP)
	requests := store.NewRequestStore(db, users, projects, notifications, mailer)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, users)
	requestHandler := handlers.NewRequestHandler(requests, projects)
	dashboardHandler := handlers.NewDashboardHandler(requests, projects)
	reportHandler := handlers.NewReportHandler(requests)
	notificationHandler := handlers.NewNotificationHandler(notifications)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/login", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(users))

		r.Post("/api/logout", authHandler.Logout)
		r.Get("/api/me", authHandler.Me)
		r.Get("/api/meta/statuses", requestHandler.Statuses)
		r.Get("/api/projects", requestHandler.Projects)
		r.Get("/api/dashboard", dashboardHandler.Stats)

		r.Get("/api/requests", requestHandler.List)
		r.Get("/api/requests/{id}", requestHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleEncarregado, models.RoleGestor))
			r.Post("/api/requests", requestHandler.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleGestor))
			r.Post("/api/requests/{id}/approve", requestHandler.Approve)
			r.Post("/api/requests/{id}/reject", requestHandler.Reject)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleGestor, models.RoleTecnico))
			r.Get("/api/reports", reportHandler.Summary)
			r.Get("/api/reports/export", reportHandler.Export)
		})

		r.Get("/api/notifications", notificationHandler.List)
		r.Get("/api/notifications/unread-count", notificationHandler.UnreadCount)
		r.Post("/api/notifications/{id}/read", notificationHandler.MarkRead)
		r.Post("/api/notifications/read-all", notificationHandler.MarkAllRead)
		r.Delete("/api/notifications/{id}", notificationHandler.Delete)
	})

	log.WithField("port", cfg.ServerPort).Info("server starting")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
