package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/maxlgn/counterhub/handlers"
	"github.com/maxlgn/counterhub/middleware"
	"github.com/maxlgn/counterhub/models"
)

// SetupRoutes wires every handler into the router. Catalog reads are
// public, catalog writes require a maintainer or admin, builds and
// roster import require an approved account.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Auth,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	defenseHandler *handlers.DefenseHandler,
	counterHandler *handlers.CounterHandler,
	buildHandler *handlers.BuildHandler,
	rosterHandler *handlers.RosterHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/defenses", func(r chi.Router) {
		r.Get("/", defenseHandler.ListDefenses)
		r.With(auth.MaybeAuthenticate).Get("/{slug}", defenseHandler.GetDefenseBySlug)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.RequireApproved)
			r.Use(middleware.Authorize(models.RoleMaintainer, models.RoleAdmin))

			r.Post("/", defenseHandler.CreateDefense)
			r.Delete("/{defenseID}", defenseHandler.DeleteDefense)
			r.Post("/{defenseID}/counters", counterHandler.CreateCounter)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequireApproved)
		r.Use(middleware.Authorize(models.RoleMaintainer, models.RoleAdmin))

		r.Delete("/counters/{counterID}", counterHandler.DeleteCounter)
	})

	router.Route("/builds", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequireApproved)

		r.Get("/", buildHandler.ListMyBuilds)
		r.Post("/", buildHandler.CreateBuild)
		r.Put("/{buildID}", buildHandler.UpdateBuild)
		r.Delete("/{buildID}", buildHandler.DeleteBuild)
	})

	router.Route("/roster", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequireApproved)

		r.Get("/", rosterHandler.GetRoster)
		r.Post("/import", rosterHandler.ImportSnapshot)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Get("/users", adminHandler.ListUsers)
		r.Post("/users/{userID}/approve", adminHandler.ApproveUser)
		r.Post("/users/{userID}/role", adminHandler.SetUserRole)
		r.Delete("/users/{userID}", adminHandler.DeleteUser)
		r.Get("/dashboard", adminHandler.Dashboard)
	})

	router.Get("/ws/catalog", webSocketHandler.ServeCatalog)
}
