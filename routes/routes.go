package routes

import (
	"github.com/Dosada05/tennis-league/handlers"
	"github.com/Dosada05/tennis-league/middleware"
	"github.com/Dosada05/tennis-league/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	categoryHandler *handlers.CategoryHandler,
	groupHandler *handlers.GroupHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	sponsorHandler *handlers.SponsorHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Post("/auth/login", authHandler.Login)

	// Публичные страницы лиги: таблицы, расписание, спонсоры.
	router.Get("/standings/grouped", standingsHandler.All)
	router.Get("/standings/group/{id}", standingsHandler.ByGroup)
	router.Get("/matches", matchHandler.List)
	router.Get("/matches/{id}", matchHandler.GetByID)
	router.Get("/players/{id}", playerHandler.PublicProfile)
	router.Get("/sponsors", sponsorHandler.List)
	router.Get("/categories", categoryHandler.List)
	router.Get("/groups", groupHandler.List)
	router.Get("/groups/{id}", groupHandler.GetByID)

	// Кабинет игрока.
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/me", playerHandler.Profile)
		r.Put("/me", playerHandler.UpdateProfile)
		r.Post("/me/photo", playerHandler.UploadPhoto)
		r.Post("/me/password", authHandler.ChangePassword)

		r.Get("/matches/my", matchHandler.ListMine)
		r.Put("/matches/{id}/schedule", matchHandler.Schedule)
		r.Post("/matches/{id}/score", matchHandler.SubmitScore)
		r.Put("/matches/{id}/score/approve", matchHandler.ApproveScore)
	})

	// Административная часть.
	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Get("/players", playerHandler.List)
		r.Post("/players", playerHandler.Create)
		r.Get("/players/{id}", playerHandler.GetByID)
		r.Put("/players/{id}", playerHandler.Update)
		r.Post("/players/{id}/photo", playerHandler.UploadPhotoFor)
		r.Delete("/players/{id}", playerHandler.Delete)

		r.Post("/categories", categoryHandler.Create)
		r.Delete("/categories/{id}", categoryHandler.Delete)

		r.Post("/groups", groupHandler.Create)
		r.Delete("/groups/{id}", groupHandler.Delete)
		r.Post("/groups/{id}/players", groupHandler.AddPlayer)
		r.Delete("/groups/{id}/players/{userID}", groupHandler.RemovePlayer)
		r.Post("/groups/{id}/generate-schedule", groupHandler.GenerateSchedule)

		r.Post("/matches", matchHandler.Create)
		r.Put("/matches/{id}", matchHandler.Schedule)
		r.Put("/matches/{id}/score", matchHandler.OverrideScore)
		r.Delete("/matches/{id}", matchHandler.Delete)

		r.Post("/groups/{id}/recalculate", standingsHandler.RecalculateGroup)
		r.Post("/recalculate", standingsHandler.RecalculateAll)
		r.Get("/export/standings", standingsHandler.ExportCSV)
		r.Get("/export/fixtures", standingsHandler.ExportFixtures)

		r.Get("/sponsors", sponsorHandler.List)
		r.Post("/sponsors", sponsorHandler.Create)
		r.Put("/sponsors/{id}", sponsorHandler.Update)
		r.Post("/sponsors/{id}/logo", sponsorHandler.UploadLogo)
		r.Delete("/sponsors/{id}", sponsorHandler.Delete)
	})
}
