package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pubg-tournament-tracker/handlers"
	"pubg-tournament-tracker/middleware"
	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/services"
)

func SetupRoutes(
	router *chi.Mux,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	uploadHandler *handlers.UploadHandler,
	entryHandler *handlers.EntryHandler,
	standingsHandler *handlers.StandingsHandler,
	historyHandler *handlers.HistoryHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/redeem", authHandler.Redeem)

	// Public read surface: standings, dashboards and the archive.
	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListTournaments)
		r.Get("/{tournamentID}", tournamentHandler.GetTournamentByID)
		r.Get("/{tournamentID}/teams", teamHandler.ListTeamsByTournament)
		r.Get("/{tournamentID}/standings", standingsHandler.GetStandings)
		r.Get("/{tournamentID}/standings/csv", standingsHandler.ExportCSV)
		r.Get("/{tournamentID}/mvp", standingsHandler.GetMVP)
		r.Get("/{tournamentID}/top-damage", standingsHandler.GetTopDamage)
		r.Get("/{tournamentID}/dashboard", standingsHandler.GetDashboard)

		// Admin-only tournament management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authService))
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/", tournamentHandler.CreateTournament)
			r.Put("/{tournamentID}", tournamentHandler.UpdateTournament)
			r.Post("/{tournamentID}/archive", tournamentHandler.ArchiveTournament)
			r.Post("/{tournamentID}/teams", teamHandler.CreateTeam)
			r.Post("/{tournamentID}/matches", entryHandler.SubmitMatchResults)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetTeamByID)

		// Screenshot submission is open to both roles; player tokens are
		// checked against the team inside the handler.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authService))
			r.Use(middleware.RequireRole(models.RoleAdmin, models.RolePlayer))

			r.Post("/{teamID}/screenshots", uploadHandler.SubmitScreenshots)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authService))
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
		})
	})

	router.Route("/history", func(r chi.Router) {
		r.Get("/", historyHandler.ListHistory)
		r.Get("/{historyID}", historyHandler.GetHistoryByID)
	})

	// Admin utilities.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(authService))
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Post("/auth/codes", authHandler.MintCode)
		r.Post("/entries/daily-total", entryHandler.SubmitDailyTotal)
	})
}
