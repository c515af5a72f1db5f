package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/housecup/house-points-system/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	standingsHandler *handlers.StandingsHandler,
	eventHandler *handlers.EventHandler,
	houseHandler *handlers.HouseHandler,
	studentHandler *handlers.StudentHandler,
	classYearHandler *handlers.ClassYearHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/standings", func(r chi.Router) {
		r.Get("/", standingsHandler.ListStandings)
		r.Get("/leader", standingsHandler.GetLeader)
		r.Get("/breakdown", standingsHandler.GetBreakdown)
		r.Get("/students", standingsHandler.ListStudentsByStanding)
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.ListEvents)
		r.Post("/", eventHandler.SubmitEventResults)
		r.Get("/{eventID}", eventHandler.GetEventDetail)
		r.Delete("/{eventID}", eventHandler.DeleteEvent)
	})

	router.Route("/houses", func(r chi.Router) {
		r.Get("/", houseHandler.ListHouses)
		r.Post("/", houseHandler.CreateHouse)
		r.Get("/{houseID}", houseHandler.GetHouse)
		r.Put("/{houseID}", houseHandler.UpdateHouse)
		r.Delete("/{houseID}", houseHandler.DeleteHouse)
		r.Get("/{houseID}/summary", standingsHandler.GetHouseSummary)
		r.Post("/{houseID}/crest", houseHandler.UploadHouseCrest)
	})

	router.Route("/students", func(r chi.Router) {
		r.Get("/", studentHandler.ListStudents)
		r.Post("/", studentHandler.AddStudent)
		r.Get("/{studentID}", studentHandler.GetStudent)
		r.Delete("/{studentID}", studentHandler.DeleteStudent)
	})

	router.Route("/classyears", func(r chi.Router) {
		r.Get("/", classYearHandler.ListClassYears)
		r.Post("/", classYearHandler.CreateClassYear)
		r.Delete("/{classYearID}", classYearHandler.DeleteClassYear)
	})

	router.Get("/ws/standings", webSocketHandler.ServeStandings)
}
