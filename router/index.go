package router

import (
	"movie_reservation/handler"
	"movie_reservation/middleware"
	"movie_reservation/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())

	user := middleware.User(h.Tokens)
	admin := middleware.Admin(h.Tokens)
	superAdmin := middleware.SuperAdmin(h.Tokens)
	byId := validate.GetById("id")

	auth := api.Group("/auth")
	auth.Post("/register", validate.Register(), h.Register)
	auth.Post("/login", validate.Login(), h.Login)
	auth.Post("/forgot-password", validate.ForgotPassword(), h.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), h.ResetPassword)
	auth.Get("/me", user, h.Me)
	auth.Post("/logout", user, h.Logout)
	auth.Post("/refresh-token", user, h.RefreshToken)
	auth.Post("/change-password", user, validate.ChangePassword(), h.ChangePassword)

	movies := api.Group("/movies")
	movies.Post("/poster-signature", admin, validate.PosterSignature(), h.PosterSignature)
	movies.Get("/", admin, h.GetMovies)
	movies.Post("/", admin, validate.CreateMovie(), h.CreateMovie)
	movies.Get("/:id/showtimes", user, byId, h.GetMovieShowtimes)
	movies.Get("/:id", admin, byId, h.GetMovieById)
	movies.Put("/:id", admin, byId, validate.CreateMovie(), h.ReplaceMovie)
	movies.Patch("/:id", admin, byId, validate.PatchMovie(), h.PatchMovie)
	movies.Delete("/:id", admin, byId, h.DeleteMovie)

	halls := api.Group("/halls")
	halls.Get("/", user, h.GetHalls)
	halls.Get("/:id", user, byId, h.GetHallById)
	halls.Post("/", admin, validate.CreateHall(), h.CreateHall)
	halls.Put("/:id", admin, byId, validate.CreateHall(), h.ReplaceHall)
	halls.Patch("/:id", admin, byId, validate.PatchHall(), h.PatchHall)
	halls.Delete("/:id", admin, byId, h.DeleteHall)

	showtimes := api.Group("/showtimes")
	showtimes.Get("/", user, h.GetShowtimes)
	showtimes.Get("/:id/seats/ws", user, byId, handler.UpgradeSeatFeed, websocket.New(h.SeatFeed))
	showtimes.Get("/:id/seats", user, byId, h.GetShowtimeSeats)
	showtimes.Get("/:id", user, byId, h.GetShowtimeById)
	showtimes.Post("/", admin, validate.CreateShowtime(), h.CreateShowtime)
	showtimes.Put("/:id", admin, byId, validate.CreateShowtime(), h.ReplaceShowtime)
	showtimes.Patch("/:id", admin, byId, validate.PatchShowtime(), h.PatchShowtime)
	showtimes.Delete("/:id", admin, byId, h.DeleteShowtime)

	reservations := api.Group("/reservations")
	reservations.Post("/", user, validate.CreateReservation(), h.CreateReservation)
	reservations.Get("/my", user, h.GetMyReservations)
	reservations.Get("/:id/qr", user, byId, h.GetReservationQRCode)
	reservations.Delete("/:id", user, byId, h.CancelReservation)

	users := api.Group("/users")
	users.Put("/:id/promote", admin, byId, h.PromoteUser)
	users.Put("/:id/demote", superAdmin, byId, h.DemoteUser)

	adminGroup := api.Group("/admin", admin)
	adminGroup.Get("/reservations", h.GetAllReservations)
	adminGroup.Get("/reports", h.GetReports)
}
