package validate

import (
	"movie_reservation/model"

	"github.com/gofiber/fiber/v2"
)

// CreateMovie is also used for PUT, which replaces every field.
func CreateMovie() fiber.Handler {
	return body[model.CreateMovieInput]()
}

func PatchMovie() fiber.Handler {
	return body[model.PatchMovieInput]()
}

func PosterSignature() fiber.Handler {
	return body[model.PosterSignatureInput]()
}

func CreateHall() fiber.Handler {
	return body[model.CreateHallInput]()
}

func PatchHall() fiber.Handler {
	return body[model.PatchHallInput]()
}

func CreateShowtime() fiber.Handler {
	return body[model.CreateShowtimeInput]()
}

func PatchShowtime() fiber.Handler {
	return body[model.PatchShowtimeInput]()
}

// CreateReservation only parses; the booking service checks the fields in order.
func CreateReservation() fiber.Handler {
	return body[model.CreateReservationInput]()
}
