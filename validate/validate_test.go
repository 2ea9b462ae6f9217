package validate

import (
	"encoding/json"
	"io"
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordFailures(t *testing.T) {
	assert.Empty(t, PasswordFailures("Password123"))
	assert.Equal(t, []string{"at least 8 characters", "an uppercase letter", "a digit"}, PasswordFailures("short"))
	assert.Equal(t, []string{"a lowercase letter"}, PasswordFailures("PASSWORD123"))
}

func TestStructMissingParameter(t *testing.T) {
	err := Struct(&model.RegisterInput{FirstName: "John", Email: "john@example.com", Password: "Password123"})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindMissingParameter))
}

func TestStructPasswordPolicy(t *testing.T) {
	err := Struct(&model.RegisterInput{FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: "password"})
	require.Error(t, err)
	require.True(t, utils.IsKind(err, utils.KindValidationFailed))

	detail := err.(*utils.AppError).Detail.(fiber.Map)["errors"].([]FieldError)
	require.Len(t, detail, 2)
	assert.Equal(t, FieldError{Field: "password", Rule: "password", Message: "must contain an uppercase letter"}, detail[0])
	assert.Equal(t, "must contain a digit", detail[1].Message)
}

func TestStructHallLayout(t *testing.T) {
	err := Struct(&model.CreateHallInput{
		Name: "Hall 1",
		Seats: []model.HallSeat{
			{SeatId: "A1", PriceMultiplier: 1},
			{SeatId: "A1", PriceMultiplier: 2},
		},
	})
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))

	err = Struct(&model.CreateHallInput{
		Name:  "Hall 1",
		Seats: []model.HallSeat{{SeatId: "A1", PriceMultiplier: 0}},
	})
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))

	err = Struct(&model.CreateHallInput{
		Name:  "Hall 1",
		Seats: []model.HallSeat{{SeatId: "A1", PriceMultiplier: 1}},
	})
	assert.NoError(t, err)
}

func TestStructMovieGenres(t *testing.T) {
	input := model.CreateMovieInput{
		Title:       "Inception",
		Description: "Dreams",
		PosterUrl:   "https://img.example.com/inception.png",
		Genres:      []string{"sci-fi", ""},
	}
	assert.True(t, utils.IsKind(Struct(&input), utils.KindValidationFailed))

	input.Genres = []string{"sci-fi"}
	assert.NoError(t, Struct(&input))

	input.PosterUrl = "not a url"
	assert.True(t, utils.IsKind(Struct(&input), utils.KindValidationFailed))
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: utils.FiberErrorHandler})
	app.Post("/", handlers...)
	return app
}

func decode(t *testing.T, body io.Reader) utils.Envelope {
	t.Helper()
	var envelope utils.Envelope
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope
}

func TestBodyMiddlewareStoresInput(t *testing.T) {
	app := newApp(Login(), func(c *fiber.Ctx) error {
		input := c.Locals("input").(*model.LoginInput)
		return c.SendString(input.Email)
	})

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(`{"email":"john@example.com","password":"x"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "john@example.com", string(raw))
}

func TestBodyMiddlewareRejects(t *testing.T) {
	app := newApp(Login(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(`{"email":"john@example.com"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.MISSING_PARAMETER, decode(t, resp.Body).Message)

	req = httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(`{not json`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.INVALID_INPUT, decode(t, resp.Body).Message)
}

func TestGetById(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", GetById("id"), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals("id"))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/12", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.DATA_INPUT_IS_NOT_NUMBER, decode(t, resp.Body).Message)
}
