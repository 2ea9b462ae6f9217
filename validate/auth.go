package validate

import (
	"movie_reservation/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return body[model.RegisterInput]()
}

func Login() fiber.Handler {
	return body[model.LoginInput]()
}

func ChangePassword() fiber.Handler {
	return body[model.ChangePasswordInput]()
}

func ForgotPassword() fiber.Handler {
	return body[model.ForgotPasswordInput]()
}

func ResetPassword() fiber.Handler {
	return body[model.ResetPasswordInput]()
}
