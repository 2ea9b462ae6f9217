package validate

import (
	"errors"
	"movie_reservation/constants"
	"movie_reservation/utils"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return len(PasswordFailures(fl.Field().String())) == 0
	}); err != nil {
		panic(err)
	}
	return v
}

// FieldError is one failed rule reported back to the client.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

// PasswordFailures lists every password rule the value breaks.
func PasswordFailures(password string) []string {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	var failures []string
	if len([]rune(password)) < 8 {
		failures = append(failures, "at least 8 characters")
	}
	if !hasUpper {
		failures = append(failures, "an uppercase letter")
	}
	if !hasLower {
		failures = append(failures, "a lowercase letter")
	}
	if !hasDigit {
		failures = append(failures, "a digit")
	}
	return failures
}

// Struct validates input. A missing required field is reported as MissingParameter,
// any other failure as ValidationFailed with the list of broken rules.
func Struct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return utils.ValidationFailed(constants.INVALID_INPUT, nil)
	}

	details := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		// Only top-level fields count as missing; an empty element inside a list is invalid.
		if fe.Tag() == "required" && !strings.ContainsAny(field, ".[") {
			return utils.MissingParameter()
		}
		if fe.Tag() == "password" {
			value, _ := fe.Value().(string)
			for _, failure := range PasswordFailures(value) {
				details = append(details, FieldError{Field: field, Rule: "password", Message: "must contain " + failure})
			}
			continue
		}
		details = append(details, FieldError{Field: field, Rule: fe.Tag(), Message: fe.Param()})
	}
	return utils.ValidationFailed(constants.VALIDATION_FAILED, fiber.Map{"errors": details})
}

// body parses the JSON body into T, validates it and stores it in Locals("input").
func body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(T)
		if err := c.BodyParser(input); err != nil {
			return utils.ValidationFailed(constants.INVALID_INPUT, nil)
		}
		if err := Struct(input); err != nil {
			return err
		}

		c.Locals("input", input)
		return c.Next()
	}
}

// GetById parses the numeric route param key and stores it in Locals("id").
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		valueKey, err := strconv.ParseUint(c.Params(key), 10, 32)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
		}

		c.Locals("id", uint(valueKey))
		return c.Next()
	}
}
