package utils

import (
	"errors"
	"log"
	"movie_reservation/constants"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Envelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Code    int    `json:"code"`
}

// ErrorResponse writes an error envelope. err is logged, never sent to the client.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil {
		log.Printf("%s %s -> %d %s: %v", c.Method(), c.Path(), status, message, err)
	}
	return c.Status(status).JSON(Envelope{
		Type:    "error",
		Message: message,
		Code:    status,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{
		Type:    "success",
		Message: message,
		Data:    data,
		Code:    status,
	})
}

// AppErrorResponse writes the envelope for a typed application error.
func AppErrorResponse(c *fiber.Ctx, appErr *AppError) error {
	if appErr.Kind == KindInternal {
		return ErrorResponse(c, appErr.Status, constants.ERROR_INTERNAL_ERROR, appErr.Err)
	}
	return c.Status(appErr.Status).JSON(Envelope{
		Type:    "error",
		Message: appErr.Message,
		Data:    appErr.Detail,
		Code:    appErr.Status,
	})
}

// FiberErrorHandler is the catch-all for errors returned by handlers.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return AppErrorResponse(c, appErr)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ErrorResponse(c, fiberErr.Code, fiberErr.Message, nil)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// GetPagination reads page and limit from the query string, defaulting to 1 and 10.
func GetPagination(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = constants.DEFAULT_PAGE
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = constants.DEFAULT_PAGE_LIMIT
	}
	return Pagination{Page: page, Limit: limit}
}

func ApplyPagination(query *gorm.DB, p Pagination) *gorm.DB {
	if p.Limit > 0 && p.Page >= 1 {
		query = query.Limit(p.Limit).Offset(p.Limit * (p.Page - 1))
	}
	return query
}

func Ptr[T any](v T) *T {
	return &v
}
