package handler

import (
	"errors"
	"movie_reservation/constants"
	"movie_reservation/helper"
	"movie_reservation/model"
	"movie_reservation/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (h *Handler) GetMovies(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	ctx, cancel := h.storage(c)
	defer cancel()

	var movies []model.Movie
	if err := utils.ApplyPagination(h.DB.WithContext(ctx).Order("id"), pagination).Find(&movies).Error; err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.MOVIES_FETCHED, model.ResponseCustom{
		Rows:  movies,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (h *Handler) GetMovieById(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	var movie model.Movie
	if err := h.DB.WithContext(ctx).First(&movie, localId(c)).Error; err != nil {
		return notFoundOr(err, "Movie")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.MOVIE_FETCHED, movie)
}

func (h *Handler) CreateMovie(c *fiber.Ctx) error {
	movieInput := input[model.CreateMovieInput](c)
	ctx, cancel := h.storage(c)
	defer cancel()

	newMovie := new(model.Movie)
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := copier.Copy(newMovie, movieInput); err != nil {
			return err
		}
		newMovie.Genres = model.StringList(movieInput.Genres)

		slug, err := helper.GenerateUniqueMovieSlug(tx, movieInput.Title, 0)
		if err != nil {
			return err
		}
		newMovie.Slug = slug
		return tx.Create(newMovie).Error
	})
	if err != nil {
		return movieWriteError(err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.MOVIE_ADDED, newMovie)
}

// ReplaceMovie handles PUT: every field is required and overwritten.
func (h *Handler) ReplaceMovie(c *fiber.Ctx) error {
	movieInput := input[model.CreateMovieInput](c)
	genres := movieInput.Genres
	return h.updateMovie(c, model.PatchMovieInput{
		Title:       &movieInput.Title,
		Description: &movieInput.Description,
		PosterUrl:   &movieInput.PosterUrl,
		Genres:      &genres,
	})
}

func (h *Handler) PatchMovie(c *fiber.Ctx) error {
	return h.updateMovie(c, *input[model.PatchMovieInput](c))
}

func (h *Handler) updateMovie(c *fiber.Ctx, patch model.PatchMovieInput) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	var movie model.Movie
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&movie, localId(c)).Error; err != nil {
			return notFoundOr(err, "Movie")
		}

		updates := map[string]any{}
		if patch.Title != nil && *patch.Title != movie.Title {
			slug, err := helper.GenerateUniqueMovieSlug(tx, *patch.Title, movie.ID)
			if err != nil {
				return err
			}
			updates["title"] = *patch.Title
			updates["slug"] = slug
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.PosterUrl != nil {
			updates["poster_url"] = *patch.PosterUrl
		}
		if patch.Genres != nil {
			updates["genres"] = model.StringList(*patch.Genres)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&model.Movie{}).Where("id = ?", movie.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&movie, movie.ID).Error
	})
	if err != nil {
		return movieWriteError(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.MOVIE_CHANGED, movie)
}

func (h *Handler) DeleteMovie(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	if err := h.Catalog.DeleteMovie(ctx, localId(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.MOVIE_DELETED, nil)
}

// GetMovieShowtimes lists the scheduled showtimes of one movie, earliest first.
func (h *Handler) GetMovieShowtimes(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()
	db := h.DB.WithContext(ctx)

	var movie model.Movie
	if err := db.First(&movie, localId(c)).Error; err != nil {
		return notFoundOr(err, "Movie")
	}

	var showtimes []model.Showtime
	if err := db.Preload("Movie").Preload("Hall").
		Where("movie_id = ?", movie.ID).
		Order("start_time").
		Find(&showtimes).Error; err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.SHOWTIMES_FETCHED, publicShowtimes(showtimes))
}

// PosterSignature signs a direct browser upload of a poster image to Cloudinary.
func (h *Handler) PosterSignature(c *fiber.Ctx) error {
	if h.Cloud == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.POSTER_UPLOAD_DISABLED, nil)
	}
	signatureInput := input[model.PosterSignatureInput](c)
	folder := signatureInput.Folder
	if folder == "" {
		folder = "posters"
	}

	signature, err := helper.SignPosterUpload(h.Cloud, folder, signatureInput.PublicId, h.Clock.Now())
	if err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.POSTER_SIGNED, signature)
}

func movieWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.Conflict(constants.MOVIE_ALREADY_EXISTS)
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.Internal(err)
}

func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(entity)
	}
	return utils.Internal(err)
}

func publicMovie(movie *model.Movie) model.PublicMovie {
	if movie == nil {
		return model.PublicMovie{}
	}
	return model.PublicMovie{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		PosterUrl:   movie.PosterUrl,
		Genres:      movie.Genres,
	}
}

func publicShowtimes(showtimes []model.Showtime) []model.PublicShowtime {
	rows := make([]model.PublicShowtime, 0, len(showtimes))
	for _, showtime := range showtimes {
		row := model.PublicShowtime{
			ID:        showtime.ID,
			Movie:     publicMovie(showtime.Movie),
			HallId:    showtime.HallId,
			StartTime: showtime.StartTime,
			Price:     showtime.Price,
		}
		if showtime.Hall != nil {
			row.HallName = showtime.Hall.Name
		}
		rows = append(rows, row)
	}
	return rows
}
