package handler

import (
	"errors"
	"movie_reservation/constants"
	"movie_reservation/helper"
	"movie_reservation/model"
	"movie_reservation/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	registerInput := input[model.RegisterInput](c)
	registerInput.Email = strings.ToLower(strings.TrimSpace(registerInput.Email))

	ctx, cancel := h.storage(c)
	defer cancel()
	db := h.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", registerInput.Email).Count(&count).Error; err != nil {
		return utils.Internal(err)
	}
	if count > 0 {
		return utils.Conflict(constants.EMAIL_ALREADY_USED)
	}

	hash, err := helper.HashPassword(registerInput.Password)
	if err != nil {
		return utils.Internal(err)
	}

	newUser := new(model.User)
	if err := copier.Copy(newUser, registerInput); err != nil {
		return utils.Internal(err)
	}
	newUser.Password = hash
	newUser.Role = constants.ROLE_USER
	if err := db.Create(newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(constants.EMAIL_ALREADY_USED)
		}
		return utils.Internal(err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, constants.USER_REGISTERED, newUser)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	loginInput := input[model.LoginInput](c)

	ctx, cancel := h.storage(c)
	defer cancel()

	var user model.User
	err := h.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(loginInput.Email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Unauthorized(constants.INVALID_CREDENTIALS)
	}
	if err != nil {
		return utils.Internal(err)
	}
	if !helper.CheckPasswordHash(loginInput.Password, user.Password) {
		return utils.Unauthorized(constants.INVALID_CREDENTIALS)
	}

	if err := h.Tokens.SetAuthCookies(c, &user, h.Settings.CookieSecure); err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.LOGIN_SUCCESS, user)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.USER_FETCHED, user)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	helper.ClearAuthCookies(c, h.Settings.CookieSecure)
	return utils.SuccessResponse(c, fiber.StatusOK, constants.LOGOUT_SUCCESS, nil)
}

// RefreshToken reissues the cookies from the role currently stored, so a promotion
// or demotion takes effect without logging in again.
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			helper.ClearAuthCookies(c, h.Settings.CookieSecure)
			return utils.Unauthorized(constants.UNAUTHORIZED)
		}
		return err
	}
	if err := h.Tokens.SetAuthCookies(c, user, h.Settings.CookieSecure); err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.TOKEN_REFRESHED, user)
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	passwordInput := input[model.ChangePasswordInput](c)

	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if !helper.CheckPasswordHash(passwordInput.OldPassword, user.Password) {
		return utils.Unauthorized(constants.WRONG_PASSWORD)
	}

	hash, err := helper.HashPassword(passwordInput.NewPassword)
	if err != nil {
		return utils.Internal(err)
	}

	ctx, cancel := h.storage(c)
	defer cancel()
	if err := h.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID).Update("password", hash).Error; err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.PASSWORD_CHANGED, nil)
}

// ForgotPassword answers the same way whether or not the email is registered.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	forgotInput := input[model.ForgotPasswordInput](c)
	email := strings.ToLower(strings.TrimSpace(forgotInput.Email))

	ctx, cancel := h.storage(c)
	defer cancel()

	var user model.User
	err := h.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.SuccessResponse(c, fiber.StatusOK, constants.RESET_CODE_SENT, nil)
	}
	if err != nil {
		return utils.Internal(err)
	}

	code, err := h.Codes.Issue(ctx, email)
	if err != nil {
		return utils.Internal(err)
	}
	if h.Mailer == nil {
		return utils.Internal(errors.New("mailer is not configured"))
	}
	if err := h.Mailer.SendResetCode(email, code); err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.RESET_CODE_SENT, nil)
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	resetInput := input[model.ResetPasswordInput](c)
	email := strings.ToLower(strings.TrimSpace(resetInput.Email))

	ctx, cancel := h.storage(c)
	defer cancel()

	ok, err := h.Codes.Consume(ctx, email, resetInput.Code)
	if err != nil {
		return utils.Internal(err)
	}
	if !ok {
		return utils.ValidationFailed(constants.INVALID_RESET_CODE, nil)
	}

	hash, err := helper.HashPassword(resetInput.NewPassword)
	if err != nil {
		return utils.Internal(err)
	}
	result := h.DB.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Update("password", hash)
	if result.Error != nil {
		return utils.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound("User")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.PASSWORD_RESET, nil)
}

func (h *Handler) currentUser(c *fiber.Ctx) (*model.User, error) {
	ctx, cancel := h.storage(c)
	defer cancel()

	var user model.User
	if err := h.DB.WithContext(ctx).First(&user, currentUserId(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User")
		}
		return nil, utils.Internal(err)
	}
	return &user, nil
}
