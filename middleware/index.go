package middleware

import (
	"movie_reservation/constants"
	"movie_reservation/helper"
	"movie_reservation/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected admits requests carrying a valid cookie for tier. The parsed claim is
// stored in Locals("claim") and the user id in Locals("userId").
func Protected(issuer *helper.TokenIssuer, tier constants.Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(helper.CookieName(tier))
		if token == "" {
			return utils.Unauthorized(constants.UNAUTHORIZED)
		}

		claim, err := issuer.Parse(tier, token)
		if err != nil {
			return utils.Unauthorized(constants.UNAUTHORIZED)
		}

		c.Locals("claim", claim)
		c.Locals("userId", claim.UserId)
		return c.Next()
	}
}

func User(issuer *helper.TokenIssuer) fiber.Handler {
	return Protected(issuer, constants.TIER_USER)
}

func Admin(issuer *helper.TokenIssuer) fiber.Handler {
	return Protected(issuer, constants.TIER_ADMIN)
}

func SuperAdmin(issuer *helper.TokenIssuer) fiber.Handler {
	return Protected(issuer, constants.TIER_SUPER_ADMIN)
}
