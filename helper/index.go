package helper

import (
	"errors"
	"fmt"
	"movie_reservation/constants"
	"movie_reservation/model"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// TokenIssuer signs and verifies the per-tier cookies. Each tier has its own secret,
// so a user token can never be replayed as an admin token.
type TokenIssuer struct {
	secrets map[constants.Tier][]byte
	ttl     time.Duration
	now     func() time.Time
}

func NewTokenIssuer(userSecret, adminSecret, superAdminSecret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secrets: map[constants.Tier][]byte{
			constants.TIER_USER:        []byte(userSecret),
			constants.TIER_ADMIN:       []byte(adminSecret),
			constants.TIER_SUPER_ADMIN: []byte(superAdminSecret),
		},
		ttl: ttl,
		now: time.Now,
	}
}

func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

func (i *TokenIssuer) Generate(tier constants.Tier, tokenClaim model.TokenClaim) (string, error) {
	secret, ok := i.secrets[tier]
	if !ok || len(secret) == 0 {
		return "", fmt.Errorf("no secret configured for tier %d", tier)
	}
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = tokenClaim.UserId
	claims["email"] = tokenClaim.Email
	claims["role"] = tokenClaim.Role
	claims["exp"] = i.now().Add(i.ttl).Unix()

	return token.SignedString(secret)
}

func (i *TokenIssuer) Parse(tier constants.Tier, tokenString string) (model.TokenClaim, error) {
	secret, ok := i.secrets[tier]
	if !ok || len(secret) == 0 {
		return model.TokenClaim{}, fmt.Errorf("no secret configured for tier %d", tier)
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return model.TokenClaim{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.TokenClaim{}, errors.New("invalid token claims")
	}
	userId, ok := claims["userId"].(float64)
	if !ok || userId <= 0 {
		return model.TokenClaim{}, errors.New("invalid userId in payload")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return model.TokenClaim{UserId: uint(userId), Email: email, Role: role}, nil
}

// TiersForRole lists the cookies a role is entitled to.
func TiersForRole(role string) []constants.Tier {
	switch role {
	case constants.ROLE_SUPER_ADMIN:
		return []constants.Tier{constants.TIER_USER, constants.TIER_ADMIN, constants.TIER_SUPER_ADMIN}
	case constants.ROLE_ADMIN:
		return []constants.Tier{constants.TIER_USER, constants.TIER_ADMIN}
	default:
		return []constants.Tier{constants.TIER_USER}
	}
}

func CookieName(tier constants.Tier) string {
	switch tier {
	case constants.TIER_SUPER_ADMIN:
		return constants.COOKIE_SUPER_ADMIN_TOKEN
	case constants.TIER_ADMIN:
		return constants.COOKIE_ADMIN_TOKEN
	default:
		return constants.COOKIE_TOKEN
	}
}

var allTiers = []constants.Tier{constants.TIER_USER, constants.TIER_ADMIN, constants.TIER_SUPER_ADMIN}

// SetAuthCookies issues one cookie per tier the user's role grants and clears the rest.
func (i *TokenIssuer) SetAuthCookies(c *fiber.Ctx, user *model.User, secure bool) error {
	claim := model.TokenClaim{UserId: user.ID, Email: user.Email, Role: user.Role}
	granted := map[constants.Tier]bool{}
	for _, tier := range TiersForRole(user.Role) {
		token, err := i.Generate(tier, claim)
		if err != nil {
			return err
		}
		granted[tier] = true
		c.Cookie(&fiber.Cookie{
			Name:     CookieName(tier),
			Value:    token,
			Expires:  i.now().Add(i.ttl),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteStrictMode,
			Secure:   secure,
			Path:     "/",
		})
	}
	for _, tier := range allTiers {
		if !granted[tier] {
			clearCookie(c, CookieName(tier), secure)
		}
	}
	return nil
}

func ClearAuthCookies(c *fiber.Ctx, secure bool) {
	for _, tier := range allTiers {
		clearCookie(c, CookieName(tier), secure)
	}
}

func clearCookie(c *fiber.Ctx, name string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   secure,
		Path:     "/",
	})
}
