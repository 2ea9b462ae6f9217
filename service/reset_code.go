package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"movie_reservation/constants"

	"github.com/redis/go-redis/v9"
)

var ErrResetCodesDisabled = errors.New("password reset requires redis")

// ResetCodes stores short-lived password reset codes keyed by email.
type ResetCodes struct {
	rdb      *redis.Client
	generate func() (string, error)
}

func NewResetCodes(rdb *redis.Client) *ResetCodes {
	return &ResetCodes{rdb: rdb, generate: randomCode}
}

func resetKey(email string) string {
	return "reset:" + email
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue creates a new code for email, replacing any previous one.
func (r *ResetCodes) Issue(ctx context.Context, email string) (string, error) {
	if r == nil || r.rdb == nil {
		return "", ErrResetCodesDisabled
	}
	code, err := r.generate()
	if err != nil {
		return "", err
	}
	if err := r.rdb.Set(ctx, resetKey(email), code, constants.RESET_CODE_TTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Consume reports whether code matches and deletes it on success.
func (r *ResetCodes) Consume(ctx context.Context, email, code string) (bool, error) {
	if r == nil || r.rdb == nil {
		return false, ErrResetCodesDisabled
	}
	stored, err := r.rdb.Get(ctx, resetKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := r.rdb.Del(ctx, resetKey(email)).Err(); err != nil {
		return false, err
	}
	return true, nil
}
