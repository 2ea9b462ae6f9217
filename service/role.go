package service

import (
	"context"
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleService moves accounts along the user <-> admin ladder. superAdmin is
// assigned only by bootstrap seeding and never changes here.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

func (s *RoleService) Promote(ctx context.Context, userId uint) (*model.User, error) {
	return s.transition(ctx, userId, constants.ROLE_USER, constants.ROLE_ADMIN, constants.USER_NOT_PROMOTABLE)
}

func (s *RoleService) Demote(ctx context.Context, userId uint) (*model.User, error) {
	return s.transition(ctx, userId, constants.ROLE_ADMIN, constants.ROLE_USER, constants.USER_NOT_DEMOTABLE)
}

func (s *RoleService) transition(ctx context.Context, userId uint, from, to, refusal string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userId).Error; err != nil {
			return notFoundOr(err, "User")
		}
		if user.Role != from {
			return utils.InvalidState(refusal)
		}
		user.Role = to
		return tx.Model(&model.User{}).Where("id = ?", user.ID).Update("role", to).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return &user, nil
}
