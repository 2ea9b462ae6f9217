package database

import (
	"errors"
	"log"
	"movie_reservation/config"
	"movie_reservation/constants"
	"movie_reservation/helper"
	"movie_reservation/model"

	"gorm.io/gorm"
)

// SeedAccounts creates the bootstrap super admin and, when configured, a default admin.
// Existing accounts are left untouched, so restarts never reset a password or role.
func SeedAccounts(db *gorm.DB, cfg config.Settings) error {
	accounts := []struct {
		email     string
		password  string
		firstName string
		role      string
	}{
		{cfg.SuperAdminEmail, cfg.SuperAdminPassword, "Super", constants.ROLE_SUPER_ADMIN},
		{cfg.AdminEmail, cfg.AdminPassword, "System", constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		if account.email == "" || account.password == "" {
			continue
		}
		var existing model.User
		err := db.Where("email = ?", account.email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hash, err := helper.HashPassword(account.password)
		if err != nil {
			return err
		}
		user := model.User{
			FirstName: account.firstName,
			LastName:  "Administrator",
			Email:     account.email,
			Password:  hash,
			Role:      account.role,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Println("failed to seed account:", account.email, "error:", err)
			return err
		}
		log.Printf("Seeded %s account %s", account.role, account.email)
	}
	return nil
}
