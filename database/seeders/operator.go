package seeders

import (
	"context"
	"errors"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/repositories"
	"dugun.site/services"

	"gorm.io/gorm"
)

// ErrAdminPasswordMissing ADMIN_PASSWORD ayarlanmadan operatör oluşturulamaz.
var ErrAdminPasswordMissing = errors.New("ADMIN_PASSWORD ayarlanmamış")

// SeedOperator tek panel operatörünü oluşturur ya da şifresini günceller.
// Şifre loglanmaz.
func SeedOperator(db *gorm.DB, email, password string) error {
	if password == "" {
		return ErrAdminPasswordMissing
	}
	hash, err := services.HashPassword(password)
	if err != nil {
		return err
	}
	repo := repositories.NewOperatorRepository(db)
	if err := repo.Save(context.Background(), &models.Operator{Email: email, PasswordHash: hash}); err != nil {
		return err
	}
	configslog.SLog.Infof("Panel operatörü hazır: %s", email)
	return nil
}
