package repositories

import (
	"context"
	"errors"
	"strings"

	"dugun.site/configs/configslog"
	"dugun.site/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IOperatorRepository panel operatörü için veritabanı işlemleri.
type IOperatorRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Operator, error)
	Save(ctx context.Context, operator *models.Operator) error
}

type OperatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) IOperatorRepository {
	return &OperatorRepository{db: db}
}

// FindByEmail e-posta büyük/küçük harf duyarsız aranır.
func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var op models.Operator
	err := dbFromContext(ctx, r.db).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&op).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("OperatorRepository.FindByEmail: DB error", zap.Error(err))
		return nil, err
	}
	return &op, nil
}

// Save operatörü e-postaya göre ekler ya da şifre hash'ini günceller.
func (r *OperatorRepository) Save(ctx context.Context, operator *models.Operator) error {
	if operator == nil || operator.Email == "" || operator.PasswordHash == "" {
		return errors.New("geçersiz operatör verisi")
	}
	operator.Email = strings.ToLower(strings.TrimSpace(operator.Email))
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(operator).Error
}

var _ IOperatorRepository = (*OperatorRepository)(nil)
