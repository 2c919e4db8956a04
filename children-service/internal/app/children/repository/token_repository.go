package repository

import (
	"context"
	"errors"

	"carenest/children-service/internal/app/children/entity"

	"gorm.io/gorm"
)

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository создает новый репозиторий регистрационных токенов
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// GetByCode получает токен по коду (код уже нормализован к верхнему регистру)
func (r *tokenRepository) GetByCode(ctx context.Context, code string) (*entity.RegistrationToken, error) {
	var token entity.RegistrationToken
	result := r.db.WithContext(ctx).First(&token, "code = ?", code)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, result.Error
	}

	return &token, nil
}
