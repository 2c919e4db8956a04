package repository

import (
	"context"
	"errors"
	"time"

	"carenest/children-service/internal/app/children/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type childRepository struct {
	db *gorm.DB
}

// NewChildRepository создает новый репозиторий детей
func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

// Create создает запись о ребенке без регистрационного токена
func (r *childRepository) Create(ctx context.Context, child *entity.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

// CreateWithToken гасит регистрационный токен и создает ребенка в одной транзакции.
//
// Погашение выражено как условное обновление "перевести в used, только если
// сейчас не used": из двух конкурирующих запросов с одним кодом ровно один
// затронет строку. Ноль затронутых строк означает Conflict (или NotFound,
// если токена с таким кодом вообще нет), и транзакция откатывается -
// токен не может быть молча сожжен без созданной записи о ребенке.
func (r *childRepository) CreateWithToken(ctx context.Context, child *entity.Child, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&entity.RegistrationToken{}).
			Where("code = ? AND (used IS NULL OR used = ?)", code, false).
			Updates(map[string]interface{}{
				"used":    true,
				"used_at": now,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Различаем "токена нет" и "токен уже погашен"
			var count int64
			if err := tx.Model(&entity.RegistrationToken{}).
				Where("code = ?", code).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrTokenNotFound
			}
			return ErrTokenUsed
		}

		child.TokenCode = code
		return tx.Create(child).Error
	})
}

// GetByID получает ребенка по ID
func (r *childRepository) GetByID(ctx context.Context, id uint) (*entity.Child, error) {
	var child entity.Child
	result := r.db.WithContext(ctx).First(&child, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, result.Error
	}

	return &child, nil
}

// GetByTokenCode получает ребенка, зарегистрированного по данному коду
func (r *childRepository) GetByTokenCode(ctx context.Context, code string) (*entity.Child, error) {
	var child entity.Child
	result := r.db.WithContext(ctx).First(&child, "token_code = ?", code)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, result.Error
	}

	return &child, nil
}

// ListByUser получает всех детей родителя, новые первыми
func (r *childRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Child, error) {
	var children []entity.Child
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&children)

	if result.Error != nil {
		return nil, result.Error
	}

	return children, nil
}

// Update обновляет данные ребенка
func (r *childRepository) Update(ctx context.Context, child *entity.Child) error {
	result := r.db.WithContext(ctx).Model(child).
		Where("id = ?", child.ID).
		Updates(map[string]interface{}{
			"name":       child.Name,
			"last_name":  child.LastName,
			"address":    child.Address,
			"birthday":   child.Birthday,
			"blood_type": child.BloodType,
			"gender":     child.Gender,
			"image_url":  child.ImageURL,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrChildNotFound
	}

	return nil
}

// Delete удаляет запись о ребенке
func (r *childRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Child{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrChildNotFound
	}

	return nil
}
