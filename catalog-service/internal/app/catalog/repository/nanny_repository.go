package repository

import (
	"context"
	"errors"

	"carenest/catalog-service/internal/app/catalog/entity"

	"gorm.io/gorm"
)

type nannyRepository struct {
	db *gorm.DB
}

// NewNannyRepository создает новый репозиторий нянь
func NewNannyRepository(db *gorm.DB) NannyRepository {
	return &nannyRepository{db: db}
}

// Create создает профиль няни вместе с переводами и фотографиями
func (r *nannyRepository) Create(ctx context.Context, nanny *entity.Nanny) error {
	return r.db.WithContext(ctx).Create(nanny).Error
}

// GetByID получает няню со всеми связями
func (r *nannyRepository) GetByID(ctx context.Context, id uint) (*entity.Nanny, error) {
	var nanny entity.Nanny
	result := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("nanny_photos.position ASC")
		}).
		Preload("Languages").
		Preload("Services").
		Preload("Location").
		First(&nanny, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNannyNotFound
		}
		return nil, result.Error
	}

	return &nanny, nil
}

// List получает страницу нянь со связями, новые первыми
func (r *nannyRepository) List(ctx context.Context, limit, offset int) ([]entity.Nanny, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Nanny{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var nannies []entity.Nanny
	result := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Photos").
		Preload("Languages").
		Preload("Services").
		Preload("Location").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&nannies)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return nannies, total, nil
}

// Update обновляет скалярные поля профиля няни
func (r *nannyRepository) Update(ctx context.Context, nanny *entity.Nanny) error {
	result := r.db.WithContext(ctx).Model(nanny).
		Where("id = ?", nanny.ID).
		Updates(map[string]interface{}{
			"experience":  nanny.Experience,
			"hourly_rate": nanny.HourlyRate,
			"location_id": nanny.LocationID,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNannyNotFound
	}

	return nil
}

// ReplaceTranslations заменяет все переводы няни
func (r *nannyRepository) ReplaceTranslations(ctx context.Context, nannyID uint, translations []entity.NannyTranslation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("nanny_id = ?", nannyID).Delete(&entity.NannyTranslation{}).Error; err != nil {
			return err
		}
		if len(translations) == 0 {
			return nil
		}
		return tx.Create(&translations).Error
	})
}

// ReplacePhotos заменяет все фотографии няни
func (r *nannyRepository) ReplacePhotos(ctx context.Context, nannyID uint, photos []entity.NannyPhoto) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("nanny_id = ?", nannyID).Delete(&entity.NannyPhoto{}).Error; err != nil {
			return err
		}
		if len(photos) == 0 {
			return nil
		}
		return tx.Create(&photos).Error
	})
}

// ReplaceLanguages заменяет связи няни с языками
func (r *nannyRepository) ReplaceLanguages(ctx context.Context, nanny *entity.Nanny, languageIDs []uint) error {
	languages := make([]entity.Language, len(languageIDs))
	for i, id := range languageIDs {
		languages[i] = entity.Language{ID: id}
	}
	return r.db.WithContext(ctx).Model(nanny).Association("Languages").Replace(languages)
}

// ReplaceServices заменяет связи няни с услугами
func (r *nannyRepository) ReplaceServices(ctx context.Context, nanny *entity.Nanny, serviceIDs []uint) error {
	services := make([]entity.Service, len(serviceIDs))
	for i, id := range serviceIDs {
		services[i] = entity.Service{ID: id}
	}
	return r.db.WithContext(ctx).Model(nanny).Association("Services").Replace(services)
}

// Delete удаляет профиль няни вместе с зависимыми записями
func (r *nannyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("nanny_id = ?", id).Delete(&entity.NannyTranslation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("nanny_id = ?", id).Delete(&entity.NannyPhoto{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Nanny{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNannyNotFound
		}
		return nil
	})
}
