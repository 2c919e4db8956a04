package repository

import (
	"context"
	"errors"

	"carenest/catalog-service/internal/app/catalog/entity"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository создает новый репозиторий врачей
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

// Create создает профиль врача вместе с переводами
func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

// GetByID получает врача со всеми связями
func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	result := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Degree").
		Preload("Location").
		First(&doctor, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, result.Error
	}

	return &doctor, nil
}

// List получает страницу врачей со связями, новые первыми
func (r *doctorRepository) List(ctx context.Context, limit, offset int) ([]entity.Doctor, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Doctor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []entity.Doctor
	result := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Degree").
		Preload("Location").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&doctors)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return doctors, total, nil
}

// Update обновляет скалярные поля профиля врача
func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	result := r.db.WithContext(ctx).Model(doctor).
		Where("id = ?", doctor.ID).
		Updates(map[string]interface{}{
			"experience":  doctor.Experience,
			"photo_url":   doctor.PhotoURL,
			"degree_id":   doctor.DegreeID,
			"location_id": doctor.LocationID,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}

	return nil
}

// ReplaceTranslations заменяет все переводы врача
func (r *doctorRepository) ReplaceTranslations(ctx context.Context, doctorID uint, translations []entity.DoctorTranslation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorTranslation{}).Error; err != nil {
			return err
		}
		if len(translations) == 0 {
			return nil
		}
		return tx.Create(&translations).Error
	})
}

// Delete удаляет профиль врача вместе с переводами
func (r *doctorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&entity.DoctorTranslation{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Doctor{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDoctorNotFound
		}
		return nil
	})
}
