package repository

import (
	"context"

	"carenest/catalog-service/internal/app/catalog/entity"

	"gorm.io/gorm"
)

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository создает новый репозиторий справочников
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListLanguages(ctx context.Context) ([]entity.Language, error) {
	var languages []entity.Language
	if err := r.db.WithContext(ctx).Order("name").Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}

func (r *taxonomyRepository) ListServices(ctx context.Context) ([]entity.Service, error) {
	var services []entity.Service
	if err := r.db.WithContext(ctx).Order("name").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *taxonomyRepository) ListDegrees(ctx context.Context) ([]entity.Degree, error) {
	var degrees []entity.Degree
	if err := r.db.WithContext(ctx).Order("name").Find(&degrees).Error; err != nil {
		return nil, err
	}
	return degrees, nil
}

func (r *taxonomyRepository) ListLocations(ctx context.Context) ([]entity.Location, error) {
	var locations []entity.Location
	if err := r.db.WithContext(ctx).Order("city").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
