package repository

import (
	"context"
	"errors"

	"carenest/catalog-service/internal/app/catalog/entity"
)

var (
	ErrNannyNotFound  = errors.New("nanny not found")
	ErrDoctorNotFound = errors.New("doctor not found")
)

type NannyRepository interface {
	Create(ctx context.Context, nanny *entity.Nanny) error
	GetByID(ctx context.Context, id uint) (*entity.Nanny, error)
	List(ctx context.Context, limit, offset int) ([]entity.Nanny, int64, error)
	Update(ctx context.Context, nanny *entity.Nanny) error
	ReplaceTranslations(ctx context.Context, nannyID uint, translations []entity.NannyTranslation) error
	ReplacePhotos(ctx context.Context, nannyID uint, photos []entity.NannyPhoto) error
	ReplaceLanguages(ctx context.Context, nanny *entity.Nanny, languageIDs []uint) error
	ReplaceServices(ctx context.Context, nanny *entity.Nanny, serviceIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	GetByID(ctx context.Context, id uint) (*entity.Doctor, error)
	List(ctx context.Context, limit, offset int) ([]entity.Doctor, int64, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
	ReplaceTranslations(ctx context.Context, doctorID uint, translations []entity.DoctorTranslation) error
	Delete(ctx context.Context, id uint) error
}

// TaxonomyRepository отдает справочники каталога
type TaxonomyRepository interface {
	ListLanguages(ctx context.Context) ([]entity.Language, error)
	ListServices(ctx context.Context) ([]entity.Service, error)
	ListDegrees(ctx context.Context) ([]entity.Degree, error)
	ListLocations(ctx context.Context) ([]entity.Location, error)
}
