package service

import (
	"context"

	"carenest/catalog-service/internal/app/catalog/entity"
)

// CatalogServiceInterface определяет контракт сервиса каталога
type CatalogServiceInterface interface {
	ListNannies(ctx context.Context, lang string, page int) (*entity.NannyListData, error)
	GetNanny(ctx context.Context, id uint, lang string) (*entity.NannyView, error)
	CreateNanny(ctx context.Context, req *entity.CreateNannyRequest) (*entity.NannyView, error)
	UpdateNanny(ctx context.Context, id uint, req *entity.UpdateNannyRequest) (*entity.NannyView, error)
	DeleteNanny(ctx context.Context, id uint) error

	ListDoctors(ctx context.Context, lang string, page int) (*entity.DoctorListData, error)
	GetDoctor(ctx context.Context, id uint, lang string) (*entity.DoctorView, error)
	CreateDoctor(ctx context.Context, req *entity.CreateDoctorRequest) (*entity.DoctorView, error)
	UpdateDoctor(ctx context.Context, id uint, req *entity.UpdateDoctorRequest) (*entity.DoctorView, error)
	DeleteDoctor(ctx context.Context, id uint) error

	GetLanguages(ctx context.Context) ([]entity.Language, error)
	GetServices(ctx context.Context) ([]entity.Service, error)
	GetDegrees(ctx context.Context) ([]entity.Degree, error)
	GetLocations(ctx context.Context) ([]entity.Location, error)
}
