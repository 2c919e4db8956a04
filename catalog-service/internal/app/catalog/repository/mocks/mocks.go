package mocks

import (
	"context"
	"time"

	"carenest/catalog-service/internal/app/catalog/entity"

	"github.com/stretchr/testify/mock"
)

// MockNannyRepository - мок репозитория нянь для тестирования
type MockNannyRepository struct {
	mock.Mock
}

func (m *MockNannyRepository) Create(ctx context.Context, nanny *entity.Nanny) error {
	args := m.Called(ctx, nanny)
	return args.Error(0)
}

func (m *MockNannyRepository) GetByID(ctx context.Context, id uint) (*entity.Nanny, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Nanny), args.Error(1)
}

func (m *MockNannyRepository) List(ctx context.Context, limit, offset int) ([]entity.Nanny, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Nanny), args.Get(1).(int64), args.Error(2)
}

func (m *MockNannyRepository) Update(ctx context.Context, nanny *entity.Nanny) error {
	args := m.Called(ctx, nanny)
	return args.Error(0)
}

func (m *MockNannyRepository) ReplaceTranslations(ctx context.Context, nannyID uint, translations []entity.NannyTranslation) error {
	args := m.Called(ctx, nannyID, translations)
	return args.Error(0)
}

func (m *MockNannyRepository) ReplacePhotos(ctx context.Context, nannyID uint, photos []entity.NannyPhoto) error {
	args := m.Called(ctx, nannyID, photos)
	return args.Error(0)
}

func (m *MockNannyRepository) ReplaceLanguages(ctx context.Context, nanny *entity.Nanny, languageIDs []uint) error {
	args := m.Called(ctx, nanny, languageIDs)
	return args.Error(0)
}

func (m *MockNannyRepository) ReplaceServices(ctx context.Context, nanny *entity.Nanny, serviceIDs []uint) error {
	args := m.Called(ctx, nanny, serviceIDs)
	return args.Error(0)
}

func (m *MockNannyRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDoctorRepository - мок репозитория врачей для тестирования
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id uint) (*entity.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) List(ctx context.Context, limit, offset int) ([]entity.Doctor, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Doctor), args.Get(1).(int64), args.Error(2)
}

func (m *MockDoctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) ReplaceTranslations(ctx context.Context, doctorID uint, translations []entity.DoctorTranslation) error {
	args := m.Called(ctx, doctorID, translations)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaxonomyRepository - мок репозитория справочников для тестирования
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) ListLanguages(ctx context.Context) ([]entity.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Language), args.Error(1)
}

func (m *MockTaxonomyRepository) ListServices(ctx context.Context) ([]entity.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *MockTaxonomyRepository) ListDegrees(ctx context.Context) ([]entity.Degree, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Degree), args.Error(1)
}

func (m *MockTaxonomyRepository) ListLocations(ctx context.Context) ([]entity.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Location), args.Error(1)
}

// MockTaxonomyCache - мок кеша справочников для тестирования
type MockTaxonomyCache struct {
	mock.Mock
}

func (m *MockTaxonomyCache) GetLanguages(ctx context.Context) ([]entity.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Language), args.Error(1)
}

func (m *MockTaxonomyCache) SetLanguages(ctx context.Context, languages []entity.Language, ttl time.Duration) error {
	args := m.Called(ctx, languages, ttl)
	return args.Error(0)
}

func (m *MockTaxonomyCache) GetServices(ctx context.Context) ([]entity.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *MockTaxonomyCache) SetServices(ctx context.Context, services []entity.Service, ttl time.Duration) error {
	args := m.Called(ctx, services, ttl)
	return args.Error(0)
}

func (m *MockTaxonomyCache) GetDegrees(ctx context.Context) ([]entity.Degree, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Degree), args.Error(1)
}

func (m *MockTaxonomyCache) SetDegrees(ctx context.Context, degrees []entity.Degree, ttl time.Duration) error {
	args := m.Called(ctx, degrees, ttl)
	return args.Error(0)
}

func (m *MockTaxonomyCache) GetLocations(ctx context.Context) ([]entity.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Location), args.Error(1)
}

func (m *MockTaxonomyCache) SetLocations(ctx context.Context, locations []entity.Location, ttl time.Duration) error {
	args := m.Called(ctx, locations, ttl)
	return args.Error(0)
}

func (m *MockTaxonomyCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher - мок Kafka producer для тестирования
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
