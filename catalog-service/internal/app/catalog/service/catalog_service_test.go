package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"carenest/catalog-service/internal/app/catalog/entity"
	"carenest/catalog-service/internal/app/catalog/repository"
	"carenest/catalog-service/internal/app/catalog/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogMocks struct {
	nannyRepo    *mocks.MockNannyRepository
	doctorRepo   *mocks.MockDoctorRepository
	taxonomyRepo *mocks.MockTaxonomyRepository
	cache        *mocks.MockTaxonomyCache
	publisher    *mocks.MockMessagePublisher
}

func newTestCatalogService() (*CatalogService, *catalogMocks) {
	m := &catalogMocks{
		nannyRepo:    new(mocks.MockNannyRepository),
		doctorRepo:   new(mocks.MockDoctorRepository),
		taxonomyRepo: new(mocks.MockTaxonomyRepository),
		cache:        new(mocks.MockTaxonomyCache),
		publisher:    new(mocks.MockMessagePublisher),
	}
	svc := NewCatalogService(m.nannyRepo, m.doctorRepo, m.taxonomyRepo, m.cache, m.publisher)
	return svc, m
}

func testDoctor() *entity.Doctor {
	return &entity.Doctor{
		ID:         7,
		Experience: 12,
		PhotoURL:   "https://cdn.example.com/doc7.jpg",
		Translations: []entity.DoctorTranslation{
			{DoctorID: 7, Lang: "en", Name: "Anna Petrosyan", Specialty: "Pediatrician", About: "12 years of practice"},
			{DoctorID: 7, Lang: "hy", Name: "Աննա Պետրոսյան", Specialty: "Մանկաբույժ", About: "12 տարվա փորձ"},
		},
	}
}

func TestGetDoctor_RequestedLanguage(t *testing.T) {
	svc, m := newTestCatalogService()

	m.doctorRepo.On("GetByID", mock.Anything, uint(7)).Return(testDoctor(), nil)

	view, err := svc.GetDoctor(context.Background(), 7, "hy")

	require.NoError(t, err)
	assert.Equal(t, "Աննա Պետրոսյան", view.Name)
	assert.Equal(t, "Մանկաբույժ", view.Specialty)
}

func TestGetDoctor_FallsBackToDefaultLanguage(t *testing.T) {
	svc, m := newTestCatalogService()

	m.doctorRepo.On("GetByID", mock.Anything, uint(7)).Return(testDoctor(), nil)

	view, err := svc.GetDoctor(context.Background(), 7, "ru")

	require.NoError(t, err)
	assert.Equal(t, "Anna Petrosyan", view.Name)
	assert.Equal(t, "Pediatrician", view.Specialty)
}

func TestGetDoctor_FallsBackToFirstTranslation(t *testing.T) {
	svc, m := newTestCatalogService()

	doctor := testDoctor()
	doctor.Translations = doctor.Translations[1:] // остался только hy

	m.doctorRepo.On("GetByID", mock.Anything, uint(7)).Return(doctor, nil)

	view, err := svc.GetDoctor(context.Background(), 7, "ru")

	require.NoError(t, err)
	assert.Equal(t, "Աննա Պետրոսյան", view.Name)
}

func TestGetDoctor_NotFound(t *testing.T) {
	svc, m := newTestCatalogService()

	m.doctorRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, repository.ErrDoctorNotFound)

	_, err := svc.GetDoctor(context.Background(), 99, "en")

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestListNannies_Pagination(t *testing.T) {
	svc, m := newTestCatalogService()

	nannies := []entity.Nanny{
		{ID: 1, Translations: []entity.NannyTranslation{{Lang: "en", Name: "Maria"}}},
		{ID: 2, Translations: []entity.NannyTranslation{{Lang: "en", Name: "Lusine"}}},
	}
	m.nannyRepo.On("List", mock.Anything, PageSize, PageSize).Return(nannies, int64(12), nil)

	data, err := svc.ListNannies(context.Background(), "en", 2)

	require.NoError(t, err)
	assert.Len(t, data.Nannies, 2)
	assert.Equal(t, 2, data.Pagination.Page)
	assert.Equal(t, int64(12), data.Pagination.Total)
	assert.Equal(t, 2, data.Pagination.TotalPages)
}

func TestListNannies_PageBelowOneResetsToFirst(t *testing.T) {
	svc, m := newTestCatalogService()

	m.nannyRepo.On("List", mock.Anything, PageSize, 0).Return([]entity.Nanny{}, int64(0), nil)

	data, err := svc.ListNannies(context.Background(), "en", -3)

	require.NoError(t, err)
	assert.Equal(t, 1, data.Pagination.Page)
	assert.Equal(t, 0, data.Pagination.TotalPages)
}

func TestCreateNanny_PublishesEventAndAttachesLinks(t *testing.T) {
	svc, m := newTestCatalogService()

	req := &entity.CreateNannyRequest{
		Experience: 5,
		HourlyRate: 12.5,
		Translations: []entity.TranslationInput{
			{Lang: "en", Name: "Maria", About: "Experienced nanny"},
		},
		PhotoURLs:   []string{"https://cdn.example.com/n1.jpg"},
		LanguageIDs: []uint{1, 2},
		ServiceIDs:  []uint{3},
	}

	m.nannyRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Nanny) bool {
		return len(n.Translations) == 1 && len(n.Photos) == 1 && n.Photos[0].Position == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Nanny).ID = 42
	}).Return(nil)
	m.nannyRepo.On("ReplaceLanguages", mock.Anything, mock.Anything, []uint{1, 2}).Return(nil)
	m.nannyRepo.On("ReplaceServices", mock.Anything, mock.Anything, []uint{3}).Return(nil)
	m.publisher.On("PublishMessage", mock.Anything, "nanny:42", mock.Anything).Return(nil)
	m.nannyRepo.On("GetByID", mock.Anything, uint(42)).Return(&entity.Nanny{
		ID:           42,
		Translations: []entity.NannyTranslation{{Lang: "en", Name: "Maria"}},
	}, nil)

	view, err := svc.CreateNanny(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, uint(42), view.ID)
	m.publisher.AssertExpectations(t)
	m.nannyRepo.AssertExpectations(t)
}

func TestCreateDoctor_KafkaErrorDoesNotFailCreation(t *testing.T) {
	svc, m := newTestCatalogService()

	req := &entity.CreateDoctorRequest{
		Experience: 3,
		Translations: []entity.TranslationInput{
			{Lang: "en", Name: "Anna", Specialty: "Pediatrician"},
		},
	}

	m.doctorRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Doctor).ID = 7
	}).Return(nil)
	m.publisher.On("PublishMessage", mock.Anything, "doctor:7", mock.Anything).
		Return(errors.New("kafka unavailable"))
	m.doctorRepo.On("GetByID", mock.Anything, uint(7)).Return(testDoctor(), nil)

	view, err := svc.CreateDoctor(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, uint(7), view.ID)
}

func TestUpdateNanny_ReplacesTranslationsWholesale(t *testing.T) {
	svc, m := newTestCatalogService()

	existing := &entity.Nanny{ID: 5, Experience: 2, HourlyRate: 10}
	m.nannyRepo.On("GetByID", mock.Anything, uint(5)).Return(existing, nil)

	newRate := 15.0
	req := &entity.UpdateNannyRequest{
		HourlyRate: &newRate,
		Translations: []entity.TranslationInput{
			{Lang: "en", Name: "Maria G.", About: "Updated bio"},
		},
	}

	m.nannyRepo.On("Update", mock.Anything, mock.MatchedBy(func(n *entity.Nanny) bool {
		return n.HourlyRate == 15.0 && n.Experience == 2
	})).Return(nil)
	m.nannyRepo.On("ReplaceTranslations", mock.Anything, uint(5), mock.MatchedBy(func(trs []entity.NannyTranslation) bool {
		return len(trs) == 1 && trs[0].NannyID == 5 && trs[0].Name == "Maria G."
	})).Return(nil)
	m.publisher.On("PublishMessage", mock.Anything, "nanny:5", mock.Anything).Return(nil)

	_, err := svc.UpdateNanny(context.Background(), 5, req)

	require.NoError(t, err)
	m.nannyRepo.AssertExpectations(t)
}

func TestDeleteNanny_NotFound(t *testing.T) {
	svc, m := newTestCatalogService()

	m.nannyRepo.On("Delete", mock.Anything, uint(99)).Return(repository.ErrNannyNotFound)

	err := svc.DeleteNanny(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNannyNotFound)
	m.publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetLanguages_CacheHitSkipsRepository(t *testing.T) {
	svc, m := newTestCatalogService()

	cached := []entity.Language{{ID: 1, Code: "en", Name: "English"}}
	m.cache.On("GetLanguages", mock.Anything).Return(cached, nil)

	languages, err := svc.GetLanguages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, languages)
	m.taxonomyRepo.AssertNotCalled(t, "ListLanguages", mock.Anything)
}

func TestGetLanguages_CacheMissLoadsAndCaches(t *testing.T) {
	svc, m := newTestCatalogService()

	fromDB := []entity.Language{
		{ID: 1, Code: "en", Name: "English"},
		{ID: 2, Code: "hy", Name: "Armenian"},
	}
	m.cache.On("GetLanguages", mock.Anything).Return(nil, nil)
	m.taxonomyRepo.On("ListLanguages", mock.Anything).Return(fromDB, nil)
	m.cache.On("SetLanguages", mock.Anything, fromDB, time.Hour).Return(nil)

	languages, err := svc.GetLanguages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fromDB, languages)
	m.cache.AssertExpectations(t)
}

func TestGetServices_CacheWriteFailureIsNotFatal(t *testing.T) {
	svc, m := newTestCatalogService()

	fromDB := []entity.Service{{ID: 3, Name: "Night care"}}
	m.cache.On("GetServices", mock.Anything).Return(nil, nil)
	m.taxonomyRepo.On("ListServices", mock.Anything).Return(fromDB, nil)
	m.cache.On("SetServices", mock.Anything, fromDB, time.Hour).
		Return(errors.New("redis unavailable"))

	services, err := svc.GetServices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fromDB, services)
}
