package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carenest/catalog-service/internal/app/catalog/entity"
	"carenest/catalog-service/internal/app/catalog/repository"
	"carenest/catalog-service/internal/app/catalog/util"
	"carenest/pkg/logger"
	"carenest/pkg/metrics"
)

var (
	ErrNannyNotFound  = errors.New("nanny not found")
	ErrDoctorNotFound = errors.New("doctor not found")
)

// PageSize - размер страницы списков каталога
const PageSize = 10

// taxonomyCacheTTL - время жизни кеша справочников.
// Справочники меняются редко, час - безопасный компромисс.
const taxonomyCacheTTL = time.Hour

// CatalogService обрабатывает бизнес-логику каталога нянь и врачей.
// Координирует репозитории, Redis кеш справочников и Kafka producer.
type CatalogService struct {
	nannyRepo    repository.NannyRepository
	doctorRepo   repository.DoctorRepository
	taxonomyRepo repository.TaxonomyRepository
	cache        util.TaxonomyCache
	producer     util.MessagePublisher
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	nannyRepo repository.NannyRepository,
	doctorRepo repository.DoctorRepository,
	taxonomyRepo repository.TaxonomyRepository,
	cache util.TaxonomyCache,
	producer util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		nannyRepo:    nannyRepo,
		doctorRepo:   doctorRepo,
		taxonomyRepo: taxonomyRepo,
		cache:        cache,
		producer:     producer,
	}
}

// === NANNIES ===

// ListNannies возвращает страницу нянь с переводом на запрошенный язык
func (s *CatalogService) ListNannies(ctx context.Context, lang string, page int) (*entity.NannyListData, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	nannies, total, err := s.nannyRepo.List(ctx, PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list nannies: %w", err)
	}

	views := make([]entity.NannyView, 0, len(nannies))
	for i := range nannies {
		views = append(views, *nannyView(&nannies[i], lang))
	}

	return &entity.NannyListData{
		Nannies:    views,
		Pagination: buildPagination(page, total),
	}, nil
}

// GetNanny возвращает профиль няни с переводом на запрошенный язык
func (s *CatalogService) GetNanny(ctx context.Context, id uint, lang string) (*entity.NannyView, error) {
	nanny, err := s.nannyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNannyNotFound) {
			return nil, ErrNannyNotFound
		}
		return nil, fmt.Errorf("failed to get nanny: %w", err)
	}

	return nannyView(nanny, lang), nil
}

// CreateNanny создает профиль няни вместе с переводами, фото и связями
func (s *CatalogService) CreateNanny(ctx context.Context, req *entity.CreateNannyRequest) (*entity.NannyView, error) {
	nanny := &entity.Nanny{
		Experience: req.Experience,
		HourlyRate: req.HourlyRate,
		LocationID: req.LocationID,
	}

	for _, tr := range req.Translations {
		nanny.Translations = append(nanny.Translations, entity.NannyTranslation{
			Lang:  tr.Lang,
			Name:  tr.Name,
			About: tr.About,
		})
	}

	for i, url := range req.PhotoURLs {
		nanny.Photos = append(nanny.Photos, entity.NannyPhoto{URL: url, Position: i})
	}

	if err := s.nannyRepo.Create(ctx, nanny); err != nil {
		return nil, fmt.Errorf("failed to create nanny: %w", err)
	}

	if len(req.LanguageIDs) > 0 {
		if err := s.nannyRepo.ReplaceLanguages(ctx, nanny, req.LanguageIDs); err != nil {
			return nil, fmt.Errorf("failed to attach languages: %w", err)
		}
	}
	if len(req.ServiceIDs) > 0 {
		if err := s.nannyRepo.ReplaceServices(ctx, nanny, req.ServiceIDs); err != nil {
			return nil, fmt.Errorf("failed to attach services: %w", err)
		}
	}

	metrics.CaregiversCreated.WithLabelValues(entity.KindNanny).Inc()
	s.publishEvent(ctx, "CAREGIVER_CREATED", entity.KindNanny, nanny.ID)

	return s.GetNanny(ctx, nanny.ID, entity.DefaultLang)
}

// UpdateNanny обновляет профиль няни; переданные переводы и связи заменяются целиком
func (s *CatalogService) UpdateNanny(ctx context.Context, id uint, req *entity.UpdateNannyRequest) (*entity.NannyView, error) {
	nanny, err := s.nannyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNannyNotFound) {
			return nil, ErrNannyNotFound
		}
		return nil, fmt.Errorf("failed to get nanny: %w", err)
	}

	if req.Experience != nil {
		nanny.Experience = *req.Experience
	}
	if req.HourlyRate != nil {
		nanny.HourlyRate = *req.HourlyRate
	}
	if req.LocationID != nil {
		nanny.LocationID = req.LocationID
	}

	if err := s.nannyRepo.Update(ctx, nanny); err != nil {
		return nil, fmt.Errorf("failed to update nanny: %w", err)
	}

	if len(req.Translations) > 0 {
		translations := make([]entity.NannyTranslation, 0, len(req.Translations))
		for _, tr := range req.Translations {
			translations = append(translations, entity.NannyTranslation{
				NannyID: id,
				Lang:    tr.Lang,
				Name:    tr.Name,
				About:   tr.About,
			})
		}
		if err := s.nannyRepo.ReplaceTranslations(ctx, id, translations); err != nil {
			return nil, fmt.Errorf("failed to replace translations: %w", err)
		}
	}

	if req.PhotoURLs != nil {
		photos := make([]entity.NannyPhoto, 0, len(req.PhotoURLs))
		for i, url := range req.PhotoURLs {
			photos = append(photos, entity.NannyPhoto{NannyID: id, URL: url, Position: i})
		}
		if err := s.nannyRepo.ReplacePhotos(ctx, id, photos); err != nil {
			return nil, fmt.Errorf("failed to replace photos: %w", err)
		}
	}

	if req.LanguageIDs != nil {
		if err := s.nannyRepo.ReplaceLanguages(ctx, nanny, req.LanguageIDs); err != nil {
			return nil, fmt.Errorf("failed to replace languages: %w", err)
		}
	}
	if req.ServiceIDs != nil {
		if err := s.nannyRepo.ReplaceServices(ctx, nanny, req.ServiceIDs); err != nil {
			return nil, fmt.Errorf("failed to replace services: %w", err)
		}
	}

	s.publishEvent(ctx, "CAREGIVER_UPDATED", entity.KindNanny, id)

	return s.GetNanny(ctx, id, entity.DefaultLang)
}

// DeleteNanny удаляет профиль няни
func (s *CatalogService) DeleteNanny(ctx context.Context, id uint) error {
	if err := s.nannyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNannyNotFound) {
			return ErrNannyNotFound
		}
		return fmt.Errorf("failed to delete nanny: %w", err)
	}

	s.publishEvent(ctx, "CAREGIVER_DELETED", entity.KindNanny, id)
	return nil
}

// === DOCTORS ===

// ListDoctors возвращает страницу врачей с переводом на запрошенный язык
func (s *CatalogService) ListDoctors(ctx context.Context, lang string, page int) (*entity.DoctorListData, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	doctors, total, err := s.doctorRepo.List(ctx, PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	views := make([]entity.DoctorView, 0, len(doctors))
	for i := range doctors {
		views = append(views, *doctorView(&doctors[i], lang))
	}

	return &entity.DoctorListData{
		Doctors:    views,
		Pagination: buildPagination(page, total),
	}, nil
}

// GetDoctor возвращает профиль врача с переводом на запрошенный язык
func (s *CatalogService) GetDoctor(ctx context.Context, id uint, lang string) (*entity.DoctorView, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	return doctorView(doctor, lang), nil
}

// CreateDoctor создает профиль врача вместе с переводами
func (s *CatalogService) CreateDoctor(ctx context.Context, req *entity.CreateDoctorRequest) (*entity.DoctorView, error) {
	doctor := &entity.Doctor{
		Experience: req.Experience,
		PhotoURL:   req.PhotoURL,
		DegreeID:   req.DegreeID,
		LocationID: req.LocationID,
	}

	for _, tr := range req.Translations {
		doctor.Translations = append(doctor.Translations, entity.DoctorTranslation{
			Lang:      tr.Lang,
			Name:      tr.Name,
			Specialty: tr.Specialty,
			About:     tr.About,
		})
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	metrics.CaregiversCreated.WithLabelValues(entity.KindDoctor).Inc()
	s.publishEvent(ctx, "CAREGIVER_CREATED", entity.KindDoctor, doctor.ID)

	return s.GetDoctor(ctx, doctor.ID, entity.DefaultLang)
}

// UpdateDoctor обновляет профиль врача; переданные переводы заменяются целиком
func (s *CatalogService) UpdateDoctor(ctx context.Context, id uint, req *entity.UpdateDoctorRequest) (*entity.DoctorView, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.PhotoURL != "" {
		doctor.PhotoURL = req.PhotoURL
	}
	if req.DegreeID != nil {
		doctor.DegreeID = req.DegreeID
	}
	if req.LocationID != nil {
		doctor.LocationID = req.LocationID
	}

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	if len(req.Translations) > 0 {
		translations := make([]entity.DoctorTranslation, 0, len(req.Translations))
		for _, tr := range req.Translations {
			translations = append(translations, entity.DoctorTranslation{
				DoctorID:  id,
				Lang:      tr.Lang,
				Name:      tr.Name,
				Specialty: tr.Specialty,
				About:     tr.About,
			})
		}
		if err := s.doctorRepo.ReplaceTranslations(ctx, id, translations); err != nil {
			return nil, fmt.Errorf("failed to replace translations: %w", err)
		}
	}

	s.publishEvent(ctx, "CAREGIVER_UPDATED", entity.KindDoctor, id)

	return s.GetDoctor(ctx, id, entity.DefaultLang)
}

// DeleteDoctor удаляет профиль врача
func (s *CatalogService) DeleteDoctor(ctx context.Context, id uint) error {
	if err := s.doctorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return ErrDoctorNotFound
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.publishEvent(ctx, "CAREGIVER_DELETED", entity.KindDoctor, id)
	return nil
}

// === TAXONOMIES ===

// GetLanguages возвращает справочник языков с кешированием в Redis
func (s *CatalogService) GetLanguages(ctx context.Context) ([]entity.Language, error) {
	cached, err := s.cache.GetLanguages(ctx)
	if err == nil && len(cached) > 0 {
		metrics.RecordCacheHit("catalog-service", "languages")
		return cached, nil
	}
	metrics.RecordCacheMiss("catalog-service", "languages")

	languages, err := s.taxonomyRepo.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}

	if err := s.cache.SetLanguages(ctx, languages, taxonomyCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache languages")
	}

	return languages, nil
}

// GetServices возвращает справочник услуг с кешированием в Redis
func (s *CatalogService) GetServices(ctx context.Context) ([]entity.Service, error) {
	cached, err := s.cache.GetServices(ctx)
	if err == nil && len(cached) > 0 {
		metrics.RecordCacheHit("catalog-service", "services")
		return cached, nil
	}
	metrics.RecordCacheMiss("catalog-service", "services")

	services, err := s.taxonomyRepo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if err := s.cache.SetServices(ctx, services, taxonomyCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache services")
	}

	return services, nil
}

// GetDegrees возвращает справочник ученых степеней с кешированием в Redis
func (s *CatalogService) GetDegrees(ctx context.Context) ([]entity.Degree, error) {
	cached, err := s.cache.GetDegrees(ctx)
	if err == nil && len(cached) > 0 {
		metrics.RecordCacheHit("catalog-service", "degrees")
		return cached, nil
	}
	metrics.RecordCacheMiss("catalog-service", "degrees")

	degrees, err := s.taxonomyRepo.ListDegrees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list degrees: %w", err)
	}

	if err := s.cache.SetDegrees(ctx, degrees, taxonomyCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache degrees")
	}

	return degrees, nil
}

// GetLocations возвращает справочник локаций с кешированием в Redis
func (s *CatalogService) GetLocations(ctx context.Context) ([]entity.Location, error) {
	cached, err := s.cache.GetLocations(ctx)
	if err == nil && len(cached) > 0 {
		metrics.RecordCacheHit("catalog-service", "locations")
		return cached, nil
	}
	metrics.RecordCacheMiss("catalog-service", "locations")

	locations, err := s.taxonomyRepo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	if err := s.cache.SetLocations(ctx, locations, taxonomyCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache locations")
	}

	return locations, nil
}

// === helpers ===

func (s *CatalogService) publishEvent(ctx context.Context, eventType, kind string, id uint) {
	event := entity.CaregiverEvent{
		EventType: eventType,
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal caregiver event")
		return
	}

	key := fmt.Sprintf("%s:%d", kind, id)
	if err := s.producer.PublishMessage(ctx, key, payload); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish caregiver event")
	}
}

// nannyView собирает ответ API с переводом на запрошенный язык
func nannyView(nanny *entity.Nanny, lang string) *entity.NannyView {
	view := &entity.NannyView{
		ID:         nanny.ID,
		Experience: nanny.Experience,
		HourlyRate: nanny.HourlyRate,
		Location:   nanny.Location,
	}

	name, _, about := pickTranslation(nannyTranslationList(nanny.Translations), lang)
	view.Name = name
	view.About = about

	for _, photo := range nanny.Photos {
		view.Photos = append(view.Photos, photo.URL)
	}
	for _, language := range nanny.Languages {
		view.Languages = append(view.Languages, language.Name)
	}
	for _, service := range nanny.Services {
		view.Services = append(view.Services, service.Name)
	}

	return view
}

// doctorView собирает ответ API с переводом на запрошенный язык
func doctorView(doctor *entity.Doctor, lang string) *entity.DoctorView {
	view := &entity.DoctorView{
		ID:         doctor.ID,
		Experience: doctor.Experience,
		PhotoURL:   doctor.PhotoURL,
		Location:   doctor.Location,
	}

	if doctor.Degree != nil {
		view.Degree = doctor.Degree.Name
	}

	name, specialty, about := pickTranslation(doctorTranslationList(doctor.Translations), lang)
	view.Name = name
	view.Specialty = specialty
	view.About = about

	return view
}

type translationEntry struct {
	lang      string
	name      string
	specialty string
	about     string
}

func nannyTranslationList(translations []entity.NannyTranslation) []translationEntry {
	entries := make([]translationEntry, 0, len(translations))
	for _, tr := range translations {
		entries = append(entries, translationEntry{lang: tr.Lang, name: tr.Name, about: tr.About})
	}
	return entries
}

func doctorTranslationList(translations []entity.DoctorTranslation) []translationEntry {
	entries := make([]translationEntry, 0, len(translations))
	for _, tr := range translations {
		entries = append(entries, translationEntry{
			lang:      tr.Lang,
			name:      tr.Name,
			specialty: tr.Specialty,
			about:     tr.About,
		})
	}
	return entries
}

// pickTranslation выбирает перевод: запрошенный язык, затем язык
// по умолчанию, затем первый имеющийся
func pickTranslation(entries []translationEntry, lang string) (name, specialty, about string) {
	var fallback *translationEntry
	for i := range entries {
		if entries[i].lang == lang {
			return entries[i].name, entries[i].specialty, entries[i].about
		}
		if entries[i].lang == entity.DefaultLang {
			fallback = &entries[i]
		}
	}

	if fallback == nil && len(entries) > 0 {
		fallback = &entries[0]
	}
	if fallback == nil {
		return "", "", ""
	}

	return fallback.name, fallback.specialty, fallback.about
}

func buildPagination(page int, total int64) entity.Pagination {
	totalPages := int((total + PageSize - 1) / PageSize)
	return entity.Pagination{
		Page:       page,
		PerPage:    PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
