package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carenest/catalog-service/internal/app/catalog/entity"
	"carenest/catalog-service/internal/app/catalog/service"
)

// MockCatalogService - мок сервиса каталога для handler-тестов
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListNannies(ctx context.Context, lang string, page int) (*entity.NannyListData, error) {
	args := m.Called(ctx, lang, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NannyListData), args.Error(1)
}

func (m *MockCatalogService) GetNanny(ctx context.Context, id uint, lang string) (*entity.NannyView, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NannyView), args.Error(1)
}

func (m *MockCatalogService) CreateNanny(ctx context.Context, req *entity.CreateNannyRequest) (*entity.NannyView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NannyView), args.Error(1)
}

func (m *MockCatalogService) UpdateNanny(ctx context.Context, id uint, req *entity.UpdateNannyRequest) (*entity.NannyView, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NannyView), args.Error(1)
}

func (m *MockCatalogService) DeleteNanny(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) ListDoctors(ctx context.Context, lang string, page int) (*entity.DoctorListData, error) {
	args := m.Called(ctx, lang, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DoctorListData), args.Error(1)
}

func (m *MockCatalogService) GetDoctor(ctx context.Context, id uint, lang string) (*entity.DoctorView, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DoctorView), args.Error(1)
}

func (m *MockCatalogService) CreateDoctor(ctx context.Context, req *entity.CreateDoctorRequest) (*entity.DoctorView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DoctorView), args.Error(1)
}

func (m *MockCatalogService) UpdateDoctor(ctx context.Context, id uint, req *entity.UpdateDoctorRequest) (*entity.DoctorView, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DoctorView), args.Error(1)
}

func (m *MockCatalogService) DeleteDoctor(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) GetLanguages(ctx context.Context) ([]entity.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Language), args.Error(1)
}

func (m *MockCatalogService) GetServices(ctx context.Context) ([]entity.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *MockCatalogService) GetDegrees(ctx context.Context) ([]entity.Degree, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Degree), args.Error(1)
}

func (m *MockCatalogService) GetLocations(ctx context.Context) ([]entity.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Location), args.Error(1)
}

func setupCatalogRouter(h *CatalogHandler, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/nannies", h.ListNannies)
	router.GET("/nannies/:id", h.GetNanny)
	router.GET("/doctors", h.ListDoctors)
	router.GET("/doctors/:id", h.GetDoctor)
	router.GET("/languages", h.ListLanguages)

	authed := router.Group("")
	authed.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	}, RequireRole("doctor", "nurse"))
	{
		authed.POST("/nannies", h.CreateNanny)
		authed.POST("/doctors", h.CreateDoctor)
		authed.DELETE("/doctors/:id", h.DeleteDoctor)
	}

	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListNannies_PassesLangAndPage(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "")

	mockService.On("ListNannies", mock.Anything, "hy", 3).Return(&entity.NannyListData{
		Nannies:    []entity.NannyView{{ID: 1, Name: "Մարիա"}},
		Pagination: entity.Pagination{Page: 3, PerPage: 10, Total: 25, TotalPages: 3},
	}, nil)

	w := performJSON(router, http.MethodGet, "/nannies?lang=hy&page=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListNannies_DefaultsToEnglishFirstPage(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "")

	mockService.On("ListNannies", mock.Anything, "en", 1).Return(&entity.NannyListData{}, nil)

	w := performJSON(router, http.MethodGet, "/nannies", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestGetDoctor_NotFound(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "")

	mockService.On("GetDoctor", mock.Anything, uint(99), "en").Return(nil, service.ErrDoctorNotFound)

	w := performJSON(router, http.MethodGet, "/doctors/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNanny_InvalidID(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "")

	w := performJSON(router, http.MethodGet, "/nannies/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetNanny", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateNanny_MissingTranslations(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "nurse")

	w := performJSON(router, http.MethodPost, "/nannies", map[string]interface{}{
		"experience":  5,
		"hourly_rate": 12.5,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateNanny", mock.Anything, mock.Anything)
}

func TestCreateDoctor_ParentForbidden(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "parent")

	w := performJSON(router, http.MethodPost, "/doctors", map[string]interface{}{
		"experience": 3,
		"translations": []map[string]string{
			{"lang": "en", "name": "Anna", "specialty": "Pediatrician"},
		},
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "CreateDoctor", mock.Anything, mock.Anything)
}

func TestCreateDoctor_Created(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "nurse")

	mockService.On("CreateDoctor", mock.Anything, mock.MatchedBy(func(req *entity.CreateDoctorRequest) bool {
		return len(req.Translations) == 1 && req.Translations[0].Name == "Anna"
	})).Return(&entity.DoctorView{ID: 7, Name: "Anna"}, nil)

	w := performJSON(router, http.MethodPost, "/doctors", map[string]interface{}{
		"experience": 3,
		"translations": []map[string]string{
			{"lang": "en", "name": "Anna", "specialty": "Pediatrician"},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp entity.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestDeleteDoctor_Success(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "doctor")

	mockService.On("DeleteDoctor", mock.Anything, uint(7)).Return(nil)

	w := performJSON(router, http.MethodDelete, "/doctors/7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListLanguages_Success(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewCatalogHandler(mockService)
	router := setupCatalogRouter(handler, "")

	mockService.On("GetLanguages", mock.Anything).Return([]entity.Language{
		{ID: 1, Code: "en", Name: "English"},
		{ID: 2, Code: "hy", Name: "Armenian"},
	}, nil)

	w := performJSON(router, http.MethodGet, "/languages", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
