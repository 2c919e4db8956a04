package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carenest/children-service/internal/app/children/entity"
	"carenest/children-service/internal/app/children/service"
)

// MockChildService - мок сервиса детей для handler-тестов
type MockChildService struct {
	mock.Mock
}

func (m *MockChildService) RegisterChild(ctx context.Context, userID uuid.UUID, req *entity.RegisterChildRequest) (*entity.Child, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Child), args.Error(1)
}

func (m *MockChildService) CheckTokenStatus(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockChildService) ListChildren(ctx context.Context, userID uuid.UUID) ([]entity.Child, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Child), args.Error(1)
}

func (m *MockChildService) GetChild(ctx context.Context, id uint, userID uuid.UUID) (*entity.Child, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Child), args.Error(1)
}

func (m *MockChildService) GetChildByID(ctx context.Context, id uint) (*entity.Child, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Child), args.Error(1)
}

func (m *MockChildService) GetChildByToken(ctx context.Context, code string) (*entity.Child, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Child), args.Error(1)
}

func (m *MockChildService) UpdateChild(ctx context.Context, id uint, userID uuid.UUID, req *entity.UpdateChildRequest) (*entity.Child, error) {
	args := m.Called(ctx, id, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Child), args.Error(1)
}

func (m *MockChildService) DeleteChild(ctx context.Context, id uint, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func setupRouter(h *ChildrenHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/tokens/:code", h.CheckToken)

	authed := router.Group("")
	authed.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	{
		authed.POST("/children", h.RegisterChild)
		authed.GET("/children", h.ListChildren)
		authed.GET("/children/:child_id", h.GetChild)
		authed.PATCH("/children/:child_id", h.UpdateChild)
		authed.DELETE("/children/:child_id", h.DeleteChild)
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

func TestRegisterChild_Created(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	userID := uuid.New()
	router := setupRouter(h, userID)

	mockService.On("RegisterChild", mock.Anything, userID, mock.AnythingOfType("*entity.RegisterChildRequest")).
		Return(&entity.Child{ID: 1, UserID: userID, Name: "Alice", LastName: "Smith", TokenCode: "BRAC123"}, nil)

	w := performJSON(router, http.MethodPost, "/children", gin.H{
		"name":       "Alice",
		"last_name":  "Smith",
		"token_code": "BRAC123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestRegisterChild_TokenUsedConflict(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	userID := uuid.New()
	router := setupRouter(h, userID)

	mockService.On("RegisterChild", mock.Anything, userID, mock.Anything).
		Return(nil, service.ErrTokenUsed)

	w := performJSON(router, http.MethodPost, "/children", gin.H{
		"name":       "Alice",
		"last_name":  "Smith",
		"token_code": "BRAC123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterChild_TokenNotFound(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	userID := uuid.New()
	router := setupRouter(h, userID)

	mockService.On("RegisterChild", mock.Anything, userID, mock.Anything).
		Return(nil, service.ErrTokenNotFound)

	w := performJSON(router, http.MethodPost, "/children", gin.H{
		"name":       "Alice",
		"last_name":  "Smith",
		"token_code": "NOPE999",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterChild_MissingName(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	router := setupRouter(h, uuid.New())

	w := performJSON(router, http.MethodPost, "/children", gin.H{
		"last_name": "Smith",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "RegisterChild", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckToken_Used(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	router := setupRouter(h, uuid.New())

	mockService.On("CheckTokenStatus", mock.Anything, "BRAC123").Return(true, nil)

	w := performJSON(router, http.MethodGet, "/tokens/BRAC123", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Used bool `json:"used"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Used)
}

func TestCheckToken_NotFound(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	router := setupRouter(h, uuid.New())

	mockService.On("CheckTokenStatus", mock.Anything, "NOPE999").
		Return(false, service.ErrTokenNotFound)

	w := performJSON(router, http.MethodGet, "/tokens/NOPE999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetChild_Forbidden(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	userID := uuid.New()
	router := setupRouter(h, userID)

	mockService.On("GetChild", mock.Anything, uint(1), userID).
		Return(nil, service.ErrUnauthorized)

	w := performJSON(router, http.MethodGet, "/children/1", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteChild_Success(t *testing.T) {
	mockService := new(MockChildService)
	h := NewChildrenHandler(mockService)
	userID := uuid.New()
	router := setupRouter(h, userID)

	mockService.On("DeleteChild", mock.Anything, uint(1), userID).Return(nil)

	w := performJSON(router, http.MethodDelete, "/children/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
