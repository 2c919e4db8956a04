package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carenest/reviews-service/internal/app/reviews/entity"
	tservice "carenest/reviews-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, userID uuid.UUID, kind string, targetID int64, req *entity.CreateReviewRequest) (*entity.ReviewData, error) {
	args := m.Called(ctx, userID, kind, targetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewData), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, reviewID uuid.UUID, userID uuid.UUID, req *entity.UpdateReviewRequest) (*entity.ReviewData, error) {
	args := m.Called(ctx, reviewID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewData), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID, userID uuid.UUID) (*entity.ReviewStats, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewStats), args.Error(1)
}

func (m *MockReviewService) GetReviews(ctx context.Context, kind string, targetID int64, page int) (*entity.ReviewListData, error) {
	args := m.Called(ctx, kind, targetID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewListData), args.Error(1)
}

func (m *MockReviewService) HasReviewed(ctx context.Context, userID uuid.UUID, kind string, targetID int64) (*entity.HasReviewedData, error) {
	args := m.Called(ctx, userID, kind, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.HasReviewedData), args.Error(1)
}

// setupRouter собирает роутер с подстановкой user_id, минуя JWT middleware
func setupRouter(svc *MockReviewService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewReviewHandler(svc)

	authed := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}

	router.POST("/reviews/:kind/:target_id", authed, h.SubmitReview)
	router.GET("/reviews/:kind/:target_id", h.GetReviews)
	router.GET("/reviews/:kind/:target_id/me", authed, h.HasReviewed)
	router.PATCH("/reviews/:review_id", authed, h.UpdateReview)
	router.DELETE("/reviews/:review_id", authed, h.DeleteReview)

	return router
}

func doJSON(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitReviewHandler_Created(t *testing.T) {
	svc := new(MockReviewService)
	userID := uuid.New()
	router := setupRouter(svc, userID)

	svc.On("SubmitReview", mock.Anything, userID, "doctor", int64(7), mock.AnythingOfType("*entity.CreateReviewRequest")).
		Return(&entity.ReviewData{
			Review:        &entity.Review{ID: uuid.New(), Rating: 5, UserID: userID},
			AverageRating: 5,
			TotalReviews:  1,
		}, nil)

	w := doJSON(router, http.MethodPost, "/reviews/doctor/7", entity.CreateReviewRequest{Rating: 5, Comment: "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.APIResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
}

func TestSubmitReviewHandler_Conflict(t *testing.T) {
	svc := new(MockReviewService)
	userID := uuid.New()
	router := setupRouter(svc, userID)

	svc.On("SubmitReview", mock.Anything, userID, "nanny", int64(3), mock.Anything).
		Return(nil, tservice.ErrAlreadyReviewed)

	w := doJSON(router, http.MethodPost, "/reviews/nanny/3", entity.CreateReviewRequest{Rating: 4})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp entity.APIResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Success)
}

// Оценки вне диапазона [1,5] отклоняются до обращения к сервису
func TestSubmitReviewHandler_RatingBounds(t *testing.T) {
	for _, rating := range []int{0, 6} {
		svc := new(MockReviewService)
		router := setupRouter(svc, uuid.New())

		w := doJSON(router, http.MethodPost, "/reviews/doctor/7", entity.CreateReviewRequest{Rating: rating})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSubmitReviewHandler_UnknownKind(t *testing.T) {
	svc := new(MockReviewService)
	router := setupRouter(svc, uuid.New())

	w := doJSON(router, http.MethodPost, "/reviews/plumber/7", entity.CreateReviewRequest{Rating: 4})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitReviewHandler_TargetNotFound(t *testing.T) {
	svc := new(MockReviewService)
	userID := uuid.New()
	router := setupRouter(svc, userID)

	svc.On("SubmitReview", mock.Anything, userID, "doctor", int64(404), mock.Anything).
		Return(nil, tservice.ErrTargetNotFound)

	w := doJSON(router, http.MethodPost, "/reviews/doctor/404", entity.CreateReviewRequest{Rating: 4})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReviewHandler_Forbidden(t *testing.T) {
	svc := new(MockReviewService)
	userID := uuid.New()
	router := setupRouter(svc, userID)
	reviewID := uuid.New()

	svc.On("UpdateReview", mock.Anything, reviewID, userID, mock.Anything).
		Return(nil, tservice.ErrUnauthorized)

	w := doJSON(router, http.MethodPatch, "/reviews/"+reviewID.String(), entity.UpdateReviewRequest{Rating: 1})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteReviewHandler_ReturnsStats(t *testing.T) {
	svc := new(MockReviewService)
	userID := uuid.New()
	router := setupRouter(svc, userID)
	reviewID := uuid.New()

	svc.On("DeleteReview", mock.Anything, reviewID, userID).
		Return(&entity.ReviewStats{AverageRating: 4.5, TotalReviews: 2}, nil)

	w := doJSON(router, http.MethodDelete, "/reviews/"+reviewID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    entity.ReviewStats `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 4.5, resp.Data.AverageRating)
	assert.Equal(t, int64(2), resp.Data.TotalReviews)
}

func TestGetReviewsHandler_Paginated(t *testing.T) {
	svc := new(MockReviewService)
	router := setupRouter(svc, uuid.New())

	svc.On("GetReviews", mock.Anything, "doctor", int64(7), 2).
		Return(&entity.ReviewListData{
			Reviews:       []entity.Review{},
			Pagination:    entity.Pagination{CurrentPage: 2, PerPage: 10, Total: 15, LastPage: 2},
			AverageRating: 4.2,
			TotalReviews:  15,
		}, nil)

	w := doJSON(router, http.MethodGet, "/reviews/doctor/7?page=2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHasReviewedHandler(t *testing.T) {
	svc := new(MockReviewService)
	userID := uuid.New()
	router := setupRouter(svc, userID)

	svc.On("HasReviewed", mock.Anything, userID, "nanny", int64(5)).
		Return(&entity.HasReviewedData{HasReviewed: false}, nil)

	w := doJSON(router, http.MethodGet, "/reviews/nanny/5/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data entity.HasReviewedData `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Data.HasReviewed)
}
