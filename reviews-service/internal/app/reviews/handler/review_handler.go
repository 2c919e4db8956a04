package handler

import (
	"errors"
	"net/http"
	"strconv"

	"carenest/pkg/metrics"
	"carenest/reviews-service/internal/app/reviews/entity"
	"carenest/reviews-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// SubmitReview обрабатывает POST /reviews/:kind/:target_id
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	kind, targetID, ok := parseTarget(c)
	if !ok {
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	data, err := h.reviewService.SubmitReview(c.Request.Context(), userID, kind, targetID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTargetNotFound):
			c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Review target not found"})
		case errors.Is(err, service.ErrAlreadyReviewed):
			metrics.ReviewConflicts.Inc()
			c.JSON(http.StatusConflict, entity.APIResponse{Success: false, Message: "You have already submitted a review for this " + kind})
		default:
			c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "An error occurred while submitting the review"})
		}
		return
	}

	metrics.ReviewsCreated.WithLabelValues(kind).Inc()
	metrics.ReviewsRating.Observe(float64(req.Rating))

	c.JSON(http.StatusCreated, entity.APIResponse{
		Success: true,
		Message: "Review submitted successfully",
		Data:    data,
	})
}

// UpdateReview обрабатывает PATCH /reviews/:review_id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}

	var req entity.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	data, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, userID, &req)
	if err != nil {
		h.respondOwnershipError(c, err, "update")
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{
		Success: true,
		Message: "Review updated successfully",
		Data:    data,
	})
}

// DeleteReview обрабатывает DELETE /reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}

	stats, err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID)
	if err != nil {
		h.respondOwnershipError(c, err, "delete")
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{
		Success: true,
		Message: "Review deleted successfully",
		Data:    stats,
	})
}

// GetReviews обрабатывает GET /reviews/:kind/:target_id?page=N
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	kind, targetID, ok := parseTarget(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	data, err := h.reviewService.GetReviews(c.Request.Context(), kind, targetID, page)
	if err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Review target not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: data})
}

// HasReviewed обрабатывает GET /reviews/:kind/:target_id/me
// Клиент использует ответ, чтобы показать форму создания или редактирования
func (h *ReviewHandler) HasReviewed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	kind, targetID, ok := parseTarget(c)
	if !ok {
		return
	}

	data, err := h.reviewService.HasReviewed(c.Request.Context(), userID, kind, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to check review"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: data})
}

// respondOwnershipError транслирует ошибки update/delete в HTTP статусы
func (h *ReviewHandler) respondOwnershipError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Review not found"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, entity.APIResponse{Success: false, Message: "Access denied"})
	default:
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to " + action + " review"})
	}
}

// currentUserID извлекает ID аутентифицированного пользователя из контекста Gin
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, entity.APIResponse{Success: false, Message: "Unauthorized"})
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Invalid user ID"})
		return uuid.Nil, false
	}

	return userID, true
}

// parseTarget разбирает и валидирует параметры :kind и :target_id
func parseTarget(c *gin.Context) (string, int64, bool) {
	kind := c.Param("kind")
	if !entity.ValidTargetKind(kind) {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Target kind must be doctor or nanny"})
		return "", 0, false
	}

	targetID, err := strconv.ParseInt(c.Param("target_id"), 10, 64)
	if err != nil || targetID <= 0 {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid target ID"})
		return "", 0, false
	}

	return kind, targetID, true
}

func parseReviewID(c *gin.Context) (uuid.UUID, bool) {
	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid review ID"})
		return uuid.Nil, false
	}
	return reviewID, true
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
