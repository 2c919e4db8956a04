package handler

import (
	"errors"
	"net/http"
	"strconv"

	"carenest/children-service/internal/app/children/entity"
	"carenest/children-service/internal/app/children/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ChildrenHandler struct {
	childService service.ChildServiceInterface
	validator    *validator.Validate
}

func NewChildrenHandler(childService service.ChildServiceInterface) *ChildrenHandler {
	return &ChildrenHandler{
		childService: childService,
		validator:    validator.New(),
	}
}

// RegisterChild обрабатывает POST /children
func (h *ChildrenHandler) RegisterChild(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.RegisterChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	child, err := h.childService.RegisterChild(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Registration token not found"})
		case errors.Is(err, service.ErrTokenUsed):
			c.JSON(http.StatusConflict, entity.APIResponse{Success: false, Message: "Registration token has already been used"})
		case errors.Is(err, service.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid birthday format, expected YYYY-MM-DD"})
		default:
			c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "An error occurred while registering the child"})
		}
		return
	}

	c.JSON(http.StatusCreated, entity.APIResponse{
		Success: true,
		Message: "Child registered successfully",
		Data:    child,
	})
}

// CheckToken обрабатывает GET /tokens/:code - проверка, погашен ли токен
func (h *ChildrenHandler) CheckToken(c *gin.Context) {
	used, err := h.childService.CheckTokenStatus(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Registration token not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "An error occurred while checking the token"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{
		Success: true,
		Data:    gin.H{"used": used},
	})
}

// ListChildren обрабатывает GET /children - дети текущего родителя
func (h *ChildrenHandler) ListChildren(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	children, err := h.childService.ListChildren(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "An error occurred while fetching children"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: children})
}

// GetChild обрабатывает GET /children/:child_id
func (h *ChildrenHandler) GetChild(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	childID, ok := parseChildID(c)
	if !ok {
		return
	}

	child, err := h.childService.GetChild(c.Request.Context(), childID, userID)
	if err != nil {
		h.respondChildError(c, err, "An error occurred while fetching the child")
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: child})
}

// UpdateChild обрабатывает PATCH /children/:child_id
func (h *ChildrenHandler) UpdateChild(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	childID, ok := parseChildID(c)
	if !ok {
		return
	}

	var req entity.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	child, err := h.childService.UpdateChild(c.Request.Context(), childID, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid birthday format, expected YYYY-MM-DD"})
			return
		}
		h.respondChildError(c, err, "An error occurred while updating the child")
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{
		Success: true,
		Message: "Child updated successfully",
		Data:    child,
	})
}

// DeleteChild обрабатывает DELETE /children/:child_id
func (h *ChildrenHandler) DeleteChild(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	childID, ok := parseChildID(c)
	if !ok {
		return
	}

	if err := h.childService.DeleteChild(c.Request.Context(), childID, userID); err != nil {
		h.respondChildError(c, err, "An error occurred while deleting the child")
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Message: "Child deleted successfully"})
}

// GetChildByToken обрабатывает GET /staff/children/by-token/:code - поиск
// ребенка по коду браслета, доступен медицинскому персоналу
func (h *ChildrenHandler) GetChildByToken(c *gin.Context) {
	child, err := h.childService.GetChildByToken(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Child not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "An error occurred while fetching the child"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: child})
}

// GetChildByID обрабатывает GET /staff/children/:child_id - просмотр карточки
// ребенка без проверки родителя, доступен медицинскому персоналу
func (h *ChildrenHandler) GetChildByID(c *gin.Context) {
	childID, ok := parseChildID(c)
	if !ok {
		return
	}

	child, err := h.childService.GetChildByID(c.Request.Context(), childID)
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Child not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "An error occurred while fetching the child"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: child})
}

func (h *ChildrenHandler) respondChildError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrChildNotFound):
		c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Child not found"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, entity.APIResponse{Success: false, Message: "You do not have access to this child"})
	default:
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: fallback})
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, entity.APIResponse{Success: false, Message: "User not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.APIResponse{Success: false, Message: "Invalid user ID in token"})
		return uuid.Nil, false
	}

	return userID, true
}

func parseChildID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("child_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid child ID"})
		return 0, false
	}
	return uint(id), true
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return "Validation failed on field '" + fe.Field() + "' (" + fe.Tag() + ")"
	}
	return "Validation failed"
}
