package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"carenest/catalog-service/internal/app/catalog/entity"
	"carenest/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler обрабатывает HTTP запросы каталога нянь и врачей
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === NANNIES ===

// ListNannies обрабатывает GET /nannies?lang=hy&page=1
func (h *CatalogHandler) ListNannies(c *gin.Context) {
	data, err := h.catalogService.ListNannies(c.Request.Context(), requestLang(c), requestPage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to list nannies"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: data})
}

// GetNanny обрабатывает GET /nannies/:id?lang=hy
func (h *CatalogHandler) GetNanny(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	nanny, err := h.catalogService.GetNanny(c.Request.Context(), id, requestLang(c))
	if err != nil {
		h.respondNannyError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: nanny})
}

// CreateNanny обрабатывает POST /nannies
func (h *CatalogHandler) CreateNanny(c *gin.Context) {
	var req entity.CreateNannyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request format"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	nanny, err := h.catalogService.CreateNanny(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to create nanny"})
		return
	}

	c.JSON(http.StatusCreated, entity.APIResponse{Success: true, Message: "Nanny created successfully", Data: nanny})
}

// UpdateNanny обрабатывает PATCH /nannies/:id
func (h *CatalogHandler) UpdateNanny(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req entity.UpdateNannyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request format"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	nanny, err := h.catalogService.UpdateNanny(c.Request.Context(), id, &req)
	if err != nil {
		h.respondNannyError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Message: "Nanny updated successfully", Data: nanny})
}

// DeleteNanny обрабатывает DELETE /nannies/:id
func (h *CatalogHandler) DeleteNanny(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteNanny(c.Request.Context(), id); err != nil {
		h.respondNannyError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Message: "Nanny deleted successfully"})
}

// === DOCTORS ===

// ListDoctors обрабатывает GET /doctors?lang=hy&page=1
func (h *CatalogHandler) ListDoctors(c *gin.Context) {
	data, err := h.catalogService.ListDoctors(c.Request.Context(), requestLang(c), requestPage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to list doctors"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: data})
}

// GetDoctor обрабатывает GET /doctors/:id?lang=hy
func (h *CatalogHandler) GetDoctor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doctor, err := h.catalogService.GetDoctor(c.Request.Context(), id, requestLang(c))
	if err != nil {
		h.respondDoctorError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: doctor})
}

// CreateDoctor обрабатывает POST /doctors
func (h *CatalogHandler) CreateDoctor(c *gin.Context) {
	var req entity.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request format"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	doctor, err := h.catalogService.CreateDoctor(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to create doctor"})
		return
	}

	c.JSON(http.StatusCreated, entity.APIResponse{Success: true, Message: "Doctor created successfully", Data: doctor})
}

// UpdateDoctor обрабатывает PATCH /doctors/:id
func (h *CatalogHandler) UpdateDoctor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req entity.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid request format"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: formatValidationError(err)})
		return
	}

	doctor, err := h.catalogService.UpdateDoctor(c.Request.Context(), id, &req)
	if err != nil {
		h.respondDoctorError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Message: "Doctor updated successfully", Data: doctor})
}

// DeleteDoctor обрабатывает DELETE /doctors/:id
func (h *CatalogHandler) DeleteDoctor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteDoctor(c.Request.Context(), id); err != nil {
		h.respondDoctorError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Message: "Doctor deleted successfully"})
}

// === TAXONOMIES ===

// ListLanguages обрабатывает GET /languages
func (h *CatalogHandler) ListLanguages(c *gin.Context) {
	languages, err := h.catalogService.GetLanguages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to list languages"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: languages})
}

// ListServices обрабатывает GET /services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.GetServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to list services"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: services})
}

// ListDegrees обрабатывает GET /degrees
func (h *CatalogHandler) ListDegrees(c *gin.Context) {
	degrees, err := h.catalogService.GetDegrees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to list degrees"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: degrees})
}

// ListLocations обрабатывает GET /locations
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.catalogService.GetLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Failed to list locations"})
		return
	}

	c.JSON(http.StatusOK, entity.APIResponse{Success: true, Data: locations})
}

// === helpers ===

func (h *CatalogHandler) respondNannyError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNannyNotFound) {
		c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Nanny not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Internal server error"})
}

func (h *CatalogHandler) respondDoctorError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrDoctorNotFound) {
		c.JSON(http.StatusNotFound, entity.APIResponse{Success: false, Message: "Doctor not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, entity.APIResponse{Success: false, Message: "Internal server error"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{Success: false, Message: "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// requestLang возвращает язык переводов из query параметра
func requestLang(c *gin.Context) string {
	lang := strings.TrimSpace(c.Query("lang"))
	if lang == "" {
		return entity.DefaultLang
	}
	return lang
}

func requestPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return "Validation failed on field '" + first.Field() + "' (" + first.Tag() + ")"
	}
	return "Validation failed"
}
