package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/middleware"
)

// propertyHandler handles HTTP requests related to property listings.
type propertyHandler struct {
	propertyService portssvc.PropertySvcFacade
}

// newPropertyHandler creates a new propertyHandler.
func newPropertyHandler(ps portssvc.PropertySvcFacade) *propertyHandler {
	return &propertyHandler{
		propertyService: ps,
	}
}

// registerPropertyRoutes registers routes related to properties.
func registerPropertyRoutes(rg *gin.RouterGroup, propertyService portssvc.PropertySvcFacade) {
	h := newPropertyHandler(propertyService)

	properties := rg.Group("/properties")
	{
		properties.POST("", middleware.RequireRole(domain.RoleEmployee), h.createProperty)
		properties.GET("", h.listProperties)
		properties.GET("/:id", h.getProperty)
		properties.PUT("/:id", middleware.RequireRole(domain.RoleEmployee), h.updateProperty)
		properties.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.deleteProperty)
	}
}

func paginationFromQuery(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// createProperty godoc
// @Summary List a new property
// @Description Creates a property listing available for mortgage creation.
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   property body dto.CreatePropertyRequest true "Property details"
// @Success 201 {object} dto.PropertyResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /properties [post]
func (h *propertyHandler) createProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProperty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPropertyResponse(property))
}

// getProperty godoc
// @Summary Get a property by ID
// @Tags properties
// @Produce  json
// @Param   id path string true "Property ID"
// @Success 200 {object} dto.PropertyResponse
// @Failure 404 {object} map[string]string "Property not found"
// @Security BearerAuth
// @Router /properties/{id} [get]
func (h *propertyHandler) getProperty(c *gin.Context) {
	property, err := h.propertyService.GetPropertyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve property")
		return
	}
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// listProperties godoc
// @Summary List properties
// @Tags properties
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListPropertiesResponse
// @Security BearerAuth
// @Router /properties [get]
func (h *propertyHandler) listProperties(c *gin.Context) {
	limit, offset := paginationFromQuery(c)
	properties, err := h.propertyService.ListProperties(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, dto.ListPropertiesResponse{Properties: dto.ToPropertyResponses(properties)})
}

// updateProperty godoc
// @Summary Update a property
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   id path string true "Property ID"
// @Param   property body dto.UpdatePropertyRequest true "Fields to update"
// @Success 200 {object} dto.PropertyResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Property not found"
// @Security BearerAuth
// @Router /properties/{id} [put]
func (h *propertyHandler) updateProperty(c *gin.Context) {
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// deleteProperty godoc
// @Summary Delete a property
// @Tags properties
// @Param   id path string true "Property ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Property not found"
// @Security BearerAuth
// @Router /properties/{id} [delete]
func (h *propertyHandler) deleteProperty(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondServiceError(c, err, "Failed to delete property")
		return
	}
	c.Status(http.StatusNoContent)
}
