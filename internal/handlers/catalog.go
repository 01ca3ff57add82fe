package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/service"
)

// CatalogHandler handles service catalog HTTP requests.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ServiceRequest represents the create payload for a catalog entry.
type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateServiceRequest represents a partial update payload.
type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List godoc
// @Summary List services
// @Tags services
// @Produce json
// @Success 200 {array} models.Service
// @Router /services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Create godoc
// @Summary Create a service
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ServiceRequest true "Service data"
// @Success 201 {object} models.Service
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /services [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

// Update godoc
// @Summary Update a service
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Service id"
// @Param request body UpdateServiceRequest true "Fields to change"
// @Success 200 {object} models.Service
// @Failure 404 {object} map[string]string
// @Router /services/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), id, service.ServicePatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// Delete godoc
// @Summary Delete a service
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param id path int true "Service id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

func (h *CatalogHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
