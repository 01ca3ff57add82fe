package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/middleware"
	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/service"
)

// AppointmentHandler handles appointment HTTP requests.
type AppointmentHandler struct {
	booking service.BookingService
}

// NewAppointmentHandler creates a new AppointmentHandler instance.
func NewAppointmentHandler(booking service.BookingService) *AppointmentHandler {
	return &AppointmentHandler{booking: booking}
}

// CreateAppointmentRequest represents the booking request payload.
type CreateAppointmentRequest struct {
	ServiceID int64  `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Status    string `json:"status"`
}

// UpdateAppointmentRequest represents a partial update payload. Absent
// fields keep their current values.
type UpdateAppointmentRequest struct {
	ServiceID *int64  `json:"service_id"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Status    *string `json:"status"`
}

// Create godoc
// @Summary Book an appointment
// @Description Create an appointment for the authenticated user
// @Tags appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	apt, err := h.booking.Create(c.Request.Context(), identity, service.CreateAppointmentInput{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    models.AppointmentStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, apt)
}

// ListMine godoc
// @Summary List own appointments
// @Tags appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Appointment
// @Router /appointments/mine [get]
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	apts, err := h.booking.ListMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": apts})
}

// ListAll godoc
// @Summary List all appointments
// @Description Admin listing of every appointment joined with service and user summaries
// @Tags appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.AppointmentDetail
// @Failure 403 {object} map[string]string
// @Router /appointments [get]
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	apts, err := h.booking.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": apts})
}

// Get godoc
// @Summary Get an appointment
// @Tags appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment id"
// @Success 200 {object} models.Appointment
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	apt, err := h.booking.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apt)
}

// Update godoc
// @Summary Update an appointment
// @Description Partial update; moving the slot re-checks availability
// @Tags appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment id"
// @Param request body UpdateAppointmentRequest true "Fields to change"
// @Success 200 {object} models.Appointment
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	patch := service.AppointmentPatch{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
	}
	if req.Status != nil {
		status := models.AppointmentStatus(*req.Status)
		patch.Status = &status
	}

	apt, err := h.booking.Update(c.Request.Context(), identity, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apt)
}

// Cancel godoc
// @Summary Cancel an appointment
// @Description Sets status to cancelled, freeing the slot; idempotent
// @Tags appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment id"
// @Success 200 {object} models.Appointment
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id}/cancel [put]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	apt, err := h.booking.Cancel(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled", "appointment": apt})
}

// Delete godoc
// @Summary Delete an appointment
// @Description Hard delete, unlike cancel which is a status transition
// @Tags appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	if err := h.booking.Delete(c.Request.Context(), identity, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}

func (h *AppointmentHandler) identityAndID(c *gin.Context) (service.Identity, int64, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return service.Identity{}, 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return service.Identity{}, 0, false
	}

	return identity, id, true
}
