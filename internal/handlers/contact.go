package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/middleware"
	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
	"github.com/fredson0/Agendamento-Amado/internal/service"
)

// ContactHandler handles contact inbox HTTP requests.
type ContactHandler struct {
	contact service.ContactService
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(contact service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// ContactRequest represents a new contact message payload.
type ContactRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category"`
}

// ContactStatusRequest represents the admin status-change payload.
type ContactStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminReply string `json:"admin_reply"`
}

// Create godoc
// @Summary Send a contact message
// @Tags contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Message data"
// @Success 201 {object} models.ContactMessage
// @Failure 400 {object} map[string]string
// @Router /contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	msg, err := h.contact.Create(c.Request.Context(), identity, service.ContactInput{
		Subject:  req.Subject,
		Body:     req.Body,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "message sent", "contact": msg})
}

// ListMine godoc
// @Summary List own contact messages
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ContactMessage
// @Router /contact/mine [get]
func (h *ContactHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	msgs, err := h.contact.ListMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// Get godoc
// @Summary Get a contact message
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Param id path int true "Message id"
// @Success 200 {object} models.ContactMessage
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contact/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	msg, err := h.contact.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// ListAll godoc
// @Summary List all contact messages
// @Description Admin inbox listing with optional status and category filters
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {array} models.ContactMessage
// @Failure 403 {object} map[string]string
// @Router /contact [get]
func (h *ContactHandler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.contact.ListAll(c.Request.Context(), repository.ContactListFilter{
		Status:   models.ContactStatus(c.Query("status")),
		Category: c.Query("category"),
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// SetStatus godoc
// @Summary Update message status
// @Description Admin status transition with an optional reply to the sender
// @Tags contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Message id"
// @Param request body ContactStatusRequest true "New status"
// @Success 200 {object} models.ContactMessage
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contact/{id}/status [put]
func (h *ContactHandler) SetStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	msg, err := h.contact.SetStatus(c.Request.Context(), id, models.ContactStatus(req.Status), req.AdminReply)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated", "contact": msg})
}

// Delete godoc
// @Summary Delete a contact message
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Param id path int true "Message id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contact/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.contact.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// Stats godoc
// @Summary Contact inbox statistics
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Success 200 {object} repository.ContactStats
// @Failure 403 {object} map[string]string
// @Router /contact/stats [get]
func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.contact.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ContactHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
