package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/middleware"
	"github.com/fredson0/Agendamento-Amado/internal/service"
)

// DashboardHandler serves the aggregate dashboard projection.
type DashboardHandler struct {
	dashboard service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Aggregate counts plus upcoming and recent appointments; admins additionally get contact inbox stats
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.DashboardSummary
// @Failure 401 {object} map[string]string
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	summary, err := h.dashboard.Summary(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
