package handlers

import (
	"net/http"

	"housing-manager/backend/internal/middleware"
	"housing-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db               *gorm.DB
	dashboardService services.DashboardService
}

func NewDashboardHandler(db *gorm.DB, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{db: db, dashboardService: dashboardService}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := h.dashboardService.Summary(h.db, ident)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
