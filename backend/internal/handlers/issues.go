package handlers

import (
	"net/http"
	"strconv"

	"housing-manager/backend/internal/middleware"
	"housing-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IssueHandler struct {
	db           *gorm.DB
	issueService services.IssueService
	dashboard    services.DashboardService
}

func NewIssueHandler(db *gorm.DB, issueService services.IssueService, dashboard services.DashboardService) *IssueHandler {
	return &IssueHandler{db: db, issueService: issueService, dashboard: dashboard}
}

func (h *IssueHandler) GetIssues(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	filter := services.IssueFilter{
		Status: c.Query("status"),
	}
	if buildingIDStr := c.Query("buildingId"); buildingIDStr != "" {
		buildingID, err := strconv.Atoi(buildingIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "buildingId must be an integer"})
			return
		}
		filter.BuildingID = &buildingID
	}

	issues, err := h.issueService.ListIssues(h.db, ident, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newIssueResponses(issues))
}

func (h *IssueHandler) GetIssue(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be an integer"})
		return
	}

	issue, err := h.issueService.GetIssue(h.db, ident, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newIssueResponse(issue))
}

func (h *IssueHandler) CreateIssue(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Description string  `json:"description" binding:"required,max=1000"`
		SharedSpace *string `json:"sharedSpace" binding:"omitempty,max=200"`
		PhotoProof  *string `json:"photoProof"`
		BuildingID  int     `json:"buildingId" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.issueService.CreateIssue(h.db, ident, services.CreateIssueInput{
		Description: req.Description,
		SharedSpace: req.SharedSpace,
		PhotoProof:  req.PhotoProof,
		BuildingID:  req.BuildingID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusCreated, newIssueResponse(issue))
}

func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be an integer"})
		return
	}

	var req struct {
		Status           *string `json:"status"`
		AssignedToUserID *int    `json:"assignedToUserId" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.issueService.UpdateIssue(h.db, ident, id, services.UpdateIssueInput{
		Status:           req.Status,
		AssignedToUserID: req.AssignedToUserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusOK, newIssueResponse(issue))
}
