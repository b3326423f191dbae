package handlers

import (
	"net/http"
	"strconv"
	"time"

	"housing-manager/backend/internal/middleware"
	"housing-manager/backend/internal/models"
	"housing-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
	dashboard   services.DashboardService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService, dashboard services.DashboardService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService, dashboard: dashboard}
}

// taskRequestContext resolves the identity, task kind and (optionally) the
// task id shared by every task route.
func (h *TaskHandler) taskRequestContext(c *gin.Context, needID bool) (models.Identity, models.TaskKind, int, bool) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.Identity{}, "", 0, false
	}

	kind, ok := models.ParseTaskKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
		return models.Identity{}, "", 0, false
	}

	var id int
	if needID {
		var err error
		id, err = strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "id must be an integer"})
			return models.Identity{}, "", 0, false
		}
	}

	return ident, kind, id, true
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	ident, kind, _, ok := h.taskRequestContext(c, false)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(h.db, ident, kind)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponses(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	ident, kind, _, ok := h.taskRequestContext(c, false)
	if !ok {
		return
	}

	var req struct {
		Description     string    `json:"description" binding:"required,max=500"`
		LocationOrSpace string    `json:"locationOrSpace" binding:"required,max=200"`
		BuildingID      int       `json:"buildingId" binding:"required,gt=0"`
		AssignedUserID  *int      `json:"assignedUserId" binding:"omitempty,gt=0"`
		DueDate         time.Time `json:"dueDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(h.db, ident, kind, services.CreateTaskInput{
		Description:    req.Description,
		Locus:          req.LocationOrSpace,
		BuildingID:     req.BuildingID,
		AssignedUserID: req.AssignedUserID,
		DueDate:        req.DueDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	ident, kind, id, ok := h.taskRequestContext(c, true)
	if !ok {
		return
	}

	if err := h.taskService.CompleteTask(h.db, ident, kind, id); err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Task completed successfully"})
}

func (h *TaskHandler) VerifyTask(c *gin.Context) {
	ident, kind, id, ok := h.taskRequestContext(c, true)
	if !ok {
		return
	}

	if err := h.taskService.VerifyTask(h.db, ident, kind, id); err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Task verified successfully"})
}
