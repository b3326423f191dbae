package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"housing-manager/backend/internal/handlers"
	"housing-manager/backend/internal/middleware"
	"housing-manager/backend/internal/models"
	"housing-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Building{},
		&models.User{},
		&models.Issue{},
		&models.Task{},
		&models.Token{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	return db
}

// asIdentity replaces the JWT middleware in tests; the routes behind it are
// identical to the production wiring.
func asIdentity(ident models.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, ident.UserID)
		c.Set(middleware.ContextRoleKey, ident.Role)
		c.Next()
	}
}

func newTestRouter(db *gorm.DB, ident models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	issueService := services.NewIssueService()
	taskService := services.NewTaskService()
	dashboardService := services.NewDashboardService()

	protected := r.Group("/api/v1")
	protected.Use(asIdentity(ident))

	issueHandler := handlers.NewIssueHandler(db, issueService, dashboardService)
	issueRoutes := protected.Group("/issues")
	{
		issueRoutes.GET("", issueHandler.GetIssues)
		issueRoutes.GET("/:id", issueHandler.GetIssue)
		issueRoutes.POST("", middleware.RequireRole(models.RoleStudent), issueHandler.CreateIssue)
		issueRoutes.PATCH("/:id", middleware.RequireRole(models.RoleStaff), issueHandler.UpdateIssue)
	}

	taskHandler := handlers.NewTaskHandler(db, taskService, dashboardService)
	taskRoutes := protected.Group("/tasks/:kind")
	{
		taskRoutes.GET("", taskHandler.GetTasks)
		taskRoutes.POST("", middleware.RequireRole(models.RoleStaff), taskHandler.CreateTask)
		taskRoutes.POST("/:id/complete", middleware.RequireRole(models.RoleStudent), taskHandler.CompleteTask)
		taskRoutes.POST("/:id/verify", middleware.RequireRole(models.RoleStaff), taskHandler.VerifyTask)
	}

	dashboardHandler := handlers.NewDashboardHandler(db, dashboardService)
	protected.GET("/dashboard", middleware.RequireRole(models.RoleStaff), dashboardHandler.GetDashboard)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func seedBuilding(t *testing.T, db *gorm.DB, name string) *models.Building {
	t.Helper()

	building := models.Building{Name: name, Address: "1 Test Street"}
	if err := db.Create(&building).Error; err != nil {
		t.Fatalf("Failed to create building: %v", err)
	}
	return &building
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role, buildingID *int) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Role:         role,
		BuildingID:   buildingID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return &user
}
