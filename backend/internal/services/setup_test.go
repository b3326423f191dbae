package services_test

import (
	"testing"
	"time"

	"housing-manager/backend/internal/models"
	"housing-manager/backend/internal/services"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
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

func createBuilding(t *testing.T, db *gorm.DB, name string) *models.Building {
	t.Helper()

	building := models.Building{Name: name, Address: "1 Test Street"}
	if err := db.Create(&building).Error; err != nil {
		t.Fatalf("Failed to create building: %v", err)
	}
	return &building
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role, buildingID *int) *models.User {
	t.Helper()

	hashed, err := services.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hashed,
		Role:         role,
		BuildingID:   buildingID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return &user
}

func identity(user *models.User) models.Identity {
	return models.Identity{UserID: user.ID, Role: user.Role}
}

func createTask(t *testing.T, db *gorm.DB, kind models.TaskKind, buildingID int, assigneeID *int, status string, due time.Time) *models.Task {
	t.Helper()

	task := models.Task{
		Kind:           kind,
		Description:    "test task",
		Locus:          "Common Room",
		Status:         status,
		BuildingID:     buildingID,
		AssignedUserID: assigneeID,
		DueDate:        due,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return &task
}
