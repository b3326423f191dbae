package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"housing-manager/backend/internal/models"

	"gorm.io/gorm"
)

func seedTask(t *testing.T, db *gorm.DB, kind models.TaskKind, buildingID int, assigneeID *int, status string) *models.Task {
	t.Helper()

	task := models.Task{
		Kind:           kind,
		Description:    "seeded task",
		Locus:          "Common Room",
		Status:         status,
		BuildingID:     buildingID,
		AssignedUserID: assigneeID,
		DueDate:        time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("Failed to seed task: %v", err)
	}
	return &task
}

func TestTaskRoutes_UnknownKind(t *testing.T) {
	db := setupHandlerDB(t)
	staff := seedUser(t, db, "staff1", models.RoleStaff, nil)

	r := newTestRouter(db, models.Identity{UserID: staff.ID, Role: models.RoleStaff})

	w := doJSON(t, r, http.MethodGet, "/api/v1/tasks/laundry", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown task kind, got %d", w.Code)
	}
}

func TestCreateCleaningTask_Endpoint(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	staff := seedUser(t, db, "staff1", models.RoleStaff, nil)
	student := seedUser(t, db, "alice", models.RoleStudent, &building.ID)

	r := newTestRouter(db, models.Identity{UserID: staff.ID, Role: models.RoleStaff})

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks/cleaning", map[string]interface{}{
		"description":     "Clean the kitchen",
		"locationOrSpace": "Kitchen",
		"buildingId":      building.ID,
		"assignedUserId":  student.ID,
		"dueDate":         time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "Pending" {
		t.Errorf("Expected status Pending, got %v", body["status"])
	}
	if body["sharedSpace"] != "Kitchen" {
		t.Errorf("Expected cleaning view to use sharedSpace, got %v", body["sharedSpace"])
	}
	if _, hasLocation := body["location"]; hasLocation {
		t.Error("Cleaning view must not carry a location field")
	}
	if body["assignedUsername"] != "alice" {
		t.Errorf("Expected assignedUsername alice, got %v", body["assignedUsername"])
	}
}

func TestCreateGarbageTask_LocationField(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	staff := seedUser(t, db, "staff1", models.RoleStaff, nil)

	r := newTestRouter(db, models.Identity{UserID: staff.ID, Role: models.RoleStaff})

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks/garbage", map[string]interface{}{
		"description":     "Take out the bins",
		"locationOrSpace": "Bin room",
		"buildingId":      building.ID,
		"dueDate":         time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["location"] != "Bin room" {
		t.Errorf("Expected garbage view to use location, got %v", body["location"])
	}
	if _, hasSharedSpace := body["sharedSpace"]; hasSharedSpace {
		t.Error("Garbage view must not carry a sharedSpace field")
	}
}

func TestCreateTask_PastDueDate(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	staff := seedUser(t, db, "staff1", models.RoleStaff, nil)

	r := newTestRouter(db, models.Identity{UserID: staff.ID, Role: models.RoleStaff})

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks/cleaning", map[string]interface{}{
		"description":     "Clean the kitchen",
		"locationOrSpace": "Kitchen",
		"buildingId":      building.ID,
		"dueDate":         time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Due date must be in the future" {
		t.Errorf("Unexpected message: %v", body["message"])
	}
}

func TestGetTasks_StudentSeesOnlyAssigned(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	alice := seedUser(t, db, "alice", models.RoleStudent, &building.ID)
	bob := seedUser(t, db, "bob", models.RoleStudent, &building.ID)

	seedTask(t, db, models.TaskKindCleaning, building.ID, &alice.ID, models.TaskStatusPending)
	seedTask(t, db, models.TaskKindCleaning, building.ID, &bob.ID, models.TaskStatusPending)

	r := newTestRouter(db, models.Identity{UserID: alice.ID, Role: models.RoleStudent})
	w := doJSON(t, r, http.MethodGet, "/api/v1/tasks/cleaning", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var tasks []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task for alice, got %d", len(tasks))
	}
}

func TestCompleteTask_Endpoint(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	alice := seedUser(t, db, "alice", models.RoleStudent, &building.ID)

	task := seedTask(t, db, models.TaskKindCleaning, building.ID, &alice.ID, models.TaskStatusPending)

	r := newTestRouter(db, models.Identity{UserID: alice.ID, Role: models.RoleStudent})
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/tasks/cleaning/%d/complete", task.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["message"] != "Task completed successfully" {
		t.Errorf("Unexpected message: %v", body["message"])
	}

	var got models.Task
	if err := db.First(&got, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("Failed to reload task: %v", err)
	}
	if got.Status != models.TaskStatusCompleted {
		t.Errorf("Expected status Completed, got %s", got.Status)
	}
}

func TestCompleteTask_NonAssigneeGets403(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	alice := seedUser(t, db, "alice", models.RoleStudent, &building.ID)
	bob := seedUser(t, db, "bob", models.RoleStudent, &building.ID)

	task := seedTask(t, db, models.TaskKindCleaning, building.ID, &alice.ID, models.TaskStatusPending)

	r := newTestRouter(db, models.Identity{UserID: bob.ID, Role: models.RoleStudent})
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/tasks/cleaning/%d/complete", task.ID), nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-assignee, got %d", w.Code)
	}
}

func TestVerifyTask_Endpoint(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	staff := seedUser(t, db, "staff1", models.RoleStaff, nil)

	task := seedTask(t, db, models.TaskKindGarbage, building.ID, nil, models.TaskStatusCompleted)

	r := newTestRouter(db, models.Identity{UserID: staff.ID, Role: models.RoleStaff})
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/tasks/garbage/%d/verify", task.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Task
	if err := db.First(&got, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("Failed to reload task: %v", err)
	}
	if got.Status != models.TaskStatusVerified {
		t.Errorf("Expected status Verified, got %s", got.Status)
	}
}

func TestVerifyTask_PendingGets400(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	staff := seedUser(t, db, "staff1", models.RoleStaff, nil)

	task := seedTask(t, db, models.TaskKindGarbage, building.ID, nil, models.TaskStatusPending)

	r := newTestRouter(db, models.Identity{UserID: staff.ID, Role: models.RoleStaff})
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/tasks/garbage/%d/verify", task.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Task must be completed before verification" {
		t.Errorf("Unexpected message: %v", body["message"])
	}
}

func TestDashboard_Endpoint(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	alice := seedUser(t, db, "alice", models.RoleStudent, &building.ID)
	staff := seedUser(t, db, "staff1", models.RoleStaff, nil)

	issue := models.Issue{
		Description:     "dashboard seed",
		Status:          models.IssueStatusOpen,
		CreatedByUserID: alice.ID,
		BuildingID:      building.ID,
	}
	if err := db.Create(&issue).Error; err != nil {
		t.Fatalf("Failed to seed issue: %v", err)
	}

	r := newTestRouter(db, models.Identity{UserID: staff.ID, Role: models.RoleStaff})
	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["openIssues"] != float64(1) {
		t.Errorf("Expected 1 open issue, got %v", body["openIssues"])
	}
	for _, key := range []string{"inProgressIssues", "resolvedIssues", "closedIssues", "overdueTasks", "tasksDueToday"} {
		if _, ok := body[key]; !ok {
			t.Errorf("Expected dashboard key %s", key)
		}
	}
}

func TestDashboard_StudentBlocked(t *testing.T) {
	db := setupHandlerDB(t)
	building := seedBuilding(t, db, "North Hall")
	alice := seedUser(t, db, "alice", models.RoleStudent, &building.ID)

	r := newTestRouter(db, models.Identity{UserID: alice.ID, Role: models.RoleStudent})
	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for student, got %d", w.Code)
	}
}
