package handlers

import (
	"time"

	"housing-manager/backend/internal/models"
)

// View DTOs denormalize building name and usernames next to the raw foreign
// keys. Field names follow the public API contract (camelCase).

type IssueResponse struct {
	ID                 int        `json:"id"`
	Description        string     `json:"description"`
	SharedSpace        *string    `json:"sharedSpace"`
	PhotoProof         *string    `json:"photoProof"`
	Status             string     `json:"status"`
	CreatedByUserID    int        `json:"createdByUserId"`
	CreatedByUsername  *string    `json:"createdByUsername"`
	BuildingID         int        `json:"buildingId"`
	BuildingName       *string    `json:"buildingName"`
	AssignedToUserID   *int       `json:"assignedToUserId"`
	AssignedToUsername *string    `json:"assignedToUsername"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt"`
}

func newIssueResponse(issue *models.Issue) IssueResponse {
	resp := IssueResponse{
		ID:               issue.ID,
		Description:      issue.Description,
		SharedSpace:      issue.SharedSpace,
		PhotoProof:       issue.PhotoProof,
		Status:           issue.Status,
		CreatedByUserID:  issue.CreatedByUserID,
		BuildingID:       issue.BuildingID,
		AssignedToUserID: issue.AssignedToUserID,
		CreatedAt:        issue.CreatedAt,
		UpdatedAt:        issue.UpdatedAt,
	}
	if issue.CreatedByUser != nil {
		resp.CreatedByUsername = &issue.CreatedByUser.Username
	}
	if issue.Building != nil {
		resp.BuildingName = &issue.Building.Name
	}
	if issue.AssignedToUser != nil {
		resp.AssignedToUsername = &issue.AssignedToUser.Username
	}
	return resp
}

func newIssueResponses(issues []models.Issue) []IssueResponse {
	responses := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		responses = append(responses, newIssueResponse(&issues[i]))
	}
	return responses
}

// CleaningTaskResponse and GarbageTaskResponse differ only in the locus
// field name; both render the shared Task entity.
type CleaningTaskResponse struct {
	ID               int        `json:"id"`
	Description      string     `json:"description"`
	SharedSpace      string     `json:"sharedSpace"`
	Status           string     `json:"status"`
	BuildingID       int        `json:"buildingId"`
	BuildingName     *string    `json:"buildingName"`
	AssignedUserID   *int       `json:"assignedUserId"`
	AssignedUsername *string    `json:"assignedUsername"`
	DueDate          time.Time  `json:"dueDate"`
	CompletedAt      *time.Time `json:"completedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type GarbageTaskResponse struct {
	ID               int        `json:"id"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	BuildingID       int        `json:"buildingId"`
	BuildingName     *string    `json:"buildingName"`
	AssignedUserID   *int       `json:"assignedUserId"`
	AssignedUsername *string    `json:"assignedUsername"`
	DueDate          time.Time  `json:"dueDate"`
	CompletedAt      *time.Time `json:"completedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func newTaskResponse(task *models.Task) interface{} {
	var buildingName, assignedUsername *string
	if task.Building != nil {
		buildingName = &task.Building.Name
	}
	if task.AssignedUser != nil {
		assignedUsername = &task.AssignedUser.Username
	}

	if task.Kind == models.TaskKindGarbage {
		return GarbageTaskResponse{
			ID:               task.ID,
			Description:      task.Description,
			Location:         task.Locus,
			Status:           task.Status,
			BuildingID:       task.BuildingID,
			BuildingName:     buildingName,
			AssignedUserID:   task.AssignedUserID,
			AssignedUsername: assignedUsername,
			DueDate:          task.DueDate,
			CompletedAt:      task.CompletedAt,
			CreatedAt:        task.CreatedAt,
		}
	}

	return CleaningTaskResponse{
		ID:               task.ID,
		Description:      task.Description,
		SharedSpace:      task.Locus,
		Status:           task.Status,
		BuildingID:       task.BuildingID,
		BuildingName:     buildingName,
		AssignedUserID:   task.AssignedUserID,
		AssignedUsername: assignedUsername,
		DueDate:          task.DueDate,
		CompletedAt:      task.CompletedAt,
		CreatedAt:        task.CreatedAt,
	}
}

func newTaskResponses(tasks []models.Task) []interface{} {
	responses := make([]interface{}, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, newTaskResponse(&tasks[i]))
	}
	return responses
}
