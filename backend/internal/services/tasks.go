package services

import (
	"errors"
	"time"

	"housing-manager/backend/internal/models"

	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Description    string
	Locus          string
	BuildingID     int
	AssignedUserID *int
	DueDate        time.Time
}

// TaskService manages both task kinds through one lifecycle:
// Pending -> Completed -> Verified, forward only.
type TaskService interface {
	ListTasks(db *gorm.DB, ident models.Identity, kind models.TaskKind) ([]models.Task, error)
	CreateTask(db *gorm.DB, ident models.Identity, kind models.TaskKind, input CreateTaskInput) (*models.Task, error)
	CompleteTask(db *gorm.DB, ident models.Identity, kind models.TaskKind, id int) error
	VerifyTask(db *gorm.DB, ident models.Identity, kind models.TaskKind, id int) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func taskQuery(db *gorm.DB, kind models.TaskKind) *gorm.DB {
	return db.Model(&models.Task{}).
		Preload("Building").
		Preload("AssignedUser").
		Where("kind = ?", kind)
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, ident models.Identity, kind models.TaskKind) ([]models.Task, error) {
	var tasks []models.Task
	err := ScopeTasks(taskQuery(db, kind), ident).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, ident models.Identity, kind models.TaskKind, input CreateTaskInput) (*models.Task, error) {
	if !CanCreateTask(ident.Role) {
		return nil, ErrForbidden
	}

	if !input.DueDate.After(time.Now()) {
		return nil, NewValidationError("Due date must be in the future")
	}

	var building models.Building
	if err := db.First(&building, "id = ?", input.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("Building not found")
		}
		return nil, err
	}

	if input.AssignedUserID != nil {
		var assignee models.User
		if err := db.First(&assignee, "id = ?", *input.AssignedUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("Assigned user not found")
			}
			return nil, err
		}
	}

	task := models.Task{
		Kind:           kind,
		Description:    input.Description,
		Locus:          input.Locus,
		Status:         models.TaskStatusPending,
		BuildingID:     input.BuildingID,
		AssignedUserID: input.AssignedUserID,
		DueDate:        input.DueDate,
	}

	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}

	if err := taskQuery(db, kind).First(&task, "tasks.id = ?", task.ID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks a task done by its assignee. There is deliberately no
// precondition on the current status: completing an already completed or
// verified task just refreshes CompletedAt.
func (s *TaskServiceImpl) CompleteTask(db *gorm.DB, ident models.Identity, kind models.TaskKind, id int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "kind = ? AND id = ?", kind, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !CanCompleteTask(ident, &task) {
			return ErrForbidden
		}

		now := time.Now().UTC()
		task.Status = models.TaskStatusCompleted
		task.CompletedAt = &now

		return tx.Save(&task).Error
	})
}

// VerifyTask is the staff sign-off. The task must already be Completed;
// CompletedAt is left untouched.
func (s *TaskServiceImpl) VerifyTask(db *gorm.DB, ident models.Identity, kind models.TaskKind, id int) error {
	if !CanVerifyTask(ident.Role) {
		return ErrForbidden
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "kind = ? AND id = ?", kind, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if task.Status != models.TaskStatusCompleted {
			return NewValidationError("Task must be completed before verification")
		}

		task.Status = models.TaskStatusVerified
		return tx.Save(&task).Error
	})
}
