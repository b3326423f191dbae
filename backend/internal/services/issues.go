package services

import (
	"errors"
	"time"

	"housing-manager/backend/internal/models"

	"gorm.io/gorm"
)

type IssueFilter struct {
	Status     string
	BuildingID *int
}

type CreateIssueInput struct {
	Description string
	SharedSpace *string
	PhotoProof  *string
	BuildingID  int
}

type UpdateIssueInput struct {
	Status           *string
	AssignedToUserID *int
}

type IssueService interface {
	ListIssues(db *gorm.DB, ident models.Identity, filter IssueFilter) ([]models.Issue, error)
	GetIssue(db *gorm.DB, ident models.Identity, id int) (*models.Issue, error)
	CreateIssue(db *gorm.DB, ident models.Identity, input CreateIssueInput) (*models.Issue, error)
	UpdateIssue(db *gorm.DB, ident models.Identity, id int, input UpdateIssueInput) (*models.Issue, error)
}

type IssueServiceImpl struct{}

func NewIssueService() *IssueServiceImpl {
	return &IssueServiceImpl{}
}

func issueQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Issue{}).
		Preload("CreatedByUser").
		Preload("Building").
		Preload("AssignedToUser")
}

func (s *IssueServiceImpl) ListIssues(db *gorm.DB, ident models.Identity, filter IssueFilter) ([]models.Issue, error) {
	query := ScopeIssues(issueQuery(db), ident)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BuildingID != nil {
		query = query.Where("building_id = ?", *filter.BuildingID)
	}

	var issues []models.Issue
	if err := query.Order("created_at DESC").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *IssueServiceImpl) GetIssue(db *gorm.DB, ident models.Identity, id int) (*models.Issue, error) {
	var issue models.Issue
	if err := issueQuery(db).First(&issue, "issues.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanViewIssue(ident, &issue) {
		return nil, ErrForbidden
	}
	return &issue, nil
}

func (s *IssueServiceImpl) CreateIssue(db *gorm.DB, ident models.Identity, input CreateIssueInput) (*models.Issue, error) {
	if !CanCreateIssue(ident.Role) {
		return nil, ErrForbidden
	}

	var building models.Building
	if err := db.First(&building, "id = ?", input.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("Building not found")
		}
		return nil, err
	}

	issue := models.Issue{
		Description:     input.Description,
		SharedSpace:     input.SharedSpace,
		PhotoProof:      input.PhotoProof,
		Status:          models.IssueStatusOpen,
		CreatedByUserID: ident.UserID,
		BuildingID:      input.BuildingID,
	}

	if err := db.Create(&issue).Error; err != nil {
		return nil, err
	}

	// Resolve the denormalized view fields for the response.
	if err := issueQuery(db).First(&issue, "issues.id = ?", issue.ID).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssue applies a partial staff edit. UpdatedAt is stamped on every
// successful call, field changes or not.
func (s *IssueServiceImpl) UpdateIssue(db *gorm.DB, ident models.Identity, id int, input UpdateIssueInput) (*models.Issue, error) {
	if !CanUpdateIssue(ident.Role) {
		return nil, ErrForbidden
	}

	if input.Status != nil && !models.ValidIssueStatus(*input.Status) {
		return nil, NewValidationError("Status must be one of: Open, InProgress, Resolved, Closed")
	}

	var issue models.Issue
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&issue, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if input.Status != nil {
			issue.Status = *input.Status
		}

		if input.AssignedToUserID != nil {
			var assignee models.User
			if err := tx.First(&assignee, "id = ?", *input.AssignedToUserID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewValidationError("Assigned user not found")
				}
				return err
			}
			issue.AssignedToUserID = input.AssignedToUserID
		}

		now := time.Now().UTC()
		issue.UpdatedAt = &now

		return tx.Save(&issue).Error
	})
	if err != nil {
		return nil, err
	}

	if err := issueQuery(db).First(&issue, "issues.id = ?", issue.ID).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}
