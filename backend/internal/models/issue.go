package models

import "time"

const (
	IssueStatusOpen       = "Open"
	IssueStatusInProgress = "InProgress"
	IssueStatusResolved   = "Resolved"
	IssueStatusClosed     = "Closed"
)

func ValidIssueStatus(s string) bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed:
		return true
	}
	return false
}

// Issue is a resident-reported problem. UpdatedAt stays nil until the first
// staff mutation, so automatic update tracking is disabled.
type Issue struct {
	ID               int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Description      string     `json:"description" gorm:"not null"`
	SharedSpace      *string    `json:"shared_space" gorm:"size:200"`
	PhotoProof       *string    `json:"photo_proof"`
	Status           string     `json:"status" gorm:"size:50;not null"`
	CreatedByUserID  int        `json:"created_by_user_id" gorm:"not null"`
	BuildingID       int        `json:"building_id" gorm:"not null"`
	AssignedToUserID *int       `json:"assigned_to_user_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`

	CreatedByUser  *User     `json:"-" gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:RESTRICT"`
	Building       *Building `json:"-" gorm:"foreignKey:BuildingID"`
	AssignedToUser *User     `json:"-" gorm:"foreignKey:AssignedToUserID"`
}

func (Issue) TableName() string {
	return "issues"
}
